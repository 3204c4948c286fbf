package playlist

import (
	"context"
	"errors"
	"fmt"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

var ErrInvalidTransition = errors.New("fetch state already settled")

// FetchState moves from loading to either ready or error, once.
type FetchState struct {
	Status Status
	Items  []Item
	Err    error
}

func Loading() FetchState {
	return FetchState{Status: StatusLoading}
}

// Message is the user-facing text for an error state. Known failures map to a
// fixed sentence; anything else surfaces the raw error.
func (s FetchState) Message() string {
	switch {
	case s.Err == nil:
		return ""
	case errors.Is(s.Err, ErrMalformed):
		return "Invalid API response format"
	case errors.Is(s.Err, ErrUpstream):
		return "Failed to fetch wallpapers"
	default:
		return s.Err.Error()
	}
}

// Event is the outcome of one fetch.
type Event struct {
	Entries []RawEntry
	Err     error
}

// Transition is pure: it never mutates s and the ready item list is built in
// one step from the event's entries.
func Transition(s FetchState, ev Event) (FetchState, error) {
	if s.Status != StatusLoading {
		return s, fmt.Errorf("%w: %s", ErrInvalidTransition, s.Status)
	}
	if ev.Err != nil {
		return FetchState{Status: StatusError, Err: ev.Err}, nil
	}
	return FetchState{Status: StatusReady, Items: Normalize(ev.Entries)}, nil
}

// Load runs a single fetch against src and returns the settled state.
func Load(ctx context.Context, src Source) FetchState {
	entries, err := src.Fetch(ctx)
	next, _ := Transition(Loading(), Event{Entries: entries, Err: err})
	return next
}
