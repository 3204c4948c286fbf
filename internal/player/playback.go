package player

// MediaEvent mirrors the media element's native play and pause notifications.
type MediaEvent int

const (
	EventPlay MediaEvent = iota
	EventPause
)

type PlaybackState struct {
	Playing bool `json:"playing"`
}

func (p PlaybackState) Apply(ev MediaEvent) PlaybackState {
	switch ev {
	case EventPlay:
		return PlaybackState{Playing: true}
	case EventPause:
		return PlaybackState{Playing: false}
	}
	return p
}

// ToggleLabel is the action the play/pause control offers in this state.
func (p PlaybackState) ToggleLabel() string {
	if p.Playing {
		return "Pause"
	}
	return "Play"
}
