package proxy

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameter = errors.New("missing url parameter")
	ErrUpstream         = errors.New("upstream failure")
	ErrHostNotAllowed   = errors.New("target host not allowed")
	ErrInvalidToken     = errors.New("invalid proxy token")
)

// StatusError reports an upstream response outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Remote server responded with status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }
