package mboxevent

import (
	"errors"
	"fmt"
)

// Sentinel errors for the mboxevent package.
// Use errors.Is() to check for these errors.
var (
	// ErrConfigRequired is returned when no notifier configuration is provided.
	ErrConfigRequired = errors.New("mboxevent: config is required")

	// ErrInvalidConfig is returned for configuration resolution failures.
	ErrInvalidConfig = errors.New("mboxevent: invalid config")

	// ErrNotConnected is returned when operations are attempted before Connect().
	ErrNotConnected = errors.New("mboxevent: not connected")

	// ErrAlreadyConnected is returned when Connect() is called twice.
	ErrAlreadyConnected = errors.New("mboxevent: already connected")
)

// SinkError is returned when a finished notification could not be handed to
// the delivery sink and WithSinkErrorsFatal(true) is configured. The
// notification itself is gone; this subsystem performs no retry.
type SinkError struct {
	Event string // wire name of the notification
	Err   error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("mboxevent: deliver %s: %v", e.Event, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsSinkError checks if the error is a sink delivery error and returns details.
func IsSinkError(err error) (*SinkError, bool) {
	var se *SinkError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
