package mux

import (
	"errors"
	"fmt"
)

// Sentinel errors, match with errors.Is
var (
	ErrPrecondition = errors.New("assembly precondition failed")
	ErrToolNotFound = errors.New("ffmpeg not found")
	ErrMuxFailed    = errors.New("ffmpeg failed")
)

// MuxError carries the exit code and the tail of the ffmpeg output
type MuxError struct {
	ExitCode int
	Output   string
	Cause    error
}

// Error implements the error interface
func (e *MuxError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, e.Output)
}

// Unwrap makes errors.Is(err, ErrMuxFailed) hold
func (e *MuxError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMuxFailed, e.Cause}
	}
	return []error{ErrMuxFailed}
}
