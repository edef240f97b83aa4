package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors, match with errors.Is
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrThumbnailNotFound = errors.New("thumbnail not found")
	ErrNetwork           = errors.New("network failure")
	ErrNoVideo           = errors.New("no video loaded")
	ErrUnknownStream     = errors.New("unknown stream")
)

// Input rejection reasons
const (
	ReasonEmpty         = "no input provided"
	ReasonTooShort      = "input is too short to be a video URL"
	ReasonUnparseable   = "not a valid video reference"
	ReasonEmptyPlaylist = "playlist has no videos"
)

// InputError is returned when the user input cannot reference a video
type InputError struct {
	Input  string
	Reason string
	Cause  error
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("Input is invalid: %s", e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold
func (e *InputError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidInput, e.Cause}
	}
	return []error{ErrInvalidInput}
}

// Empty reports whether the input was empty
func (e *InputError) Empty() bool {
	return e.Reason == ReasonEmpty
}

// ThumbnailError is returned when neither thumbnail source could be loaded.
// It is not fatal: the loaded video stays usable.
type ThumbnailError struct {
	VideoID string
	Cause   error
}

// Error implements the error interface
func (e *ThumbnailError) Error() string {
	return "Thumbnail could not be loaded, but video should be ok."
}

// Unwrap makes errors.Is(err, ErrThumbnailNotFound) hold
func (e *ThumbnailError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrThumbnailNotFound, e.Cause}
	}
	return []error{ErrThumbnailNotFound}
}

func networkError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}
