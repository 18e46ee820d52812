package studio

import "errors"

var (
	// ErrBusy is returned while a flow already has a request in flight.
	ErrBusy = errors.New("studio: a request is already in flight")

	// ErrNoImage is returned when understanding is triggered without an upload.
	ErrNoImage = errors.New("studio: no image provided")

	// ErrNoPrompt is returned when generation is triggered with a blank prompt.
	ErrNoPrompt = errors.New("studio: prompt is required")

	// ErrNoResult is returned when no generation has completed yet.
	ErrNoResult = errors.New("studio: no result available")
)

// GenerationError aborts the generation flow and carries the upstream
// service's message for display.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return "studio: generation failed: " + e.Message
	}
	return "studio: generation failed"
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UnderstandingError aborts the understanding flow, symmetric to
// GenerationError.
type UnderstandingError struct {
	Message string
	Err     error
}

func (e *UnderstandingError) Error() string {
	if e.Message != "" {
		return "studio: understanding failed: " + e.Message
	}
	return "studio: understanding failed"
}

func (e *UnderstandingError) Unwrap() error { return e.Err }
