package generate

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when generation is requested without a
// completion function and offline mode is not enabled.
var ErrNotConfigured = errors.New("no completion function configured and offline mode disabled")

// GenerationError wraps a failure of the external completion call.
type GenerationError struct {
	Task string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed in %v: %v", e.Task, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
