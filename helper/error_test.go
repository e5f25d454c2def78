package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Error message contains task and cause", func(t *testing.T) {
		err := NewError("load corpus", errors.New("file not found"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load corpus")
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("Unwrap exposes the underlying error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewError("ping database", cause)

		assert.ErrorIs(t, err, cause, "Expected errors.Is to find the wrapped cause")
	})

	t.Run("Works with wrapped chains", func(t *testing.T) {
		cause := errors.New("root cause")
		mid := fmt.Errorf("mid layer: %w", cause)
		err := NewError("outer task", mid)

		assert.ErrorIs(t, err, cause)
	})
}
