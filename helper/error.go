package helper

import "fmt"

// Error wraps an underlying error with the task that failed.
type Error struct {
	Task string
	Err  error
}

// NewError creates a new Error for the given task.
func NewError(task string, err error) *Error {
	return &Error{Task: task, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error in %v: %v", e.Task, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
