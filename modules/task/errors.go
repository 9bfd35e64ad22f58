package task

import (
	"errors"
	"fmt"

	domain "github.com/example/taskdeck/domain/task"
)

var (
	// ErrNotFound is returned when no task exists with the requested ID.
	ErrNotFound = errors.New("task not found")
	// ErrNotOwner is returned when the caller does not own the task.
	// The message is deliberately generic so it discloses nothing about
	// the foreign task beyond what a not-found would.
	ErrNotOwner = errors.New("not authorized")
	// ErrStore is returned when the underlying store fails unexpectedly.
	// Callers surface it as a generic server failure; the wrapped detail
	// is for logs only.
	ErrStore = errors.New("task store failure")
)

// ValidationError reports a malformed or missing task field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

func invalidStatus(value string) *ValidationError {
	return &ValidationError{Field: "status", Reason: fmt.Sprintf("must be %q or %q, got %q", domain.StatusPending, domain.StatusCompleted, value)}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}
