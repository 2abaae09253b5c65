package task

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every package that acts on tasks. Concrete
// error types below match these with errors.Is.
var (
	ErrValidation                = errors.New("validation error")
	ErrTaskNotFound              = errors.New("task not found")
	ErrImportCompletedWithErrors = errors.New("import completed with errors")
	ErrStore                     = errors.New("store error")
)

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation on a missing id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task id not found: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// StoreError wraps a failure of the underlying persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// ImportError summarises a partially failed import.
type ImportError struct {
	Failed int
	Total  int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import completed with errors: %d of %d records failed", e.Failed, e.Total)
}

func (e *ImportError) Is(target error) bool {
	return target == ErrImportCompletedWithErrors
}
