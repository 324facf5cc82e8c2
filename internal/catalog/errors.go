package catalog

import "fmt"

// ValidationError marks a request payload the caller can fix (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError marks a create collision on an existing id (HTTP 409).
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product with id [%s] already exists", e.ID)
}

// NotFoundError marks a lookup on an unknown id (HTTP 404).
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id [%s] not found", e.ID)
}
