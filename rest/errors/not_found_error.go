package errors

import "fmt"

// NotFoundError reports a named resource that is not configured, e.g. an unknown entity.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

func NewNotFoundError(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}
