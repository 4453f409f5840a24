package core

import (
	"errors"
	"fmt"
)

var ErrNoScreen = errors.New("document has no screen")

var ErrDocumentTooLarge = errors.New("document too large")

// StatusError reports a non-success response while fetching a document.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.Code)
}

// SchemaError reports a component record whose props do not match the
// schema of its type. The node stays in the tree without a typed component.
type SchemaError struct {
	Type string
	ID   string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid %s component %q: %v", e.Type, e.ID, e.Err)
	}
	return fmt.Sprintf("invalid %s component: %v", e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
