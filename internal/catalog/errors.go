package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the core and the services built on it.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
)

// ValidationError carries every user-correctable problem found in one pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return "validation: " + e.Messages[0]
	}
	return fmt.Sprintf("validation: %d errors: %s", len(e.Messages), strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CollaboratorError wraps a failure reported by the catalog store, identity
// provider or blob store. The core never retries these.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Collaborator wraps err as a CollaboratorError. A nil err stays nil.
func Collaborator(name string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Collaborator: name, Err: err}
}
