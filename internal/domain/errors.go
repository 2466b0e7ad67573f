package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by failures where the backend reports the entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is matched by failures caused by an invalid or expired session.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a local, field-level failure raised before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError describes a failed round-trip. Status is zero when no response arrived.
type TransportError struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is maps HTTP statuses onto the sentinel errors.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
