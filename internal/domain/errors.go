package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInProgress is returned when another request holds the idempotency key.
	ErrInProgress = errors.New("a request with this idempotency key is already in progress")
	// ErrIncompleteResult means the upstream accepted the write but returned no invoice url.
	ErrIncompleteResult = errors.New("upstream response is missing the invoice url")
)

type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

// UpstreamError is any failed exchange with the commerce platform.
// Transient errors (429, 5xx, transport) are retried, the rest are rejections.
type UpstreamError struct {
	Status    int
	Transient bool
	Msg       string
	Err       error
}

func (e *UpstreamError) Error() string {
	kind := "rejected"
	if e.Transient {
		kind = "transient"
	}
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s (status %d): %s", kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("upstream %s: %s", kind, e.Msg)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsTransient reports whether err is an upstream failure worth retrying.
func IsTransient(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Transient
}

type MissingReferenceError struct {
	Ref ItemRef
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("reference not found: %s", e.Ref)
}
