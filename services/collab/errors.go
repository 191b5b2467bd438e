package collab

import (
	"errors"
	"fmt"
)

// FailureKind classifies a collaborator failure so the engine can decide
// between re-prompting, apologizing, or resetting.
type FailureKind string

const (
	ValidationFailed FailureKind = "validationFailed"
	Unauthorized     FailureKind = "unauthorized"
	NotFound         FailureKind = "notFound"
	Transient        FailureKind = "transient"
	Unknown          FailureKind = "unknown"
)

// Error is a typed collaborator failure.
type Error struct {
	Kind    FailureKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed failure for the given operation.
func NewError(kind FailureKind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// KindOf extracts the failure kind from any error; non-collaborator errors
// report Unknown.
func KindOf(err error) FailureKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind FailureKind) bool {
	return KindOf(err) == kind
}
