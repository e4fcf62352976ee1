// Package apperr defines the error kinds the service layer surfaces.
// Handlers branch on the kind with errors.As instead of matching message
// strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for HTTP mapping and caller branching.
type Kind int

const (
	// Validation marks malformed or missing input, detected before any mutation.
	Validation Kind = iota
	// NotFound marks a missing user, product or order.
	NotFound
	// Authorization marks a role or ownership mismatch.
	Authorization
	// Conflict marks insufficient stock or balance, or an illegal state transition.
	Conflict
	// Storage marks an underlying I/O or transaction failure; the transaction
	// has been rolled back in full.
	Storage
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not found"
	case Authorization:
		return "unauthorized"
	case Conflict:
		return "conflict"
	case Storage:
		return "storage"
	}
	return "unknown"
}

// Error carries a kind, a stable user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose cause is err, preserving it for errors.Is/As.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind of err. Errors with no *Error in their chain are
// treated as Storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
