// Package failure classifies errors returned by the vault, tag and account
// stores so that callers can tell a missing record from a rejected input or a
// broken backend without matching on driver errors.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the category of a store failure.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	ValidationFailed
	PersistenceFailed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case PersistenceFailed:
		return "persistence_failed"
	default:
		return "unknown"
	}
}

// Error wraps the underlying cause together with its kind and the operation
// that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err into an *Error. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
