// Package apperr defines the fixed error taxonomy shared by both services.
// Leaf stores return their own errors; application services classify them
// into a Kind at their boundary, so the contract seen by callers is stable
// regardless of which concrete backing store is wired in.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	Unknown Kind = iota
	// InvalidArgument: malformed input, no side effects, retry after fixing input.
	InvalidArgument
	// FailedPrecondition: charge declined; safe to retry with different card info.
	FailedPrecondition
	// NotFound: referenced entity does not exist.
	NotFound
	// Conflict: record with the same unique key already exists.
	Conflict
	// Unavailable: transient backing-store or network failure; the whole call
	// may be retried by the caller.
	Unavailable
	// Internal: post-charge ledger-write failure. NOT safe to blindly retry;
	// the charge already happened and must be reconciled out of band.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case FailedPrecondition:
		return "failed_precondition"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unavailable:
		return "unavailable"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error pairs a Kind with the underlying cause. The cause stays reachable
// through errors.Is/As so sentinel checks keep working after classification.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error from a message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies an existing error. A nil err yields nil. If err already
// carries a Kind it is returned unchanged; classification happens once, at
// the first boundary that knows what the failure means.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != Unknown {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the Kind from an error chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
