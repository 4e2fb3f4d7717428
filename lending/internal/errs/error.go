package errs

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindAlreadyReturned
	KindItemNotAvailable
	KindPatronNotEligible
	KindInvalidDate
	KindAllocationFailure
	KindAuditWriteFailure
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidState:
		return "InvalidState"
	case KindAlreadyReturned:
		return "AlreadyReturned"
	case KindItemNotAvailable:
		return "ItemNotAvailable"
	case KindPatronNotEligible:
		return "PatronNotEligible"
	case KindInvalidDate:
		return "InvalidDate"
	case KindAllocationFailure:
		return "AllocationFailure"
	case KindAuditWriteFailure:
		return "AuditWriteFailure"
	case KindValidation:
		return "Validation"
	default:
		return "Internal"
	}
}

// Error is a domain failure. Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrInvalidState      = &Error{Kind: KindInvalidState, Msg: "invalid state"}
	ErrAlreadyReturned   = &Error{Kind: KindAlreadyReturned, Msg: "item has already been returned"}
	ErrItemNotAvailable  = &Error{Kind: KindItemNotAvailable, Msg: "item is not available"}
	ErrPatronNotEligible = &Error{Kind: KindPatronNotEligible, Msg: "patron is not eligible"}
	ErrInvalidDate       = &Error{Kind: KindInvalidDate, Msg: "invalid date"}
	ErrAllocationFailure = &Error{Kind: KindAllocationFailure, Msg: "sequence allocation failed"}
	ErrAuditWriteFailure = &Error{Kind: KindAuditWriteFailure, Msg: "audit write failed"}
	ErrValidation        = &Error{Kind: KindValidation, Msg: "validation failed"}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
