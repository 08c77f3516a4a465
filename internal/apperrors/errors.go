// Package apperrors provides the single error type returned across the
// service and repository layers. Handlers inspect the kind via the Is*
// predicates and map it to an HTTP status without importing driver packages.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorises an error for HTTP mapping and client-side branching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidTable
	KindValidation
	KindConflict
)

// Code returns the stable machine-readable code sent to clients.
func (k Kind) Code() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidTable:
		return "invalid_table"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind.Code(), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind.Code(), e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err represents a missing record or table.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInvalidTable reports whether err was caused by an unknown table name.
func IsInvalidTable(err error) bool {
	return KindOf(err) == KindInvalidTable
}

// IsValidation reports whether err was caused by bad input from the caller.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsConflict reports whether err represents a uniqueness violation.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
