package model

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-checkable classification of a service failure.
type Kind string

const (
	KindForbidden    Kind = "Forbidden"
	KindInvalidInput Kind = "InvalidInput"
	KindConflict     Kind = "Conflict"
	KindNotFound     Kind = "NotFound"
	KindStorageError Kind = "StorageError"
)

// Error is the failure type every service operation returns. Field names the
// offending input field for InvalidInput errors.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an unexpected persistence failure so raw driver errors
// never leak to callers.
func StorageError(err error) *Error {
	return &Error{Kind: KindStorageError, Message: "storage failure", cause: err}
}

// KindOf classifies any error, mapping unrecognized ones to StorageError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageError
}
