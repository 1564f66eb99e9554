// Package apperrors defines the error kinds the services hand to the HTTP layer.
// Services decide the kind and the user-facing message; transports decide the status.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindForbidden Kind = "FORBIDDEN"
	KindNotFound  Kind = "NOT_FOUND"
	KindConflict  Kind = "CONFLICT"
	KindInternal  Kind = "INTERNAL_ERROR"
)

const (
	MsgForbidden = "Forbidden"
	MsgNotFound  = "Not Found"
	MsgInternal  = "Internal Server Error"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Forbidden() *AppError {
	return New(KindForbidden, MsgForbidden)
}

func NotFound() *AppError {
	return New(KindNotFound, MsgNotFound)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

func Internal(err error) *AppError {
	return Wrap(err, KindInternal, MsgInternal)
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err; errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
