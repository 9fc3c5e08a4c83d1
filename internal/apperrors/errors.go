// Package apperrors holds the error taxonomy shared by the account service
// and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH"
	KindNotFound   Kind = "NOT_FOUND"
	KindStorage    Kind = "STORAGE"
	KindUnknown    Kind = "UNKNOWN"
)

// GenericMessage is sent to clients for faults that carry no client-safe text.
const GenericMessage = "Something went wrong!"

// Error is a classified failure. Message is safe to return to a client;
// Err, when set, is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind onto a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: cause}
}

func Unknown(cause error) *Error {
	return &Error{Kind: KindUnknown, Message: GenericMessage, Err: cause}
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

// Response returns the status and client message for any error.
// Unclassified errors become a generic 500.
func Response(err error) (int, string) {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError, GenericMessage
	}
	return appErr.HTTPStatus(), appErr.Message
}

// StatusCode returns the response status for err.
func StatusCode(err error) int {
	status, _ := Response(err)
	return status
}

// Internal is an unexpected fault with an operation specific client message.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindUnknown, Message: message, Err: cause}
}
