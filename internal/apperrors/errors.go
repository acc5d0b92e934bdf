package apperrors

import (
	"errors"
	"net/http"
)

// Kind is the stable error code surfaced to API callers.
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindFeatureDisabled  Kind = "FEATURE_DISABLED"
)

// Error carries a kind, a human-readable message, and the originating error
// if any.
type Error struct {
	Kind    Kind
	Message string
	Origin  error
}

func (e *Error) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Origin
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func FeatureDisabled() *Error {
	return &Error{Kind: KindFeatureDisabled, Message: "direct chat feature is disabled"}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// HTTPStatus maps an error to the response status. Anything outside the
// taxonomy is an internal error.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden, KindFeatureDisabled:
		return http.StatusForbidden
	case KindInvalidOperation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
