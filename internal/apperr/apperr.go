// Package apperr defines the outcome taxonomy shared by every service
// operation. Each failure carries a Kind that maps to a stable client-facing
// code, so callers can decide whether to retry, re-authenticate or surface
// a message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
)

// Kind classifies a failure
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindPreconditionFailed
	KindValidationFailed
	KindUpstreamUnavailable
	KindNotFound
)

// Code returns the stable machine-readable code for the kind
func (k Kind) Code() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindValidationFailed:
		return "validation_failed"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindNotFound:
		return "not_found"
	}
	return "internal"
}

// HTTPStatus returns the response status used for the kind
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindPreconditionFailed:
		return http.StatusConflict
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error is the failure half of every service result
type Error struct {
	Kind    Kind
	Message string
	Details []models.ValidationError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthenticated reports a missing or invalid caller credential
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden reports a role that may not perform the operation
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// PreconditionFailed reports an entity that is missing or not in the
// state the transition requires. The causes are deliberately not told apart.
func PreconditionFailed(msg string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: msg}
}

// Validation reports malformed input with per-field details
func Validation(msg string, details []models.ValidationError) *Error {
	return &Error{Kind: KindValidationFailed, Message: msg, Details: details}
}

// Upstream reports a failure of an external text service
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: msg, Err: err}
}

// NotFound reports a missing entity on a read path
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected infrastructure error
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the kind of err, treating foreign errors as internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
