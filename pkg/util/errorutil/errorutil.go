package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes gateway errors rendered to callers.
type DomainError struct {
	Code       string
	Message    string
	Detail     string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewBadRequest(message, detail string) error {
	de := NewDomainError("BAD_REQUEST", message, http.StatusBadRequest)
	de.Detail = detail
	return de
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden)
}

func NewConfigError(message string) error {
	return NewDomainError("CONFIG_ERROR", message, http.StatusInternalServerError)
}

// NewUpstreamError carries a backend failure with the backend's own status.
func NewUpstreamError(status int, message string) error {
	return NewDomainError("UPSTREAM_ERROR", message, status)
}

// NewBadGateway reports an unusable backend response or a transport failure.
func NewBadGateway(message string, err error) error {
	de := &DomainError{
		Code:       "BAD_GATEWAY",
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
	if err != nil {
		de.Detail = err.Error()
	}
	return de
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// NewRefreshRejected reports a refresh token the backend refused.
// Callers clear the session cookies when they see it.
func NewRefreshRejected(message string) error {
	return NewDomainError("REFRESH_REJECTED", message, http.StatusUnauthorized)
}

// IsRefreshRejected reports whether err came from NewRefreshRejected.
func IsRefreshRejected(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "REFRESH_REJECTED"
}
