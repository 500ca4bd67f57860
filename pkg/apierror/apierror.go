package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindAuth         Kind = "auth"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindUpstream     Kind = "upstream"
	KindPartialBatch Kind = "partial_batch"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

type APIError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(kind Kind, message string, details string, status int) *APIError {
	if status == 0 {
		status = StatusFor(kind)
	}
	return &APIError{Kind: kind, Message: message, Details: details, HTTPStatus: status}
}

func Validation(message string) *APIError {
	return New(KindValidation, message, "", http.StatusBadRequest)
}

func Unauthorized(message string) *APIError {
	return New(KindAuth, message, "", http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return New(KindForbidden, message, "", http.StatusForbidden)
}

func NotFound(message string) *APIError {
	return New(KindNotFound, message, "", http.StatusNotFound)
}

// Upstream reports a failed Shopify call. The upstream message is surfaced to
// the client verbatim.
func Upstream(message string, err error) *APIError {
	e := New(KindUpstream, message, "", http.StatusInternalServerError)
	e.Err = err
	return e
}

func RateLimited(message string) *APIError {
	return New(KindRateLimited, message, "", http.StatusTooManyRequests)
}

func Internal(message string, err error) *APIError {
	e := New(KindInternal, message, "", http.StatusInternalServerError)
	e.Err = err
	return e
}

// StatusFor returns the HTTP status a kind maps to. Partial batches are
// reported with 200 and success=false.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPartialBatch:
		return http.StatusOK
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the kind of err, falling back to KindInternal.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Kind
	}
	return KindInternal
}
