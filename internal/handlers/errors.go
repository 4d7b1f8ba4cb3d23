package handlers

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// Status is the HTTP status a kind is reported with. Conflicts are reported
// as 400, matching what existing clients expect.
func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated, KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// APIError is an error with a client-facing message.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

func validationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg}
}

func unauthorized(msg string) *APIError {
	return &APIError{Kind: KindUnauthorized, Message: msg}
}

func notFound(msg string) *APIError {
	return &APIError{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) *APIError {
	return &APIError{Kind: KindConflict, Message: msg}
}

// classify turns any error into an APIError. Store sentinels that reach here
// without a handler-specific message get a generic one.
func classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &APIError{Kind: KindNotFound, Message: "Not found", Err: err}
	case errors.Is(err, store.ErrConflict):
		return &APIError{Kind: KindConflict, Message: "Conflict", Err: err}
	case errors.Is(err, store.ErrTooLong):
		return &APIError{Kind: KindValidation, Message: "Value too long", Err: err}
	}
	return &APIError{Kind: KindInternal, Message: "Internal server error", Err: err}
}
