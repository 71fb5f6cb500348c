package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the client can produce.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindServerError  Kind = "server_error"
	KindNetworkError Kind = "network_error"
)

// Sentinels usable with errors.Is.
var (
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrForbidden    = errors.New("api: forbidden")
	ErrNotFound     = errors.New("api: not found")
	ErrValidation   = errors.New("api: validation failed")
	ErrServerError  = errors.New("api: server error")
	ErrNetworkError = errors.New("api: network error")
)

// Error is the normalized failure shape forwarded to controllers. The client
// never recovers errors itself; callers decide what to surface.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // server-provided message when available
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.sentinel().Error(), e.Message)
	}
	return e.sentinel().Error()
}

// Unwrap lets errors.Is match the kind sentinel.
func (e *Error) Unwrap() error { return e.sentinel() }

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindServerError:
		return ErrServerError
	default:
		return ErrNetworkError
	}
}

// classify maps an HTTP status to an error kind.
func classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServerError
	}
}

// Message returns the user-displayable message for an error, falling back to
// a generic notice for kinds the server does not annotate.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrValidation) {
		return "validation failed"
	}
	return "action failed"
}
