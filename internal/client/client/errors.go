package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError is a non-success HTTP response. Message is suitable for display.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	e := &APIError{Status: status, Message: message}
	switch {
	case status == 401 || status == 403:
		e.kind = ErrUnauthorized
	case status == 404:
		e.kind = ErrNotFound
	case status >= 500:
		e.kind = ErrUnavailable
	}
	return e
}
