// Package services contains the application services of the fmsdesk client:
// document and reference-data mutations, listings and the account flows.
// Input problems are reported as *ValidationError before any request is made.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fmsdesk/internal/client/client"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
)

// ValidationError rejects input locally. It matches common.ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

const (
	msgSessionExpired = "Your session has expired. Please sign in again."
	msgUnavailable    = "The server is unavailable. Please try again later."
	msgTimeout        = "The request timed out. Please try again."
)

// Describe turns err into the message shown next to the failed action.
// Server-provided messages take precedence.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	switch {
	case errors.Is(err, common.ErrNoCredentials),
		errors.Is(err, common.ErrCredentialsExpired),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, client.ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, client.ErrUnavailable):
		return msgUnavailable
	}
	return common.GenericErrorMessage
}
