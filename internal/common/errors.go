package common

import "errors"

var (
	// Credential errors. These are handled at the gate and never shown inline.
	ErrNoCredentials      = errors.New("no stored credentials")
	ErrCredentialsExpired = errors.New("credentials expired")
	ErrInvalidToken       = errors.New("invalid token")

	// Client-side validation, raised before any request is made.
	ErrValidation = errors.New("validation error")
)
