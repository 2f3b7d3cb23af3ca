// Package common contains shared constants and sentinel errors used across
// fmsdesk components.
package common

import "time"

// Names of the persisted credential entries. They match the cookie names the
// backend's web frontend uses, so a shared session layout stays recognizable.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
	UserIDKey       = "FMSUID"
)

// Lifetimes of the persisted credential entries.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
	UserIDTTL       = 30 * 24 * time.Hour
)

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a client log line with a backend request.
const RequestIDHeaderName = "X-Request-ID"

// GenericErrorMessage is shown when the server gives no usable message.
const GenericErrorMessage = "Something went wrong. Please try again."
