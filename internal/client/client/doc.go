// Package client is the REST transport between fmsdesk and the FMS backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     authentication, reference collections (tags, document types,
//     correspondents), documents, notes and projects.
//  2. A concrete HTTP implementation (see HTTPClient) that resolves every
//     endpoint against a single base URL, attaches the bearer credential from
//     a TokenSource, tags each request with an X-Request-ID, and maps
//     non-success responses to *APIError.
//
// # Error Handling
//
// Every non-2xx response becomes an *APIError carrying the status and the
// server-provided message (or a generic fallback). Common conditions can be
// matched with errors.Is: ErrUnauthorized (401/403), ErrNotFound (404),
// ErrUnavailable (transport failure or 5xx).
//
// No call is retried and no request carries an idempotency key.
package client
