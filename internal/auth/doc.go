// Package auth provides JWT access token generation and validation for the
// panel host's HTTP API.
//
// Panels are registered admin-gated, so the API must know whether a caller
// is an administrator. Claims carry an admin flag alongside the standard
// registered claims; tokens are signed HS256 with the configured secret.
package auth
