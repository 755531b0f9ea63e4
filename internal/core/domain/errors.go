package domain

import "errors"

// Expected, user-facing outcomes. The HTTP error handler maps these to
// 401/403/404-class responses; they are never logged as system errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid password reset token")
	ErrTokenExpired       = errors.New("password reset token has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product already exists")
)

// ErrNoAuthenticatedPrincipal marks an integration bug: an authorization
// check ran without an authenticated principal. Distinct from a denial.
var ErrNoAuthenticatedPrincipal = errors.New("no authenticated principal")

// Infrastructure-facing outcomes, surfaced as 503-class responses and never
// retried inside the core.
var (
	ErrConnectionFailure = errors.New("external service unreachable")
	ErrCircuitOpen       = errors.New("external service circuit open")
)

// ErrSigningFailure means the token signing material is unusable. Fatal for
// the request; logged loudly.
var ErrSigningFailure = errors.New("token signing failed")
