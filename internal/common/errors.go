// Package common defines shared constants and sentinel errors used across
// client and server layers of GrowLog. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorForbidden     = errors.New("forbidden")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration input errors.
	ErrorMissingCredentials = errors.New("email, name and password are required")
	ErrorPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrorPasswordTooLong    = errors.New("password must be at most 72 bytes long")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
