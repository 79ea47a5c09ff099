// Package metadata stores small key/value facts the CLI keeps between runs,
// such as the session tokens and the email of the logged-in user.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyEmail        = "email"
)

// Repository is a string key/value store. Get reports a missing key as
// common.ErrorNotFound.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
