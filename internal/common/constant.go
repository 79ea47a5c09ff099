// Package common contains shared constants and sentinel errors used across
// GrowLog components.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// DateLayout is the wire format of calendar dates (ISO 8601, day precision).
const DateLayout = "2006-01-02"
