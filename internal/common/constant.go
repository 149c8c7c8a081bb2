// Package common contains shared constants and sentinel errors used across
// stockkeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the token inside the Authorization header.
const BearerScheme = "Bearer "

// RequestIDHeaderName tags every outbound request so client and server logs
// can be correlated.
const RequestIDHeaderName = "X-Request-ID"
