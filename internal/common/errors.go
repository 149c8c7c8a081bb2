// Package common defines shared constants and sentinel errors used across
// client layers of stockkeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrInvalidToken = errors.New("invalid token")
)
