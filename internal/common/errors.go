// Package common defines shared constants and sentinel errors used across
// the ghostproof client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Ledger / repository errors.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Session / credential errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCancelled        = errors.New("cancelled by user")

	// Remote backend errors.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
