// Package common defines sentinel errors and small helpers shared by the
// ecovate packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account errors.
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrNoActiveAccount    = errors.New("no active account")
	ErrInvalidAccount     = errors.New("invalid account data")

	// Record store errors.
	ErrCorruptRecord = errors.New("corrupt persisted record")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Calculator and state errors.
	ErrUnknownActivity = errors.New("unknown activity")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidOffset   = errors.New("invalid offset")

	// Analytics errors.
	ErrUnknownHorizon  = errors.New("unknown forecast horizon")
	ErrUnknownCategory = errors.New("unknown recommendation category")

	// Simulated operations.
	ErrBusy                     = errors.New("operation already in progress")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
)
