// Package common defines shared constants, sentinel errors and small helpers
// used across coinkeeper layers. Callers should use errors.Is to match the
// error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrPersistence    = errors.New("persistence error")
	ErrEmptyInput     = errors.New("empty input")

	// Credential store errors.
	ErrDuplicateCredential = errors.New("username already exists")
	ErrInvalidCredential   = errors.New("invalid username or password")

	// Market data errors.
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrUnresolvedTicker = errors.New("coin could not be resolved to a ticker")

	// Ledger and watch list policy errors.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrLastWatchEntry       = errors.New("watch list must keep at least one coin")

	// Session errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
