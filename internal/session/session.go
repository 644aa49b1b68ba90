// Package session carries the logged-in user explicitly through every
// user-scoped operation and issues the signed tokens used to resume a
// session across runs.
package session

import (
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// Session identifies the user an operation acts for.
type Session struct {
	ID        string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Token     string
}

// Valid reports whether s is non-nil, names a user and has not expired at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Username != "" && now.Before(s.ExpiresAt)
}

// Require returns common.ErrorUnauthorized unless s is valid right now.
func Require(s *Session) error {
	if !s.Valid(time.Now()) {
		return common.ErrorUnauthorized
	}
	return nil
}
