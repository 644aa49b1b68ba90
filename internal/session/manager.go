package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const secretSize = 32

// Claims are the JWT claims of a session token. Subject is the username and
// ID the session id.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// Issue starts a new session for username.
func (m *Manager) Issue(username string) (*Session, error) {
	now := m.now().Truncate(time.Second)
	s := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	s.Token = signed
	return s, nil
}

// Resume rebuilds a session from a token issued earlier. Expired tokens
// yield common.ErrTokenExpired, anything else that fails verification
// common.ErrInvalidToken.
func (m *Manager) Resume(tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	s := &Session{
		ID:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Token:     tokenString,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}

// LoadSecret returns the signing secret kept in metadata, creating and
// storing a random one on first use.
func LoadSecret(ctx context.Context, repo metadata.Repository) ([]byte, error) {
	secret, err := repo.Get(ctx, common.MetadataSessionSecret)
	if err != nil {
		return nil, err
	}
	if len(secret) > 0 {
		return secret, nil
	}

	secret = common.GenerateRandByteArray(secretSize)
	if err := repo.Set(ctx, common.MetadataSessionSecret, secret); err != nil {
		return nil, err
	}
	return secret, nil
}
