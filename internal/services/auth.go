package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/cryptox"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

// AuthService is the credential store plus session handling.
//
//   - Register: create a user; common.ErrDuplicateCredential if taken.
//   - Verify: true only for a known user with a matching password.
//   - Login: Verify and start a session, else common.ErrInvalidCredential.
//   - Remember / Resume / Forget: keep one session token across runs.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Verify(ctx context.Context, username string, password []byte) bool
	Login(ctx context.Context, username string, password []byte) (*session.Session, error)
	Remember(ctx context.Context, s *session.Session) error
	Resume(ctx context.Context) (*session.Session, error)
	Forget(ctx context.Context) error
}

type AuthOption func(*authService)

// WithCredentialParams overrides the KDF parameters used for new records.
func WithCredentialParams(p cryptox.Params) AuthOption {
	return func(a *authService) { a.params = p }
}

type authService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	sessions *session.Manager
	params   cryptox.Params
	now      func() time.Time
	log      logging.Logger
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, sessions *session.Manager, log logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		db:       db,
		rm:       rm,
		sessions: sessions,
		params:   cryptox.DefaultParams(),
		now:      time.Now,
		log:      log.With("service", "auth"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register checks for an existing user first; the primary key on username
// catches the race where two registrations pass that check together.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return common.ErrEmptyInput
	}

	repo := a.rm.Users(a.db)
	exists, err := repo.Exists(ctx, username)
	if err != nil {
		return persistErr("register", err)
	}
	if exists {
		return common.ErrDuplicateCredential
	}

	record, err := cryptox.NewRecord(password, a.params)
	if err != nil {
		return err
	}
	err = repo.Create(ctx, &models.User{
		Username:   username,
		Credential: record,
		KDF:        a.params.KDF,
		Iterations: a.params.Iterations,
		KeyLength:  a.params.KeyLength,
		CreatedAt:  a.now().UTC(),
	})
	if err != nil {
		return persistErr("register", err)
	}

	a.log.Info(ctx, "user registered", "user", username)
	return nil
}

// Verify fails closed: unknown users, storage errors and malformed records
// all read as a mismatch.
func (a *authService) Verify(ctx context.Context, username string, password []byte) bool {
	u, err := a.rm.Users(a.db).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			a.log.Error(ctx, "credential lookup failed", "user", username, "error", err)
		}
		return false
	}

	ok, err := cryptox.VerifyRecord(password, u.Credential, cryptox.Params{
		KDF:        u.KDF,
		Iterations: u.Iterations,
		KeyLength:  u.KeyLength,
	})
	if err != nil {
		a.log.Error(ctx, "stored credential unusable", "user", username, "error", err)
		return false
	}
	return ok
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, common.ErrEmptyInput
	}
	if !a.Verify(ctx, username, password) {
		a.log.Warn(ctx, "login rejected", "user", username)
		return nil, common.ErrInvalidCredential
	}

	s, err := a.sessions.Issue(username)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user logged in", "user", username, "session", s.ID)
	return s, nil
}

func (a *authService) Remember(ctx context.Context, s *session.Session) error {
	if err := session.Require(s); err != nil {
		return err
	}
	err := a.rm.Metadata(a.db).Set(ctx, common.MetadataSessionToken, []byte(s.Token))
	return persistErr("remember session", err)
}

// Resume restores the remembered session. A missing token is
// common.ErrorUnauthorized; an expired or invalid one is dropped and its
// error returned.
func (a *authService) Resume(ctx context.Context) (*session.Session, error) {
	token, err := a.rm.Metadata(a.db).Get(ctx, common.MetadataSessionToken)
	if err != nil {
		return nil, persistErr("resume session", err)
	}
	if len(token) == 0 {
		return nil, common.ErrorUnauthorized
	}

	s, err := a.sessions.Resume(string(token))
	if err != nil {
		if ferr := a.Forget(ctx); ferr != nil {
			a.log.Warn(ctx, "could not drop stale session token", "error", ferr)
		}
		return nil, err
	}

	exists, err := a.rm.Users(a.db).Exists(ctx, s.Username)
	if err != nil {
		return nil, persistErr("resume session", err)
	}
	if !exists {
		_ = a.Forget(ctx)
		return nil, common.ErrorUnauthorized
	}
	return s, nil
}

func (a *authService) Forget(ctx context.Context) error {
	return persistErr("forget session", a.rm.Metadata(a.db).Delete(ctx, common.MetadataSessionToken))
}
