package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// Register prompts for a username and password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.svc.Auth.Register(ctx, userName, password); err != nil {
		return err
	}

	a.println("Account created, you can log in now.")
	return nil
}

// Login prompts for credentials, starts a session and optionally remembers
// it for the next run. A user with an empty watch list gets the defaults.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.svc.Auth.Login(ctx, userName, password)
	if err != nil {
		return err
	}
	a.session = s

	if a.confirm("Remember me on this computer?") {
		if err := a.svc.Auth.Remember(ctx, s); err != nil {
			a.log.Warn(ctx, "could not remember session", "error", err)
		}
	}
	a.afterLogin(ctx)
	a.printf("Welcome, %s!\n", s.Username)
	return nil
}

// Logout ends the session and forgets any remembered token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.svc.Auth.Forget(ctx); err != nil {
		return err
	}
	a.session = nil
	a.println("Logged out.")
	return nil
}

func (a *App) resume(ctx context.Context) {
	s, err := a.svc.Auth.Resume(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			a.log.Info(ctx, "remembered session not resumed", "error", err)
		}
		return
	}
	a.session = s
	a.afterLogin(ctx)
	a.printf("Welcome back, %s!\n", s.Username)
}

func (a *App) afterLogin(ctx context.Context) {
	if err := a.svc.Watchlist.EnsureDefault(ctx, a.session); err != nil {
		a.log.Warn(ctx, "could not seed watch list", "user", a.session.Username, "error", err)
	}
}
