// Package services contains the application services behind the REPL:
// registration and login, the ledger, valuation, the watch list, notes and
// the fiat converter.
//
// Every user-scoped call takes the caller's *session.Session and fails with
// common.ErrorUnauthorized when it is missing or expired. Storage failures
// are returned wrapped in common.ErrPersistence; domain outcomes use the
// other sentinels in package common.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// persistErr tags a storage failure with common.ErrPersistence unless it
// already carries a domain sentinel.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		common.ErrorNotFound,
		common.ErrDuplicateCredential,
		common.ErrInsufficientHoldings,
		common.ErrLastWatchEntry,
		common.ErrPersistence,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
}
