package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/market"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

// WatchlistService manages the coins shown on a user's price tracker.
type WatchlistService interface {
	// Add resolves coin and follows it; adding twice is a no-op. Returns the
	// ticker that was added.
	Add(ctx context.Context, s *session.Session, coin string) (string, error)
	// Remove refuses to take away the last coin (common.ErrLastWatchEntry).
	Remove(ctx context.Context, s *session.Session, ticker string) error
	List(ctx context.Context, s *session.Session) ([]models.Coin, error)
	// Prices quotes every watched coin in one batch. Coins the provider has
	// no quote for come back with a zero price.
	Prices(ctx context.Context, s *session.Session) ([]models.Quote, error)
	// EnsureDefault seeds common.DefaultWatchList for a user with no entries.
	EnsureDefault(ctx context.Context, s *session.Session) error
}

type watchlistService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	resolver CoinResolver
	gateway  market.Gateway
	log      logging.Logger
}

func NewWatchlistService(db *sql.DB, rm repomanager.RepositoryManager, resolver CoinResolver, gateway market.Gateway, log logging.Logger) WatchlistService {
	return &watchlistService{db: db, rm: rm, resolver: resolver, gateway: gateway, log: log.With("service", "watchlist")}
}

func (w *watchlistService) Add(ctx context.Context, s *session.Session, coin string) (string, error) {
	if err := session.Require(s); err != nil {
		return "", err
	}
	ticker, err := w.resolver.ResolveCoin(ctx, coin)
	if err != nil {
		return "", err
	}
	if err := w.rm.Watchlist(w.db).Add(ctx, s.Username, ticker); err != nil {
		return "", persistErr("watch coin", err)
	}
	w.log.Info(ctx, "coin watched", "user", s.Username, "ticker", ticker)
	return ticker, nil
}

func (w *watchlistService) Remove(ctx context.Context, s *session.Session, ticker string) error {
	if err := session.Require(s); err != nil {
		return err
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return common.ErrEmptyInput
	}

	err := dbx.WithTx(ctx, w.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := w.rm.Watchlist(tx)
		removed, err := repo.Remove(ctx, s.Username, ticker)
		if err != nil {
			return err
		}
		if !removed {
			return common.ErrorNotFound
		}
		left, err := repo.Count(ctx, s.Username)
		if err != nil {
			return err
		}
		if left == 0 {
			return common.ErrLastWatchEntry
		}
		return nil
	})
	if err != nil {
		return persistErr("unwatch coin", err)
	}
	w.log.Info(ctx, "coin unwatched", "user", s.Username, "ticker", ticker)
	return nil
}

func (w *watchlistService) List(ctx context.Context, s *session.Session) ([]models.Coin, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	coins, err := w.rm.Watchlist(w.db).List(ctx, s.Username)
	if err != nil {
		return nil, persistErr("list watch list", err)
	}
	return coins, nil
}

func (w *watchlistService) Prices(ctx context.Context, s *session.Session) ([]models.Quote, error) {
	coins, err := w.List(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return []models.Quote{}, nil
	}

	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = w.resolver.QuoteID(ctx, c.Ticker)
	}

	quotes, err := w.gateway.Quotes(ctx, ids)
	if err != nil {
		w.log.Warn(ctx, "quotes unavailable", "user", s.Username, "error", err)
	}

	rows := make([]models.Quote, 0, len(coins))
	for i, c := range coins {
		q, ok := quotes[ids[i]]
		if !ok {
			name := c.DisplayName
			if name == "" {
				name = c.Ticker
			}
			q = models.Quote{ID: ids[i], Name: name}
		}
		q.Symbol = c.Ticker
		rows = append(rows, q)
	}
	return rows, nil
}

func (w *watchlistService) EnsureDefault(ctx context.Context, s *session.Session) error {
	if err := session.Require(s); err != nil {
		return err
	}
	err := dbx.WithTx(ctx, w.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := w.rm.Watchlist(tx).Count(ctx, s.Username)
		if err != nil || n > 0 {
			return err
		}
		for _, ticker := range common.DefaultWatchList {
			if err := w.rm.Coins(tx).Ensure(ctx, ticker, ""); err != nil {
				return err
			}
			if err := w.rm.Watchlist(tx).Add(ctx, s.Username, ticker); err != nil {
				return err
			}
		}
		return nil
	})
	return persistErr("seed watch list", err)
}
