package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/market"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
)

// seedQuoteIDs covers the common tickers without a provider round trip.
var seedQuoteIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"DOGE":  "dogecoin",
	"XRP":   "ripple",
	"RLUSD": "ripple",
}

// CoinResolver maps user input to tickers and tickers to provider ids.
type CoinResolver interface {
	// ResolveCoin accepts a ticker or a coin name and returns the upper-case
	// ticker, creating the coin row on first sight.
	ResolveCoin(ctx context.Context, coin string) (string, error)
	// QuoteID never fails: it falls back to the lower-cased ticker.
	QuoteID(ctx context.Context, ticker string) string
}

type coinResolver struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	gateway market.Gateway
	log     logging.Logger
}

func NewCoinResolver(db *sql.DB, rm repomanager.RepositoryManager, gateway market.Gateway, log logging.Logger) CoinResolver {
	return &coinResolver{db: db, rm: rm, gateway: gateway, log: log.With("service", "resolver")}
}

func (r *coinResolver) ResolveCoin(ctx context.Context, coin string) (string, error) {
	coin = strings.TrimSpace(coin)
	if coin == "" {
		return "", common.ErrEmptyInput
	}
	repo := r.rm.Coins(r.db)
	upper := strings.ToUpper(coin)

	if _, err := repo.Get(ctx, upper); err == nil {
		return upper, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", persistErr("resolve coin", err)
	}
	if _, ok := seedQuoteIDs[upper]; ok {
		return upper, persistErr("resolve coin", repo.Ensure(ctx, upper, ""))
	}

	ticker, err := r.gateway.ResolveTicker(ctx, coin)
	if err != nil {
		if errors.Is(err, common.ErrUnresolvedTicker) {
			return "", err
		}
		r.log.Warn(ctx, "ticker lookup failed", "coin", coin, "error", err)
		return "", errors.Join(common.ErrUnresolvedTicker, err)
	}

	displayName := ""
	if !strings.EqualFold(ticker, coin) {
		displayName = coin
	}
	if err := repo.Ensure(ctx, ticker, displayName); err != nil {
		return "", persistErr("resolve coin", err)
	}
	return ticker, nil
}

// QuoteID looks in the coin table, then the seed table, then asks the
// provider's search for the best ranked coin with that symbol and caches
// the answer.
func (r *coinResolver) QuoteID(ctx context.Context, ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	repo := r.rm.Coins(r.db)

	c, err := repo.Get(ctx, ticker)
	switch {
	case err == nil && c.QuoteID != "":
		return c.QuoteID
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		r.log.Warn(ctx, "coin lookup failed", "ticker", ticker, "error", err)
	}

	if id, ok := seedQuoteIDs[ticker]; ok {
		return id
	}

	refs, err := r.gateway.Search(ctx, ticker)
	if err != nil {
		r.log.Warn(ctx, "coin search failed", "ticker", ticker, "error", err)
		return strings.ToLower(ticker)
	}
	best, ok := market.BestRanked(refs, func(ref models.CoinRef) bool {
		return strings.EqualFold(ref.Symbol, ticker)
	})
	if !ok {
		return strings.ToLower(ticker)
	}

	if err := repo.SetQuoteID(ctx, ticker, best.ID); err != nil {
		r.log.Warn(ctx, "could not cache quote id", "ticker", ticker, "error", err)
	}
	return best.ID
}
