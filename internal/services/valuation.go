package services

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/market"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/portfolio"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

// ValuationService prices a user's holdings against live quotes.
type ValuationService interface {
	// Value returns one row per held ticker. Quotes are fetched in a single
	// batch; if the provider fails every price reads as zero.
	Value(ctx context.Context, s *session.Session) ([]models.Valuation, error)
}

type valuationService struct {
	ledger   LedgerService
	resolver CoinResolver
	gateway  market.Gateway
	log      logging.Logger
}

func NewValuationService(ledger LedgerService, resolver CoinResolver, gateway market.Gateway, log logging.Logger) ValuationService {
	return &valuationService{ledger: ledger, resolver: resolver, gateway: gateway, log: log.With("service", "valuation")}
}

func (v *valuationService) Value(ctx context.Context, s *session.Session) ([]models.Valuation, error) {
	holdings, err := v.ledger.Aggregate(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return []models.Valuation{}, nil
	}

	ids := make(map[string]string, len(holdings))
	batch := make([]string, 0, len(holdings))
	for ticker := range holdings {
		id := v.resolver.QuoteID(ctx, ticker)
		ids[ticker] = id
		batch = append(batch, id)
	}

	quotes, err := v.gateway.Quotes(ctx, batch)
	if err != nil {
		v.log.Warn(ctx, "quotes unavailable, valuing at zero", "user", s.Username, "error", err)
		quotes = map[string]models.Quote{}
	}

	return portfolio.Value(holdings, quotes, func(ticker string) string { return ids[ticker] }), nil
}
