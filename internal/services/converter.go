package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/market"
	"github.com/shopspring/decimal"
)

// ConverterService converts fiat amounts at the provider's current rate.
type ConverterService interface {
	// Convert returns amount expressed in quote and the rate used.
	Convert(ctx context.Context, amount decimal.Decimal, base, quote string) (decimal.Decimal, decimal.Decimal, error)
}

type converterService struct {
	gateway market.Gateway
	log     logging.Logger
}

func NewConverterService(gateway market.Gateway, log logging.Logger) ConverterService {
	return &converterService{gateway: gateway, log: log.With("service", "converter")}
}

func (c *converterService) Convert(ctx context.Context, amount decimal.Decimal, base, quote string) (decimal.Decimal, decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == "" || quote == "" {
		return decimal.Zero, decimal.Zero, common.ErrEmptyInput
	}
	if amount.IsNegative() {
		return decimal.Zero, decimal.Zero, common.ErrInvalidAmount
	}
	if base == quote {
		return amount, decimal.NewFromInt(1), nil
	}

	rate, err := c.gateway.FXRate(ctx, base, quote)
	if err != nil {
		c.log.Warn(ctx, "fx rate unavailable", "base", base, "quote", quote, "error", err)
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate), rate, nil
}
