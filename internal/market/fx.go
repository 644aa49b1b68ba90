package market

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/shopspring/decimal"
)

var errNoFXKey = errors.New("no exchange rate API key configured")

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// FXRate returns how many units of quote one unit of base buys. The provider
// needs a key in the path, so there is no keyless attempt.
func (c *Client) FXRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == "" || quote == "" {
		return decimal.Zero, common.ErrEmptyInput
	}
	if c.fxKeys.Len() == 0 {
		return decimal.Zero, fmt.Errorf("%w: %w", common.ErrQuoteUnavailable, errNoFXKey)
	}

	var rate decimal.Decimal
	err := c.withKeys(ctx, c.fxKeys, "fx", func(ctx context.Context, key string) error {
		endpoint := fmt.Sprintf("%s/%s/pair/%s/%s", c.fxBase, url.PathEscape(key), url.PathEscape(base), url.PathEscape(quote))
		var resp pairResponse
		if err := getJSON(ctx, c.http, endpoint, nil, &resp); err != nil {
			return err
		}
		if resp.Result != "success" {
			return fmt.Errorf("provider error: %s", resp.ErrorType)
		}
		rate = resp.ConversionRate
		return nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", common.ErrQuoteUnavailable, err)
	}
	return rate, nil
}
