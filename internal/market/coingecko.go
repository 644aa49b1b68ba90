package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/shopspring/decimal"
)

const demoKeyHeader = "x-cg-demo-api-key"

type marketRow struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	MarketCap     decimal.Decimal `json:"market_cap"`
	MarketCapRank *int            `json:"market_cap_rank"`
	Change1h      decimal.Decimal `json:"price_change_percentage_1h_in_currency"`
	Change24h     decimal.Decimal `json:"price_change_percentage_24h_in_currency"`
	Change7d      decimal.Decimal `json:"price_change_percentage_7d_in_currency"`
}

func (r marketRow) quote() models.Quote {
	q := models.Quote{
		ID:        r.ID,
		Name:      r.Name,
		Symbol:    strings.ToUpper(r.Symbol),
		Price:     r.CurrentPrice,
		Change1h:  r.Change1h,
		Change24h: r.Change24h,
		Change7d:  r.Change7d,
		MarketCap: r.MarketCap,
	}
	if r.MarketCapRank != nil {
		q.MarketCapRank = *r.MarketCapRank
	}
	return q
}

type searchResponse struct {
	Coins []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Symbol        string `json:"symbol"`
		MarketCapRank *int   `json:"market_cap_rank"`
	} `json:"coins"`
}

func keyHeader(key string) http.Header {
	h := http.Header{}
	if key != "" {
		h.Set(demoKeyHeader, key)
	}
	return h
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Client) Quotes(ctx context.Context, ids []string) (map[string]models.Quote, error) {
	out := make(map[string]models.Quote)
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	q := url.Values{}
	q.Set("vs_currency", c.vs)
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "250")
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "1h,24h,7d")
	endpoint := c.quoteBase + "/coins/markets?" + q.Encode()

	var rows []marketRow
	err := c.withKeys(ctx, c.quoteKeys, "quotes", func(ctx context.Context, key string) error {
		rows = nil
		return getJSON(ctx, c.http, endpoint, keyHeader(key), &rows)
	})
	if err != nil {
		return out, fmt.Errorf("%w: %w", common.ErrQuoteUnavailable, err)
	}

	for _, r := range rows {
		out[r.ID] = r.quote()
	}
	c.log.Debug(ctx, "quotes fetched", "requested", len(ids), "received", len(out))
	return out, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]models.CoinRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ErrEmptyInput
	}
	endpoint := c.quoteBase + "/search?" + url.Values{"query": {query}}.Encode()

	var resp searchResponse
	err := c.withKeys(ctx, c.quoteKeys, "search", func(ctx context.Context, key string) error {
		resp = searchResponse{}
		return getJSON(ctx, c.cached, endpoint, keyHeader(key), &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrQuoteUnavailable, err)
	}

	refs := make([]models.CoinRef, 0, len(resp.Coins))
	for _, coin := range resp.Coins {
		ref := models.CoinRef{ID: coin.ID, Name: coin.Name, Symbol: strings.ToUpper(coin.Symbol)}
		if coin.MarketCapRank != nil {
			ref.MarketCapRank = *coin.MarketCapRank
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (c *Client) ResolveTicker(ctx context.Context, coinName string) (string, error) {
	coinName = strings.TrimSpace(coinName)
	if coinName == "" {
		return "", common.ErrEmptyInput
	}
	refs, err := c.Search(ctx, coinName)
	if err != nil {
		return "", err
	}

	byName := func(r models.CoinRef) bool {
		return strings.EqualFold(r.Name, coinName) || strings.EqualFold(r.ID, coinName)
	}
	bySymbol := func(r models.CoinRef) bool { return strings.EqualFold(r.Symbol, coinName) }

	if best, ok := BestRanked(refs, byName); ok {
		return best.Symbol, nil
	}
	if best, ok := BestRanked(refs, bySymbol); ok {
		return best.Symbol, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnresolvedTicker, coinName)
}

// BestRanked returns the matching ref with the best (lowest, non-zero)
// market cap rank. Unranked matches only win when nothing ranked matches.
func BestRanked(refs []models.CoinRef, match func(models.CoinRef) bool) (models.CoinRef, bool) {
	var (
		best  models.CoinRef
		found bool
	)
	better := func(a, b models.CoinRef) bool {
		switch {
		case a.MarketCapRank == 0:
			return false
		case b.MarketCapRank == 0:
			return true
		default:
			return a.MarketCapRank < b.MarketCapRank
		}
	}
	for _, r := range refs {
		if !match(r) {
			continue
		}
		if !found || better(r, best) {
			best, found = r, true
		}
	}
	return best, found
}
