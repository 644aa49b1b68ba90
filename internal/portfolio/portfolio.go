// Package portfolio holds the pure valuation math: folding signed ledger
// rows into holdings and pricing holdings against quotes. Nothing here does
// I/O.
package portfolio

import (
	"sort"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// TotalTicker labels the row returned by Totals.
const TotalTicker = "TOTAL"

var hundred = decimal.NewFromInt(100)

// Aggregate sums value and quantity per ticker. Signs are kept as recorded,
// so a disposal reduces both cost basis and quantity.
//
// Aggregate is additive: Aggregate(a ++ b) equals the per-ticker sum of
// Aggregate(a) and Aggregate(b).
func Aggregate(txs []models.Transaction) map[string]models.Holding {
	out := make(map[string]models.Holding)
	for _, t := range txs {
		h := out[t.Ticker]
		h.Ticker = t.Ticker
		h.CostBasis = h.CostBasis.Add(t.Value)
		h.Quantity = h.Quantity.Add(t.Quantity)
		out[t.Ticker] = h
	}
	return out
}

// QuoteIDFunc maps a ticker to the provider id its quote is keyed by.
type QuoteIDFunc func(ticker string) string

// ValueHolding prices one holding. A zero price stands for "no quote".
//
//	value_now = quantity * price
//	gain_loss = value_now - cost_basis
//	pct       = gain_loss / cost_basis * 100, or 0 when cost_basis is 0
func ValueHolding(h models.Holding, price decimal.Decimal) models.Valuation {
	valueNow := h.Quantity.Mul(price)
	gain := valueNow.Sub(h.CostBasis)

	pct := decimal.Zero
	if !h.CostBasis.IsZero() {
		pct = gain.Div(h.CostBasis).Mul(hundred)
	}

	return models.Valuation{
		Ticker:      h.Ticker,
		Price:       price,
		Quantity:    h.Quantity,
		ValueNow:    valueNow,
		CostBasis:   h.CostBasis,
		GainLoss:    gain,
		GainLossPct: pct,
	}
}

// Value prices every holding against quotes. Holdings whose quote id is
// missing from quotes are priced at zero. Rows come back ordered by ticker;
// display order is the caller's business.
func Value(holdings map[string]models.Holding, quotes map[string]models.Quote, quoteID QuoteIDFunc) []models.Valuation {
	tickers := make([]string, 0, len(holdings))
	for t := range holdings {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	rows := make([]models.Valuation, 0, len(tickers))
	for _, t := range tickers {
		price := decimal.Zero
		if q, ok := quotes[quoteID(t)]; ok {
			price = q.Price
		}
		rows = append(rows, ValueHolding(holdings[t], price))
	}
	return rows
}

// Totals sums value, cost basis and gain across rows and derives the overall
// percentage the same way ValueHolding does.
func Totals(rows []models.Valuation) models.Valuation {
	total := models.Valuation{Ticker: TotalTicker}
	for _, r := range rows {
		total.ValueNow = total.ValueNow.Add(r.ValueNow)
		total.CostBasis = total.CostBasis.Add(r.CostBasis)
		total.GainLoss = total.GainLoss.Add(r.GainLoss)
	}
	if !total.CostBasis.IsZero() {
		total.GainLossPct = total.GainLoss.Div(total.CostBasis).Mul(hundred)
	}
	return total
}
