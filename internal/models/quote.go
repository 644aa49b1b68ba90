package models

import "github.com/shopspring/decimal"

// Quote is a market snapshot for one coin. Change fields are percentages.
type Quote struct {
	ID            string
	Name          string
	Symbol        string
	Price         decimal.Decimal
	Change1h      decimal.Decimal
	Change24h     decimal.Decimal
	Change7d      decimal.Decimal
	MarketCap     decimal.Decimal
	MarketCapRank int
}

// Valuation is one portfolio row priced against a live quote.
type Valuation struct {
	Ticker      string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	ValueNow    decimal.Decimal
	CostBasis   decimal.Decimal
	GainLoss    decimal.Decimal
	GainLossPct decimal.Decimal
}
