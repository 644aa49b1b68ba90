package models

// Coin is a known ticker. QuoteID is the market data provider's identifier
// for the coin, empty until resolved.
type Coin struct {
	Ticker      string
	DisplayName string
	QuoteID     string
}

// CoinRef is a search hit from the market data provider.
type CoinRef struct {
	ID            string
	Name          string
	Symbol        string
	MarketCapRank int
}

// WatchEntry links a user to a ticker on their price tracker.
type WatchEntry struct {
	Owner  string
	Ticker string
}
