package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger row. Positive Value and Quantity are an
// acquisition; negative ones a disposal.
type Transaction struct {
	ID        int64
	Owner     string
	Ticker    string
	Value     decimal.Decimal
	Quantity  decimal.Decimal
	CreatedAt time.Time
}

// Holding is the per-ticker sum of a user's transactions.
type Holding struct {
	Ticker    string
	CostBasis decimal.Decimal
	Quantity  decimal.Decimal
}
