// Package export writes a user's ledger out as CSV and optionally ships the
// file to an S3-compatible bucket.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/gocarina/gocsv"
)

type transactionRow struct {
	ID        int64  `csv:"id"`
	Ticker    string `csv:"ticker"`
	Value     string `csv:"value"`
	Quantity  string `csv:"quantity"`
	CreatedAt string `csv:"created_at"`
}

// WriteTransactionsCSV writes txs with a header row. Amounts keep their
// exact decimal text; timestamps are RFC 3339 in UTC.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction) error {
	rows := make([]*transactionRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, &transactionRow{
			ID:        t.ID,
			Ticker:    t.Ticker,
			Value:     t.Value.String(),
			Quantity:  t.Quantity.String(),
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
