package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/export"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/portfolio"
	"github.com/shopspring/decimal"
)

var portfolioColumns = []column[models.Valuation]{
	{name: "ticker", aliases: []string{"coin"}, text: func(v models.Valuation) string { return v.Ticker }},
	{name: "price", num: func(v models.Valuation) decimal.Decimal { return v.Price }},
	{name: "quantity", aliases: []string{"qty"}, num: func(v models.Valuation) decimal.Decimal { return v.Quantity }},
	{name: "value", num: func(v models.Valuation) decimal.Decimal { return v.ValueNow }},
	{name: "cost", num: func(v models.Valuation) decimal.Decimal { return v.CostBasis }},
	{name: "gain", num: func(v models.Valuation) decimal.Decimal { return v.GainLoss }},
	{name: "pct", aliases: []string{"%"}, num: func(v models.Valuation) decimal.Decimal { return v.GainLossPct }},
}

type tradeInput struct {
	coin  string
	value decimal.Decimal
	qty   decimal.Decimal
}

// tradeArgs reads "coin value quantity" from args, where coin may span
// several words, and prompts for anything missing.
func (a *App) tradeArgs(args []string) (tradeInput, error) {
	var in tradeInput
	var rawValue, rawQty string
	var err error

	switch {
	case len(args) >= 3:
		in.coin = strings.Join(args[:len(args)-2], " ")
		rawValue, rawQty = args[len(args)-2], args[len(args)-1]
	default:
		if in.coin, err = a.coinArg(args); err != nil {
			return in, err
		}
		if rawValue, err = getSimpleText(a.reader, "Total value", a.out); err != nil {
			return in, err
		}
		if rawQty, err = getSimpleText(a.reader, "Quantity", a.out); err != nil {
			return in, err
		}
	}

	if in.value, err = parseAmount(rawValue); err != nil {
		return in, err
	}
	if in.qty, err = parseAmount(rawQty); err != nil {
		return in, err
	}
	return in, nil
}

// Buy records a purchase.
func (a *App) Buy(ctx context.Context, args []string) error {
	in, err := a.tradeArgs(args)
	if err != nil {
		return err
	}
	t, err := a.svc.Ledger.Buy(ctx, a.session, in.coin, in.value, in.qty)
	if err != nil {
		return err
	}
	a.printf("Bought %s %s for %s.\n", t.Quantity, t.Ticker, money(t.Value))
	return nil
}

// Sell records a sale; amounts are entered as positive numbers.
func (a *App) Sell(ctx context.Context, args []string) error {
	in, err := a.tradeArgs(args)
	if err != nil {
		return err
	}
	t, err := a.svc.Ledger.Sell(ctx, a.session, in.coin, in.value, in.qty)
	if err != nil {
		return err
	}
	a.printf("Sold %s %s for %s.\n", t.Quantity.Neg(), t.Ticker, money(t.Value.Neg()))
	return nil
}

// Portfolio values every holding at live prices with a totals footer.
func (a *App) Portfolio(ctx context.Context, args []string) error {
	rows, err := a.svc.Valuation.Value(ctx, a.session)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		a.println("No transactions yet. Use 'buy' to add one.")
		return nil
	}
	rows, err = sortRows(rows, portfolioColumns, args)
	if err != nil {
		return err
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Ticker, money(r.Price), r.Quantity.String(),
			money(r.ValueNow), money(r.CostBasis), money(r.GainLoss), percent(r.GainLossPct),
		})
	}
	total := portfolio.Totals(rows)
	renderTable(a.out,
		[]string{"Ticker", "Price", "Quantity", "Value", "Cost", "Gain/Loss", "%"},
		cells,
		[]string{total.Ticker, "", "", money(total.ValueNow), money(total.CostBasis), money(total.GainLoss), percent(total.GainLossPct)},
	)
	return nil
}

// History lists every transaction in the order it was recorded.
func (a *App) History(ctx context.Context) error {
	txs, err := a.svc.Ledger.History(ctx, a.session)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		a.println("No transactions yet.")
		return nil
	}

	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		kind := "buy"
		if t.Quantity.IsNegative() {
			kind = "sell"
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10), t.CreatedAt.Local().Format("2006-01-02 15:04"),
			kind, t.Ticker, t.Value.String(), t.Quantity.String(),
		})
	}
	renderTable(a.out, []string{"ID", "Date", "Type", "Ticker", "Value", "Quantity"}, rows, nil)
	return nil
}

// Export writes the ledger to a CSV file and, when an uploader is
// configured, copies it to the bucket as well.
func (a *App) Export(ctx context.Context, args []string) error {
	txs, err := a.svc.Ledger.History(ctx, a.session)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteTransactionsCSV(&buf, txs); err != nil {
		return err
	}

	path := fmt.Sprintf("coinkeeper-%s-%s.csv", a.session.Username, a.now().Format("20060102"))
	if len(args) > 0 {
		path = args[0]
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.printf("Exported %d transactions to %s.\n", len(txs), path)

	if a.svc.Uploader != nil {
		loc, err := a.svc.Uploader.Upload(ctx, export.ObjectKey(a.session.Username, a.now()), buf.Bytes())
		if err != nil {
			return err
		}
		a.printf("Uploaded to %s.\n", loc)
	}
	return nil
}
