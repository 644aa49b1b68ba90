package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/shopspring/decimal"
)

var priceColumns = []column[models.Quote]{
	{name: "rank", aliases: []string{"#"}, num: func(q models.Quote) decimal.Decimal { return decimal.NewFromInt(int64(q.MarketCapRank)) }},
	{name: "name", text: func(q models.Quote) string { return q.Name }},
	{name: "symbol", aliases: []string{"ticker"}, text: func(q models.Quote) string { return q.Symbol }},
	{name: "price", num: func(q models.Quote) decimal.Decimal { return q.Price }},
	{name: "1h", num: func(q models.Quote) decimal.Decimal { return q.Change1h }},
	{name: "24h", num: func(q models.Quote) decimal.Decimal { return q.Change24h }},
	{name: "7d", num: func(q models.Quote) decimal.Decimal { return q.Change7d }},
	{name: "mcap", aliases: []string{"marketcap"}, num: func(q models.Quote) decimal.Decimal { return q.MarketCap }},
}

// Watch lists the watch list, or with "add <coin>" / "rm <ticker>" edits it.
func (a *App) Watch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		coins, err := a.svc.Watchlist.List(ctx, a.session)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(coins))
		for _, c := range coins {
			rows = append(rows, []string{c.Ticker, c.DisplayName})
		}
		renderTable(a.out, []string{"Ticker", "Name"}, rows, nil)
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "add":
		coin, err := a.coinArg(args[1:])
		if err != nil {
			return err
		}
		ticker, err := a.svc.Watchlist.Add(ctx, a.session, coin)
		if err != nil {
			return err
		}
		a.printf("Watching %s.\n", ticker)
	case "rm", "remove":
		ticker, err := a.argOrPrompt(args, 1, "Ticker to remove")
		if err != nil {
			return err
		}
		if err := a.svc.Watchlist.Remove(ctx, a.session, ticker); err != nil {
			return err
		}
		a.printf("Removed %s.\n", strings.ToUpper(ticker))
	default:
		a.println("Usage: watch [add <coin> | rm <ticker>]")
	}
	return nil
}

// coinArg joins args so multi-word names like "bitcoin cash" work, or
// prompts when there are none.
func (a *App) coinArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, "Coin name or ticker", a.out)
}

// Prices shows the price tracker for the watch list.
func (a *App) Prices(ctx context.Context, args []string) error {
	quotes, err := a.svc.Watchlist.Prices(ctx, a.session)
	if err != nil {
		return err
	}
	quotes, err = sortRows(quotes, priceColumns, args)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rank := "-"
		if q.MarketCapRank > 0 {
			rank = strconv.Itoa(q.MarketCapRank)
		}
		rows = append(rows, []string{
			rank, q.Name, q.Symbol, money(q.Price),
			percent(q.Change1h), percent(q.Change24h), percent(q.Change7d),
			q.MarketCap.StringFixed(0),
		})
	}
	renderTable(a.out, []string{"#", "Name", "Symbol", "Price", "1h", "24h", "7d", "Market Cap"}, rows, nil)
	return nil
}

// Convert converts a fiat amount: "convert 100 usd eur", or prompts for
// whatever is missing.
func (a *App) Convert(ctx context.Context, args []string) error {
	raw, err := a.argOrPrompt(args, 0, "Amount")
	if err != nil {
		return err
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return err
	}
	base, err := a.argOrPrompt(args, 1, "From currency (e.g. USD)")
	if err != nil {
		return err
	}
	quote, err := a.argOrPrompt(args, 2, "To currency (e.g. EUR)")
	if err != nil {
		return err
	}
	if base == "" || quote == "" {
		return common.ErrEmptyInput
	}

	result, rate, err := a.svc.Converter.Convert(ctx, amount, base, quote)
	if err != nil {
		return err
	}
	a.printf("%s %s = %s %s (rate %s)\n",
		amount.String(), strings.ToUpper(base), result.StringFixed(2), strings.ToUpper(quote), rate.String())
	return nil
}
