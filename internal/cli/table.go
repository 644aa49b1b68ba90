package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/sortx"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// column describes one sortable table column. Exactly one of text and num
// is set.
type column[T any] struct {
	name    string
	aliases []string
	text    func(T) string
	num     func(T) decimal.Decimal
}

func (c column[T]) matches(name string) bool {
	if strings.EqualFold(c.name, name) {
		return true
	}
	for _, alias := range c.aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// sortRows applies "[column] [asc|desc]" to rows. With no args rows are
// returned unchanged. Ties keep their incoming order in both directions.
func sortRows[T any](rows []T, cols []column[T], args []string) ([]T, error) {
	if len(args) == 0 {
		return rows, nil
	}

	var col *column[T]
	for i := range cols {
		if cols[i].matches(args[0]) {
			col = &cols[i]
			break
		}
	}
	if col == nil {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.name
		}
		return nil, fmt.Errorf("unknown column %q, use one of: %s", args[0], strings.Join(names, ", "))
	}

	desc := false
	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "asc":
		case "desc":
			desc = true
		default:
			return nil, fmt.Errorf("unknown order %q, use asc or desc", args[1])
		}
	}

	if col.text != nil {
		key := func(r T) string { return strings.ToLower(col.text(r)) }
		return sortx.MergeSort(rows, key, desc), nil
	}
	return sortx.SortFunc(rows, func(x, y T) int {
		c := col.num(x).Cmp(col.num(y))
		if desc {
			return -c
		}
		return c
	}), nil
}

func renderTable(w io.Writer, header []string, rows [][]string, footer []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append(r)
	}
	if footer != nil {
		table.SetFooter(footer)
	}
	table.Render()
}

// money keeps two decimals for ordinary amounts and more for sub-unit prices.
func money(d decimal.Decimal) string {
	if !d.IsZero() && d.Abs().LessThan(decimal.NewFromInt(1)) {
		return d.Round(8).String()
	}
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
