package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.gw.rates["USD/EUR"] = d("0.9")

	got, rate, err := f.converter.Convert(ctx, d("100"), "usd", " eur")
	require.NoError(t, err)
	requireDecimal(t, "90", got)
	requireDecimal(t, "0.9", rate)

	got, rate, err = f.converter.Convert(ctx, d("12.5"), "GBP", "gbp")
	require.NoError(t, err)
	requireDecimal(t, "12.5", got)
	requireDecimal(t, "1", rate)
}

func TestConvert_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.converter.Convert(ctx, d("1"), "USD", "JPY")
	require.ErrorIs(t, err, common.ErrQuoteUnavailable)

	_, _, err = f.converter.Convert(ctx, d("1"), "", "JPY")
	require.ErrorIs(t, err, common.ErrEmptyInput)

	_, _, err = f.converter.Convert(ctx, d("-1"), "USD", "JPY")
	require.ErrorIs(t, err, common.ErrInvalidAmount)
}
