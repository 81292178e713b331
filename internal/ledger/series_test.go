package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocket/internal/core"
)

func TestSeries_Weekly(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(core.Earn, 5000, "salary", now.Add(-time.Hour)),
		tx(core.Spend, 1000, "food", now.Add(-2*time.Hour)),
		tx(core.Spend, 300, "bus", now.AddDate(0, 0, -6)),
		tx(core.Earn, 900, "too old", now.AddDate(0, 0, -7)),
		tx(core.Earn, 900, "future", now.AddDate(0, 0, 1)),
	}

	series, err := Series(ModeWeekly, txs, core.USD, now)
	require.NoError(t, err)
	require.Len(t, series, 7)

	labels := make([]string, 0, 7)
	for _, b := range series {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, labels)

	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Start.After(series[i-1].Start), "buckets must be oldest first")
	}

	assert.True(t, series[0].Value.Equal(decimal.NewFromInt(-3)), "got %s", series[0].Value)
	require.Len(t, series[0].Details, 1)
	assert.Equal(t, "bus", series[0].Details[0].Description)

	today := series[6]
	assert.True(t, today.Value.Equal(decimal.NewFromInt(40)), "got %s", today.Value)
	require.Len(t, today.Details, 2)
	assert.Equal(t, "salary", today.Details[0].Description)
	assert.True(t, today.Details[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "food", today.Details[1].Description)
	assert.True(t, today.Details[1].Amount.Equal(decimal.NewFromInt(-10)))

	for _, b := range series[1:6] {
		assert.True(t, b.Value.IsZero())
		assert.Empty(t, b.Details)
	}
}

func TestSeries_Daily(t *testing.T) {
	now := time.Date(2025, 3, 12, 23, 10, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(core.Earn, 11700, "morning", time.Date(2025, 3, 12, 0, 5, 0, 0, time.UTC)),
		tx(core.Spend, 2340, "lunch", time.Date(2025, 3, 12, 13, 0, 0, 0, time.UTC)),
		tx(core.Earn, 1170, "snack", time.Date(2025, 3, 12, 13, 59, 0, 0, time.UTC)),
		tx(core.Earn, 9999, "yesterday", time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC)),
	}

	series, err := Series(ModeDaily, txs, core.EUR, now)
	require.NoError(t, err)
	require.Len(t, series, 24)

	for h, b := range series {
		assert.Equal(t, h, b.Start.Hour())
	}
	assert.Equal(t, "0:00", series[0].Label)
	assert.Equal(t, "23:00", series[23].Label)

	assert.True(t, series[0].Value.Equal(decimal.NewFromInt(100)), "got %s", series[0].Value)
	assert.True(t, series[13].Value.Equal(decimal.NewFromInt(-10)), "got %s", series[13].Value)
	assert.Len(t, series[13].Details, 2)
	assert.Empty(t, series[12].Details)
}

func TestSeries_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2025, 3, 12, 0, 30, 0, 0, loc)
	// 23:45 UTC on the 11th is 00:45 on the 12th in CET.
	late := tx(core.Earn, 100, "late", time.Date(2025, 3, 11, 23, 45, 0, 0, time.UTC))

	series, err := Series(ModeDaily, []core.Transaction{late}, core.RSD, now)
	require.NoError(t, err)
	assert.True(t, series[0].Value.Equal(decimal.NewFromInt(100)))
}

func TestSeries_Errors(t *testing.T) {
	now := time.Now()

	_, err := Series(Mode("monthly"), nil, core.USD, now)
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = Series(ModeWeekly, nil, core.Currency("GBP"), now)
	assert.True(t, errors.Is(err, core.ErrUnknownCurrency))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("daily")
	require.NoError(t, err)
	assert.Equal(t, ModeDaily, m)

	_, err = ParseMode("hourly")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
