package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocket/internal/core"
	"pocket/internal/i18n"
	"pocket/internal/ledger"
	"pocket/internal/services"
)

func TestBarsScaleToPeakMagnitude(t *testing.T) {
	buckets := []ledger.Bucket{
		{Label: "Mon", Value: decimal.NewFromInt(-40)},
		{Label: "Tue", Value: decimal.Zero},
		{Label: "Wed", Value: decimal.NewFromInt(20)},
		{Label: "Thu", Value: decimal.RequireFromString("0.1"), Details: []ledger.Detail{
			{Description: "tip", Amount: decimal.RequireFromString("0.1")},
		}},
	}

	got := bars(buckets, core.USD)
	require.Len(t, got, 4)

	assert.Equal(t, 100, got[0].Height)
	assert.True(t, got[0].Negative)
	assert.Equal(t, "-40.00 USD", got[0].Value)
	assert.Equal(t, 0, got[1].Height)
	assert.Equal(t, 50, got[2].Height)
	assert.Equal(t, 2, got[3].Height, "tiny values stay visible")
	require.Len(t, got[3].Details, 1)
	assert.Equal(t, "0.10 USD", got[3].Details[0].Amount)
}

func TestBarsAllZero(t *testing.T) {
	got := bars([]ledger.Bucket{{Label: "0:00"}, {Label: "1:00"}}, core.EUR)
	for _, b := range got {
		assert.Zero(t, b.Height)
		assert.False(t, b.Negative)
	}
}

func TestInputValueConvertsFromBase(t *testing.T) {
	assert.Equal(t, "12.5", inputValue(decimal.NewFromInt(1250), core.USD))
	assert.Equal(t, "1250", inputValue(decimal.NewFromInt(1250), core.RSD))
	assert.Equal(t, "", inputValue(decimal.NewFromInt(1), core.Currency("XXX")))
}

func TestEditFormPrefillKeepsStoredAmounts(t *testing.T) {
	tr := services.NewTracker("ana", services.WithCurrency(core.RSD), services.WithClock(fixedClock{testNow}))
	goal, err := tr.AddGoal("Bike", decimal.NewFromInt(1000), decimal.NewFromInt(100))
	require.NoError(t, err)
	tx, err := tr.AddTransaction(core.Earn, decimal.NewFromInt(100), "salary", goal.ID)
	require.NoError(t, err)
	require.NoError(t, tr.SetDisplayCurrency("EUR"))

	view, err := buildDashboard(tr, i18n.New(i18n.English))
	require.NoError(t, err)
	require.Len(t, view.Recent, 1)
	require.Len(t, view.Goals, 1)
	assert.Equal(t, "0.85", view.Recent[0].AmountInput)

	prefill, err := decimal.NewFromString(view.Recent[0].AmountInput)
	require.NoError(t, err)
	edited, err := tr.EditTransaction(tx.ID, prefill, "bonus")
	require.NoError(t, err)
	assert.Equal(t, "bonus", edited.Description)
	assert.True(t, edited.Amount.Equal(tx.Amount), "stored amount moved to %s", edited.Amount)

	before, _ := tr.Goal(goal.ID)
	target, err := decimal.NewFromString(view.Goals[0].TargetInput)
	require.NoError(t, err)
	current, err := decimal.NewFromString(view.Goals[0].CurrentInput)
	require.NoError(t, err)
	g, err := tr.EditGoal(goal.ID, "Bicycle", target, current)
	require.NoError(t, err)
	assert.True(t, g.TargetAmount.Equal(before.TargetAmount), "target moved to %s", g.TargetAmount)
	assert.True(t, g.CurrentAmount.Equal(before.CurrentAmount), "current moved to %s", g.CurrentAmount)
}
