package http

import (
	"math"

	"github.com/shopspring/decimal"

	"pocket/internal/core"
	"pocket/internal/i18n"
	"pocket/internal/ledger"
	"pocket/internal/services"
)

type loginView struct {
	L        i18n.Translator
	Username string
	Error    string
}

type dashboardView struct {
	L          i18n.Translator
	User       string
	Currency   string
	Currencies []option
	Languages  []option

	Balance       string
	Earned        string
	Spent         string
	Streak        int
	Level         int
	Rank          string
	Progress      int
	NextThreshold string

	Goals     []goalView
	Recurring []recurringView
	Recent    []txView
	Daily     []barView
	Weekly    []barView

	Error string
}

type option struct {
	Value    string
	Selected bool
}

type goalView struct {
	ID       string
	Name     string
	Current  string
	Target   string
	Progress int
	// raw display-currency values for the edit form
	CurrentInput string
	TargetInput  string
}

type recurringView struct {
	Name      string
	Amount    string
	Frequency string
}

type txView struct {
	ID          string
	Earn        bool
	Description string
	Amount      string
	AmountInput string
	Time        string
	Goal        string
}

type barView struct {
	Label    string
	Value    string
	Height   int
	Negative bool
	Details  []detailView
}

type detailView struct {
	Description string
	Amount      string
}

// buildDashboard renders a tracker into template data. Must run inside the
// session lock.
func buildDashboard(tr *services.Tracker, l i18n.Translator) (dashboardView, error) {
	snap := tr.Snapshot()
	c := snap.Currency

	v := dashboardView{
		L:             l,
		User:          snap.User,
		Currency:      c.String(),
		Balance:       formatBase(snap.Stats.Balance, c),
		Earned:        formatBase(snap.Stats.TotalEarned, c),
		Spent:         formatBase(snap.Stats.TotalSpent, c),
		Streak:        snap.Stats.Streak,
		Level:         snap.Stats.Tier + 1,
		Rank:          snap.Stats.Rank,
		Progress:      int(math.Round(snap.Stats.Progress)),
		NextThreshold: core.Format(snap.Stats.NextThreshold, core.Reference),
	}
	for _, code := range core.Currencies() {
		v.Currencies = append(v.Currencies, option{Value: code.String(), Selected: code == c})
	}
	for _, lang := range i18n.Supported() {
		v.Languages = append(v.Languages, option{Value: lang, Selected: lang == l.Lang()})
	}

	goalNames := make(map[string]string, len(snap.Goals))
	for _, g := range snap.Goals {
		goalNames[g.ID] = g.Name
		v.Goals = append(v.Goals, goalView{
			ID:           g.ID,
			Name:         g.Name,
			Current:      formatBase(g.CurrentAmount, c),
			Target:       formatBase(g.TargetAmount, c),
			Progress:     int(math.Round(g.Progress())),
			CurrentInput: inputValue(g.CurrentAmount, c),
			TargetInput:  inputValue(g.TargetAmount, c),
		})
	}
	for _, r := range snap.Recurring {
		v.Recurring = append(v.Recurring, recurringView{
			Name:      r.Name,
			Amount:    formatBase(r.Amount, c),
			Frequency: l.T(string(r.Frequency)),
		})
	}
	for _, t := range tr.Recent(recentLimit) {
		v.Recent = append(v.Recent, txView{
			ID:          t.ID,
			Earn:        t.Kind == core.Earn,
			Description: t.Description,
			Amount:      formatBase(t.Amount, c),
			AmountInput: inputValue(t.Amount, c),
			Time:        t.Date.Format("15:04"),
			Goal:        goalNames[t.GoalID],
		})
	}

	daily, err := tr.Series(ledger.ModeDaily)
	if err != nil {
		return dashboardView{}, err
	}
	weekly, err := tr.Series(ledger.ModeWeekly)
	if err != nil {
		return dashboardView{}, err
	}
	v.Daily = bars(daily, c)
	v.Weekly = bars(weekly, c)
	return v, nil
}

// bars scales bucket values to percentages of the largest magnitude.
func bars(buckets []ledger.Bucket, c core.Currency) []barView {
	peak := decimal.Zero
	for _, b := range buckets {
		if abs := b.Value.Abs(); abs.GreaterThan(peak) {
			peak = abs
		}
	}
	out := make([]barView, 0, len(buckets))
	for _, b := range buckets {
		bv := barView{
			Label:    b.Label,
			Value:    core.Format(b.Value, c),
			Negative: b.Value.IsNegative(),
		}
		if !peak.IsZero() && !b.Value.IsZero() {
			pct, _ := b.Value.Abs().Div(peak).Mul(decimal.NewFromInt(100)).Round(0).Float64()
			bv.Height = max(int(pct), 2)
		}
		for _, d := range b.Details {
			bv.Details = append(bv.Details, detailView{Description: d.Description, Amount: core.Format(d.Amount, c)})
		}
		out = append(out, bv)
	}
	return out
}

// formatBase renders a base-unit amount in c. c comes from a tracker and is
// always known.
func formatBase(amount decimal.Decimal, c core.Currency) string {
	s, err := core.FormatBase(amount, c)
	if err != nil {
		return amount.StringFixed(2)
	}
	return s
}

func inputValue(amount decimal.Decimal, c core.Currency) string {
	d, err := core.FromBase(amount, c)
	if err != nil {
		return ""
	}
	return d.Round(2).String()
}
