// Package ledger derives dashboard statistics and chart series from the
// transaction collection. Everything here is pure: callers pass the
// collection (and "now" where relevant) and get fresh values back.
package ledger

import (
	"github.com/shopspring/decimal"

	"pocket/internal/core"
)

// placeholderStreak is reported whenever at least one transaction exists.
// TODO: replace with a consecutive-days count once the product defines it.
const placeholderStreak = 7

// Stats is the derived summary shown on the dashboard. Monetary fields are
// in base units except BalanceReference and NextThreshold, which are in the
// reference currency.
type Stats struct {
	TotalEarned      decimal.Decimal `json:"totalEarned"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceReference decimal.Decimal `json:"balanceReference"`
	Streak           int             `json:"streak"`
	Tier             int             `json:"tier"`
	Progress         float64         `json:"progress"`
	Rank             string          `json:"rank"`
	NextThreshold    decimal.Decimal `json:"nextThreshold"`
}

// Summarize computes Stats for txs. Tiering always uses the reference
// currency so the display currency never changes the rank.
func Summarize(txs []core.Transaction) Stats {
	var s Stats
	for _, t := range txs {
		switch t.Kind {
		case core.Earn:
			s.TotalEarned = s.TotalEarned.Add(t.Amount)
		case core.Spend:
			s.TotalSpent = s.TotalSpent.Add(t.Amount)
		}
	}
	s.Balance = s.TotalEarned.Sub(s.TotalSpent)
	if len(txs) > 0 {
		s.Streak = placeholderStreak
	}

	// Reference is part of the fixed rate table, so the lookup cannot fail.
	ref, _ := core.FromBase(s.Balance, core.Reference)
	s.BalanceReference = ref
	s.Tier = TierFor(ref)
	s.Rank = RankFor(s.Tier)
	s.Progress = Progress(ref, s.Tier)
	_, s.NextThreshold = tierBounds(s.Tier)
	return s
}

// Memo caches Stats for a given collection version. The owner of the
// collection bumps the version whenever it replaces the slice.
type Memo struct {
	version  uint64
	valid    bool
	stats    Stats
	computes int
}

// Stats returns the cached summary when version matches the last call,
// otherwise it recomputes from txs.
func (m *Memo) Stats(version uint64, txs []core.Transaction) Stats {
	if m.valid && m.version == version {
		return m.stats
	}
	m.stats = Summarize(txs)
	m.version = version
	m.valid = true
	m.computes++
	return m.stats
}

// Computes reports how many times the summary was recomputed.
func (m *Memo) Computes() int {
	return m.computes
}
