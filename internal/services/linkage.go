package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pocket/internal/core"
)

// linkGoal applies a signed contribution to the goal with goalID, floored at
// zero. It reports whether a goal was found; other goals are untouched.
func (t *Tracker) linkGoal(goalID string, kind core.Kind, amount decimal.Decimal) bool {
	if goalID == "" {
		return false
	}
	next, ok := applyToGoal(t.goals, goalID, kind, amount)
	if ok {
		t.goals = next
	}
	return ok
}

func applyToGoal(goals []core.Goal, goalID string, kind core.Kind, amount decimal.Decimal) ([]core.Goal, bool) {
	for i, g := range goals {
		if g.ID != goalID {
			continue
		}
		next := make([]core.Goal, len(goals))
		copy(next, goals)
		next[i] = g.Apply(kind, amount)
		return next, true
	}
	return goals, false
}

// recurringCharge is the one-off transaction created with a recurring payment.
func recurringCharge(r core.RecurringPayment, id string, now time.Time) core.Transaction {
	return core.Transaction{
		ID:          id,
		Kind:        core.Spend,
		Amount:      r.Amount,
		Category:    core.CategoryRecurring,
		Description: core.Truncate(r.Name, core.MaxDescriptionLen),
		Date:        now,
	}
}
