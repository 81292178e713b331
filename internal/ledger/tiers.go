package ledger

import "github.com/shopspring/decimal"

// thresholds are expressed in the reference currency, ascending.
var thresholds = []decimal.Decimal{
	decimal.NewFromInt(200),
	decimal.NewFromInt(1000),
	decimal.NewFromInt(5000),
	decimal.NewFromInt(15000),
	decimal.NewFromInt(50000),
	decimal.NewFromInt(150000),
	decimal.NewFromInt(500000),
	decimal.NewFromInt(1500000),
	decimal.NewFromInt(5000000),
	decimal.NewFromInt(10000000),
}

var ranks = []string{
	"Spender", "Saver", "Manager", "Owner", "Businessman",
	"Investor", "Magnate", "Tycoon", "Billionaire", "Wealth Master",
}

// MaxTier is the highest tier index.
const MaxTier = 9

// Thresholds returns a copy of the tier thresholds.
func Thresholds() []decimal.Decimal {
	return append([]decimal.Decimal(nil), thresholds...)
}

// TierFor returns the index of the first threshold strictly greater than
// balance, or MaxTier when balance reaches every threshold.
func TierFor(balance decimal.Decimal) int {
	for i, th := range thresholds {
		if balance.LessThan(th) {
			return i
		}
	}
	return MaxTier
}

// RankFor returns the rank label for a tier, clamped to the known ranks.
func RankFor(tier int) string {
	if tier < 0 {
		tier = 0
	}
	if tier >= len(ranks) {
		tier = len(ranks) - 1
	}
	return ranks[tier]
}

// tierBounds returns the thresholds surrounding tier.
func tierBounds(tier int) (prev, next decimal.Decimal) {
	prev = decimal.Zero
	if tier > 0 {
		prev = thresholds[tier-1]
	}
	next = thresholds[len(thresholds)-1]
	if tier < len(thresholds) {
		next = thresholds[tier]
	}
	return prev, next
}

// Progress returns how far balance is through its tier, in [0, 100].
func Progress(balance decimal.Decimal, tier int) float64 {
	prev, next := tierBounds(tier)
	if balance.LessThanOrEqual(prev) {
		return 0
	}
	span := next.Sub(prev)
	if !span.IsPositive() {
		return 100
	}
	p := balance.Sub(prev).Div(span).Mul(decimal.NewFromInt(100))
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	return p.InexactFloat64()
}
