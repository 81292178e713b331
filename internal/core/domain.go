package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Earn  Kind = "earn"
	Spend Kind = "spend"
)

const (
	Daily   Frequency = "daily"
	Monthly Frequency = "monthly"
)

const (
	// MaxDescriptionLen is the display limit for transaction descriptions.
	MaxDescriptionLen = 15
	// MaxNameLen is the limit for goal and recurring payment names.
	MaxNameLen = 15

	CategoryGeneral   = "General"
	CategoryRecurring = "Recurring"
)

type (
	// Kind carries the direction of a transaction; amounts are never signed.
	Kind string

	Frequency string

	Transaction struct {
		ID          string          `json:"id"`
		Kind        Kind            `json:"type"`
		Amount      decimal.Decimal `json:"amount"` // base currency (RSD)
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		GoalID      string          `json:"goalId,omitempty"`
	}

	Goal struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		TargetAmount  decimal.Decimal `json:"targetAmount"`
		CurrentAmount decimal.Decimal `json:"currentAmount"`
	}

	RecurringPayment struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Amount    decimal.Decimal `json:"amount"`
		Frequency Frequency       `json:"frequency"`
		Kind      Kind            `json:"type"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrNotFound         = errors.New("not found")
	ErrZeroDate         = errors.New("date cannot be zero")
)

// ParseKind maps a form value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Earn, Spend:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

// Sign returns +1 for earn and -1 for spend.
func (k Kind) Sign() decimal.Decimal {
	if k == Earn {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// Signed returns the amount with the direction of k applied.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(k.Sign())
}

func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case Daily, Monthly:
		return f, nil
	default:
		return "", ErrInvalidFrequency
	}
}

// Truncate cuts s to at most n runes after trimming surrounding space.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (t Transaction) Validate() error {
	if t.Kind != Earn && t.Kind != Spend {
		return ErrInvalidKind
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Signed returns the transaction amount, negative for spends.
func (t Transaction) Signed() decimal.Decimal {
	return t.Kind.Signed(t.Amount)
}

// Validate only checks the name; target and current amounts are free-form.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Progress returns the share of the target already saved, capped at 100.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	if p.IsNegative() {
		return 0
	}
	return p.InexactFloat64()
}

// Apply adds a signed contribution to the goal, never dropping below zero.
func (g Goal) Apply(kind Kind, amount decimal.Decimal) Goal {
	next := g.CurrentAmount.Add(kind.Signed(amount))
	if next.IsNegative() {
		next = decimal.Zero
	}
	g.CurrentAmount = next
	return g
}

func (r RecurringPayment) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	switch r.Frequency {
	case Daily, Monthly:
	default:
		return ErrInvalidFrequency
	}
	if r.Kind != Spend {
		return ErrInvalidKind
	}
	return nil
}
