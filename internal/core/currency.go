// Package core holds the ledger entities and the currency model.
//
// Every amount is stored in the base currency (RSD). Other currencies exist only
// for display and input, converted through a closed table of fixed rates.
package core

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency is an ISO-like display currency code.
type Currency string

const (
	RSD Currency = "RSD"
	USD Currency = "USD"
	EUR Currency = "EUR"

	// Base is the currency every stored amount is expressed in.
	Base = RSD
	// Reference is the currency tiers are evaluated in.
	Reference = USD
)

// rates holds units of base currency per one unit of each currency.
var rates = map[Currency]decimal.Decimal{
	RSD: decimal.NewFromInt(1),
	USD: decimal.NewFromInt(100),
	EUR: decimal.NewFromInt(117),
}

// Currencies lists the supported codes in display order.
func Currencies() []Currency {
	return []Currency{USD, EUR, RSD}
}

// ParseCurrency validates a currency code. Unknown codes are rejected.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := rates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

func (c Currency) String() string {
	return string(c)
}

// Rate returns the number of base units one unit of c is worth.
func (c Currency) Rate() (decimal.Decimal, error) {
	r, ok := rates[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, string(c))
	}
	return r, nil
}

// ToBase converts an amount expressed in c into base units.
func ToBase(amount decimal.Decimal, c Currency) (decimal.Decimal, error) {
	r, err := c.Rate()
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(r), nil
}

// FromBase converts an amount in base units into c.
func FromBase(amount decimal.Decimal, c Currency) (decimal.Decimal, error) {
	r, err := c.Rate()
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Div(r), nil
}

// Format renders amount with two decimals, comma-grouped thousands and the
// currency code suffix, e.g. "1,234.50 USD".
func Format(amount decimal.Decimal, c Currency) string {
	rounded := amount.Round(2)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		n = big.NewInt(0)
	}
	s := humanize.BigComma(n) + "." + frac
	if rounded.IsNegative() {
		s = "-" + s
	}
	return s + " " + string(c)
}

// FormatBase converts a base amount into c and formats it.
func FormatBase(amount decimal.Decimal, c Currency) (string, error) {
	v, err := FromBase(amount, c)
	if err != nil {
		return "", err
	}
	return Format(v, c), nil
}
