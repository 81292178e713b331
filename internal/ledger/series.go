package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"pocket/internal/core"
)

// Mode selects the bucketing of a chart series.
type Mode string

const (
	// ModeWeekly buckets the last seven calendar days, oldest first.
	ModeWeekly Mode = "weekly"
	// ModeDaily buckets the hours of the current day.
	ModeDaily Mode = "daily"
)

var ErrUnknownMode = errors.New("unknown series mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeWeekly, ModeDaily:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Detail is one contributing transaction in a bucket, in display currency.
type Detail struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Bucket is one point of a chart series.
type Bucket struct {
	Label   string          `json:"name"`
	Start   time.Time       `json:"start"`
	Value   decimal.Decimal `json:"value"`
	Details []Detail        `json:"details"`
}

// Series buckets the net flow of txs for charting, converted to c. Calendar
// days and hours are taken in now's location.
func Series(mode Mode, txs []core.Transaction, c core.Currency, now time.Time) ([]Bucket, error) {
	rate, err := c.Rate()
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeWeekly:
		return weekly(txs, rate, now), nil
	case ModeDaily:
		return hourly(txs, rate, now), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
}

func weekly(txs []core.Transaction, rate decimal.Decimal, now time.Time) []Bucket {
	today := startOfDay(now)
	buckets := make([]Bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		buckets = append(buckets, Bucket{
			Label:   day.Weekday().String()[:3],
			Start:   day,
			Value:   decimal.Zero,
			Details: []Detail{},
		})
	}
	loc := now.Location()
	for _, t := range txs {
		d := startOfDay(t.Date.In(loc))
		for i := range buckets {
			if buckets[i].Start.Equal(d) {
				buckets[i].add(t, rate)
				break
			}
		}
	}
	return buckets
}

func hourly(txs []core.Transaction, rate decimal.Decimal, now time.Time) []Bucket {
	today := startOfDay(now)
	buckets := make([]Bucket, 24)
	for h := range buckets {
		buckets[h] = Bucket{
			Label:   strconv.Itoa(h) + ":00",
			Start:   time.Date(today.Year(), today.Month(), today.Day(), h, 0, 0, 0, today.Location()),
			Value:   decimal.Zero,
			Details: []Detail{},
		}
	}
	loc := now.Location()
	for _, t := range txs {
		local := t.Date.In(loc)
		if !startOfDay(local).Equal(today) {
			continue
		}
		buckets[local.Hour()].add(t, rate)
	}
	return buckets
}

func (b *Bucket) add(t core.Transaction, rate decimal.Decimal) {
	v := t.Signed().Div(rate)
	b.Value = b.Value.Add(v)
	b.Details = append(b.Details, Detail{Description: t.Description, Amount: v})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
