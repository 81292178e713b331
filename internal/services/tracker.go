// Package services implements the ledger operations the presentation shell
// calls into: adding and editing transactions, goals and recurring payments,
// and reading back a consistent snapshot with derived statistics.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pocket/internal/core"
	"pocket/internal/ledger"
	"pocket/internal/log"
)

// Tracker owns the collections of one authenticated session. It is not safe
// for concurrent use; callers serialize actions.
//
// Collections are never mutated in place: every action builds a new slice
// and swaps it in, so slices handed out by Snapshot stay valid.
type Tracker struct {
	user      string
	currency  core.Currency
	txs       []core.Transaction
	goals     []core.Goal
	recurring []core.RecurringPayment

	// version counts replacements of txs and keys the stats memo.
	version uint64
	memo    ledger.Memo

	clock  Clock
	ids    IDGenerator
	logger *log.Logger
}

// Snapshot is everything the shell needs to render the dashboard.
type Snapshot struct {
	User         string                  `json:"user"`
	Currency     core.Currency           `json:"currency"`
	Version      uint64                  `json:"version"`
	Transactions []core.Transaction      `json:"transactions"`
	Goals        []core.Goal             `json:"goals"`
	Recurring    []core.RecurringPayment `json:"recurring"`
	Stats        ledger.Stats            `json:"stats"`
}

type Option func(*Tracker)

func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(t *Tracker) { t.ids = g }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithCurrency sets the initial display currency. Unknown codes are ignored
// and the default (USD) is kept.
func WithCurrency(c core.Currency) Option {
	return func(t *Tracker) {
		if _, err := c.Rate(); err == nil {
			t.currency = c
		}
	}
}

// NewTracker returns an empty tracker for user.
func NewTracker(user string, opts ...Option) *Tracker {
	t := &Tracker{
		user:      user,
		currency:  core.USD,
		txs:       []core.Transaction{},
		goals:     []core.Goal{},
		recurring: []core.RecurringPayment{},
		clock:     SystemClock{},
		ids:       UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.Nop()
	}
	t.logger = t.logger.WithComponent(log.ComponentTracker).With(log.FieldUser, user)
	return t
}

func (t *Tracker) User() string { return t.user }

func (t *Tracker) Currency() core.Currency { return t.currency }

// Version changes every time the transaction collection is replaced.
func (t *Tracker) Version() uint64 { return t.version }

// SetDisplayCurrency switches the currency used for input and display.
// Stored amounts and the rank are unaffected.
func (t *Tracker) SetDisplayCurrency(code string) error {
	c, err := core.ParseCurrency(code)
	if err != nil {
		return err
	}
	t.currency = c
	t.logger.Debug("Display currency changed", log.FieldOperation, log.OpCurrency, log.FieldCurrency, c)
	return nil
}

func (t *Tracker) toBase(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, core.ErrInvalidAmount
	}
	return core.ToBase(amount, t.currency)
}

// AddTransaction records a new entry from an amount in the display currency
// and prepends it. A matching goalID also moves that goal's progress.
func (t *Tracker) AddTransaction(kind core.Kind, amount decimal.Decimal, description, goalID string) (core.Transaction, error) {
	base, err := t.toBase(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	tx := core.Transaction{
		Kind:        kind,
		Amount:      base,
		Category:    core.CategoryGeneral,
		Description: core.Truncate(description, core.MaxDescriptionLen),
		Date:        t.clock.Now(),
		GoalID:      goalID,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	tx.ID = t.ids.NewID()

	t.replaceTransactions(prepend(tx, t.txs))
	linked := t.linkGoal(tx.GoalID, tx.Kind, tx.Amount)

	t.logger.Info("Transaction added",
		log.FieldOperation, log.OpCreate,
		log.FieldTransaction, tx.ID,
		log.FieldKind, tx.Kind,
		log.FieldAmountBase, tx.Amount.String(),
		log.FieldGoal, tx.GoalID,
		log.FieldGoalLinked, linked)
	return tx, nil
}

// EditTransaction replaces the amount and description of an existing entry.
//
// When the entry references a goal, the new amount is applied to that goal
// again; the previous contribution is not reversed. An amount equal to what
// the display currency shows for the stored one keeps the stored value.
func (t *Tracker) EditTransaction(id string, amount decimal.Decimal, description string) (core.Transaction, error) {
	if amount.IsNegative() {
		return core.Transaction{}, fmt.Errorf("edit transaction: %w", core.ErrInvalidAmount)
	}
	idx := t.indexTransaction(id)
	if idx < 0 {
		return core.Transaction{}, fmt.Errorf("edit transaction %q: %w", id, core.ErrNotFound)
	}

	edited := t.txs[idx]
	base, err := t.baseFor(edited.Amount, amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("edit transaction: %w", err)
	}
	edited.Amount = base
	edited.Description = core.Truncate(description, core.MaxDescriptionLen)
	if err := edited.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("edit transaction: %w", err)
	}

	next := make([]core.Transaction, len(t.txs))
	copy(next, t.txs)
	next[idx] = edited
	t.replaceTransactions(next)
	linked := t.linkGoal(edited.GoalID, edited.Kind, edited.Amount)

	t.logger.Info("Transaction edited",
		log.FieldOperation, log.OpUpdate,
		log.FieldTransaction, edited.ID,
		log.FieldAmountBase, edited.Amount.String(),
		log.FieldGoalLinked, linked)
	return edited, nil
}

// AddGoal appends a goal; target and current are in the display currency.
func (t *Tracker) AddGoal(name string, target, current decimal.Decimal) (core.Goal, error) {
	g, err := t.buildGoal(core.Goal{}, name, target, current)
	if err != nil {
		return core.Goal{}, fmt.Errorf("add goal: %w", err)
	}
	g.ID = t.ids.NewID()
	next := make([]core.Goal, 0, len(t.goals)+1)
	next = append(next, t.goals...)
	t.goals = append(next, g)

	t.logger.Info("Goal added", log.FieldOperation, log.OpCreate, log.FieldGoal, g.ID)
	return g, nil
}

// EditGoal overwrites name, target and current of an existing goal. The
// current amount is taken as given, without clamping.
func (t *Tracker) EditGoal(id, name string, target, current decimal.Decimal) (core.Goal, error) {
	idx := -1
	for i, g := range t.goals {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Goal{}, fmt.Errorf("edit goal %q: %w", id, core.ErrNotFound)
	}
	g, err := t.buildGoal(t.goals[idx], name, target, current)
	if err != nil {
		return core.Goal{}, fmt.Errorf("edit goal: %w", err)
	}
	next := make([]core.Goal, len(t.goals))
	copy(next, t.goals)
	next[idx] = g
	t.goals = next

	t.logger.Info("Goal edited", log.FieldOperation, log.OpUpdate, log.FieldGoal, g.ID)
	return g, nil
}

// buildGoal converts target and current into base units. Amounts that match
// what prev shows in the display currency keep prev's stored values.
func (t *Tracker) buildGoal(prev core.Goal, name string, target, current decimal.Decimal) (core.Goal, error) {
	targetBase, err := t.baseFor(prev.TargetAmount, target)
	if err != nil {
		return core.Goal{}, err
	}
	currentBase, err := t.baseFor(prev.CurrentAmount, current)
	if err != nil {
		return core.Goal{}, err
	}
	g := core.Goal{
		ID:            prev.ID,
		Name:          core.Truncate(name, core.MaxNameLen),
		TargetAmount:  targetBase,
		CurrentAmount: currentBase,
	}
	return g, g.Validate()
}

// baseFor converts amount from the display currency, unless amount is what
// stored shows as (in full or rounded to cents). Saving an untouched edit
// form then leaves the base value as it was.
func (t *Tracker) baseFor(stored, amount decimal.Decimal) (decimal.Decimal, error) {
	if shown, err := core.FromBase(stored, t.currency); err == nil &&
		(shown.Equal(amount) || shown.Round(2).Equal(amount)) {
		return stored, nil
	}
	return core.ToBase(amount, t.currency)
}

// AddRecurring records a recurring payment and charges it once right away.
// Nothing re-charges it later.
func (t *Tracker) AddRecurring(name string, amount decimal.Decimal, freq core.Frequency) (core.RecurringPayment, core.Transaction, error) {
	base, err := t.toBase(amount)
	if err != nil {
		return core.RecurringPayment{}, core.Transaction{}, fmt.Errorf("add recurring: %w", err)
	}
	r := core.RecurringPayment{
		Name:      core.Truncate(name, core.MaxNameLen),
		Amount:    base,
		Frequency: freq,
		Kind:      core.Spend,
	}
	if err := r.Validate(); err != nil {
		return core.RecurringPayment{}, core.Transaction{}, fmt.Errorf("add recurring: %w", err)
	}
	r.ID = t.ids.NewID()
	charge := recurringCharge(r, t.ids.NewID(), t.clock.Now())

	t.recurring = prepend(r, t.recurring)
	t.replaceTransactions(prepend(charge, t.txs))

	t.logger.Info("Recurring payment added",
		log.FieldOperation, log.OpCreate,
		log.FieldRecurring, r.ID,
		log.FieldTransaction, charge.ID,
		log.FieldAmountBase, r.Amount.String(),
		log.FieldFrequency, r.Frequency)
	return r, charge, nil
}

// Stats returns the derived summary, recomputed only after the transaction
// collection changed.
func (t *Tracker) Stats() ledger.Stats {
	return t.memo.Stats(t.version, t.txs)
}

// Snapshot returns the current collections and derived stats.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		User:         t.user,
		Currency:     t.currency,
		Version:      t.version,
		Transactions: t.txs,
		Goals:        t.goals,
		Recurring:    t.recurring,
		Stats:        t.Stats(),
	}
}

// Series buckets the net flow for charting in the display currency.
func (t *Tracker) Series(mode ledger.Mode) ([]ledger.Bucket, error) {
	return ledger.Series(mode, t.txs, t.currency, t.clock.Now())
}

// Recent returns at most n of the newest transactions.
func (t *Tracker) Recent(n int) []core.Transaction {
	if n < 0 {
		n = 0
	}
	if n > len(t.txs) {
		n = len(t.txs)
	}
	return t.txs[:n:n]
}

// Transaction looks up an entry by id.
func (t *Tracker) Transaction(id string) (core.Transaction, bool) {
	if idx := t.indexTransaction(id); idx >= 0 {
		return t.txs[idx], true
	}
	return core.Transaction{}, false
}

// Goal looks up a goal by id.
func (t *Tracker) Goal(id string) (core.Goal, bool) {
	for _, g := range t.goals {
		if g.ID == id {
			return g, true
		}
	}
	return core.Goal{}, false
}

func (t *Tracker) indexTransaction(id string) int {
	for i, tx := range t.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) replaceTransactions(next []core.Transaction) {
	t.txs = next
	t.version++
}

func prepend[T any](v T, list []T) []T {
	next := make([]T, 0, len(list)+1)
	next = append(next, v)
	return append(next, list...)
}
