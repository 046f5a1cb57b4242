package budget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"budgeteer/internal/core"
	"budgeteer/internal/events"
	applog "budgeteer/internal/log"
	"budgeteer/internal/storage"
)

// Persisted field groups. Each has its own serialized write queue so
// concurrent saves never target the same storage key out of order.
const (
	fieldIncome     = "income"
	fieldExpenses   = "expenses"
	fieldCurrency   = "currency"
	fieldLocation   = "location"
	fieldOnboarding = "onboarding"
)

func persistedFields() []string {
	return []string{fieldIncome, fieldExpenses, fieldCurrency, fieldLocation, fieldOnboarding}
}

const writerCloseTimeout = 5 * time.Second

// Store owns the canonical budget state. Mutations are synchronous state
// transitions; each one schedules an asynchronous best-effort write of the
// affected field, except while the initial load is still running.
type Store struct {
	mu    sync.Mutex
	state State

	adapter   *storage.Adapter
	publisher *events.Publisher
	logger    *applog.Logger

	writers map[string]*fieldWriter
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher attaches a change-event publisher. A nil publisher is
// allowed and disables eventing.
func WithPublisher(p *events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the store's logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(applog.ComponentBudget) }
}

// New creates a Store in the Loading state. A nil adapter is a wiring bug
// and panics. Call Load to reach the ready state.
func New(adapter *storage.Adapter, opts ...Option) *Store {
	if adapter == nil {
		panic("budget: New called with nil storage adapter")
	}
	s := &Store{
		state:   initialState(),
		adapter: adapter,
		logger:  applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentBudget),
		writers: make(map[string]*fieldWriter),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, f := range persistedFields() {
		s.writers[f] = newFieldWriter()
	}
	return s
}

// Load reads every persisted field concurrently and merges the results
// into state. Individual read failures have already been replaced by
// defaults at the adapter, so the store always leaves Loading, regardless
// of how many reads succeeded.
func (s *Store) Load(ctx context.Context) {
	var data loadDataOp

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { data.income = s.adapter.LoadIncome(ctx); return nil })
	g.Go(func() error { data.expenses = s.adapter.LoadExpenses(ctx); return nil })
	g.Go(func() error { data.currency = s.adapter.LoadCurrency(ctx); return nil })
	g.Go(func() error { data.location = s.adapter.LoadLocation(ctx); return nil })
	g.Go(func() error { data.onboardingCompleted = s.adapter.LoadOnboardingCompleted(ctx); return nil })
	_ = g.Wait() // reads are fail-soft; Wait only synchronizes

	s.mu.Lock()
	s.state = apply(s.state, data)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Budget state loaded",
		applog.FieldAmountCents, data.income,
		"expense_count", len(data.expenses),
		"currency", data.currency,
		"onboarding_completed", data.onboardingCompleted)
}

// dispatch applies the op and, when field names a persisted field group,
// schedules the write and the change event. Nothing is persisted while the
// initial load is still running, so default values can never clobber
// previously stored data.
func (s *Store) dispatch(o op, field string) {
	s.mu.Lock()
	s.state = apply(s.state, o)
	snapshot := s.state
	skip := s.state.Loading || s.closed || field == ""
	s.mu.Unlock()

	if skip {
		return
	}
	s.persist(field, snapshot)
	s.publish(field)
}

func (s *Store) persist(field string, snapshot State) {
	w := s.writers[field]
	switch field {
	case fieldIncome:
		income := snapshot.MonthlyIncome
		w.enqueue(func() { s.adapter.SaveIncome(context.Background(), income) })
	case fieldExpenses:
		expenses := snapshot.Expenses
		w.enqueue(func() { s.adapter.SaveExpenses(context.Background(), expenses) })
	case fieldCurrency:
		currency := snapshot.Currency
		w.enqueue(func() { s.adapter.SaveCurrency(context.Background(), currency) })
	case fieldLocation:
		location := snapshot.Location
		w.enqueue(func() { s.adapter.SaveLocation(context.Background(), location) })
	case fieldOnboarding:
		done := snapshot.OnboardingCompleted
		w.enqueue(func() { s.adapter.SaveOnboardingCompleted(context.Background(), done) })
	}
}

func (s *Store) publish(field string) {
	if s.publisher == nil {
		return
	}
	go func() {
		if err := s.publisher.PublishChange(context.Background(), field); err != nil {
			s.logger.Error("Change event publish failed",
				applog.FieldField, field,
				applog.FieldError, err)
		}
	}()
}

// SetIncome replaces the monthly income. Callers validate with
// core.ValidateIncome first; the store does not re-validate.
func (s *Store) SetIncome(amountCents int64) {
	s.dispatch(setIncomeOp{amountCents: amountCents}, fieldIncome)
}

// AddExpense appends an already-validated expense, preserving insertion
// order.
func (s *Store) AddExpense(e core.Expense) {
	s.dispatch(addExpenseOp{expense: e}, fieldExpenses)
}

// DeleteExpense removes the expense with the given id. Unknown ids are a
// no-op, though the expense collection is still rewritten.
func (s *Store) DeleteExpense(id string) {
	s.dispatch(deleteExpenseOp{id: id}, fieldExpenses)
}

// SetMonth changes the month scoping the derived views. The selected month
// is session state and is not persisted.
func (s *Store) SetMonth(month string) {
	s.dispatch(setMonthOp{month: month}, "")
}

// SetCurrency replaces the active currency code.
func (s *Store) SetCurrency(code string) {
	s.dispatch(setCurrencyOp{code: code}, fieldCurrency)
}

// SetLocation replaces the location preference; nil clears it.
func (s *Store) SetLocation(loc *core.Location) {
	s.dispatch(setLocationOp{location: loc}, fieldLocation)
}

// CompleteOnboarding marks onboarding done. There is no operation to undo
// this short of Reset.
func (s *Store) CompleteOnboarding() {
	s.dispatch(completeOnboardingOp{}, fieldOnboarding)
}

// Reset clears persisted storage and then resets in-memory state to
// defaults with a fresh current month. Pending writes are dropped and
// in-flight ones waited out before the clear, so a stale save can never
// resurrect pre-reset data. If the clear fails the state is left untouched
// and the error returned.
func (s *Store) Reset(ctx context.Context) error {
	for _, w := range s.writers {
		w.discard()
		w.barrier(writerCloseTimeout)
	}

	if err := s.adapter.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear persisted state: %w", err)
	}

	s.mu.Lock()
	s.state = apply(s.state, resetOp{})
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Budget state reset to defaults")
	s.publish("reset")
	return nil
}

// State returns a snapshot of the current state. The expense slice is the
// state's own; it is never mutated in place, so callers may read it freely
// but must not modify it.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ExpensesForCurrentMonth derives the expenses scoped to the selected
// month. Recomputed on every call.
func (s *Store) ExpensesForCurrentMonth() []core.Expense {
	st := s.State()
	return core.ExpensesForMonth(st.Expenses, st.CurrentMonth)
}

// Summary derives the full budget summary for the selected month.
// Recomputed on every call.
func (s *Store) Summary() core.Summary {
	st := s.State()
	return core.Summarize(st.MonthlyIncome, core.ExpensesForMonth(st.Expenses, st.CurrentMonth))
}

// Close flushes pending writes and stops the write queues. The store must
// not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	for field, w := range s.writers {
		if !w.close(writerCloseTimeout) {
			s.logger.Warn("Write queue did not drain before timeout", applog.FieldField, field)
		}
	}
}
