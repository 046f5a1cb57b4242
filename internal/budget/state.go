// Package budget holds the canonical budget state behind a reducer-style
// store: a closed union of operations applied by a pure transition
// function, with persistence and event side effects layered on outside it.
package budget

import (
	"budgeteer/internal/core"
	"budgeteer/internal/locale"
)

// State is the root aggregate. It is treated as an immutable value: apply
// returns a new State and never mutates slices in place, so snapshots
// handed to callers and to the write queues stay stable.
type State struct {
	MonthlyIncome       int64          `json:"monthlyIncome"`
	Expenses            []core.Expense `json:"expenses"`
	CurrentMonth        string         `json:"currentMonth"`
	Loading             bool           `json:"isLoading"`
	Currency            string         `json:"currency"`
	Location            *core.Location `json:"location,omitempty"`
	OnboardingCompleted bool           `json:"onboardingCompleted"`
}

// initialState is the pre-load state: Loading until the persisted fields
// arrive, defaults everywhere else.
func initialState() State {
	return State{
		MonthlyIncome:       0,
		Expenses:            []core.Expense{},
		CurrentMonth:        core.CurrentMonthKey(),
		Loading:             true,
		Currency:            locale.DefaultCurrency,
		Location:            nil,
		OnboardingCompleted: false,
	}
}

// op is the closed set of state transitions. The unexported marker keeps
// the union sealed to this package.
type op interface{ isOp() }

type (
	setIncomeOp     struct{ amountCents int64 }
	addExpenseOp    struct{ expense core.Expense }
	deleteExpenseOp struct{ id string }
	setMonthOp      struct{ month string }
	setCurrencyOp   struct{ code string }
	setLocationOp   struct{ location *core.Location }

	completeOnboardingOp struct{}

	// loadDataOp merges the persisted fields in and leaves Loading behind.
	loadDataOp struct {
		income              int64
		expenses            []core.Expense
		currency            string
		location            *core.Location
		onboardingCompleted bool
	}

	// resetOp returns to defaults with a fresh current month, not Loading.
	resetOp struct{}
)

func (setIncomeOp) isOp()          {}
func (addExpenseOp) isOp()         {}
func (deleteExpenseOp) isOp()      {}
func (setMonthOp) isOp()           {}
func (setCurrencyOp) isOp()        {}
func (setLocationOp) isOp()        {}
func (completeOnboardingOp) isOp() {}
func (loadDataOp) isOp()           {}
func (resetOp) isOp()              {}

// apply is the pure transition function. No I/O, no mutation of the input.
func apply(s State, o op) State {
	switch o := o.(type) {
	case setIncomeOp:
		s.MonthlyIncome = o.amountCents

	case addExpenseOp:
		expenses := make([]core.Expense, len(s.Expenses), len(s.Expenses)+1)
		copy(expenses, s.Expenses)
		s.Expenses = append(expenses, o.expense)

	case deleteExpenseOp:
		expenses := make([]core.Expense, 0, len(s.Expenses))
		for _, e := range s.Expenses {
			if e.ID != o.id {
				expenses = append(expenses, e)
			}
		}
		s.Expenses = expenses

	case setMonthOp:
		s.CurrentMonth = o.month

	case setCurrencyOp:
		s.Currency = o.code

	case setLocationOp:
		s.Location = o.location

	case completeOnboardingOp:
		s.OnboardingCompleted = true

	case loadDataOp:
		s.MonthlyIncome = o.income
		s.Expenses = o.expenses
		s.Currency = o.currency
		s.Location = o.location
		s.OnboardingCompleted = o.onboardingCompleted
		s.Loading = false

	case resetOp:
		s = initialState()
		s.Loading = false
	}
	return s
}
