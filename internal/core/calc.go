package core

import (
	"math"
	"sort"
	"strings"
)

// Allocation shares of the 50/30/20 rule. They sum to 1.0; each category's
// allocation is rounded independently, so the three allocations may differ
// from the income by a couple of cents in total.
var categoryShares = map[Category]float64{
	Needs:   0.50,
	Wants:   0.30,
	Savings: 0.20,
}

// Share returns the income fraction allocated to a category.
func Share(c Category) float64 {
	return categoryShares[c]
}

type (
	// CategoryBudget is the derived per-bucket view for one month. All
	// monetary fields are integer cents; Percentage is spent/allocated
	// expressed as 0-100+ and is the only float in the model.
	CategoryBudget struct {
		AllocatedCents int64   `json:"allocated"`
		SpentCents     int64   `json:"spent"`
		RemainingCents int64   `json:"remaining"`
		Percentage     float64 `json:"percentage"`
		OverBudget     bool    `json:"isOverBudget"`
	}

	// Summary aggregates the three category budgets for one month.
	Summary struct {
		IncomeCents         int64          `json:"income"`
		TotalSpentCents     int64          `json:"totalSpent"`
		TotalRemainingCents int64          `json:"totalRemaining"`
		Needs               CategoryBudget `json:"needs"`
		Wants               CategoryBudget `json:"wants"`
		Savings             CategoryBudget `json:"savings"`
	}

	// DayGroup is one calendar day's expenses, used for display grouping.
	DayGroup struct {
		Date     string    `json:"date"`
		Expenses []Expense `json:"expenses"`
	}
)

// ExpensesForMonth returns the expenses whose day key falls inside the
// given month, preserving their relative order. The input is not modified.
func ExpensesForMonth(expenses []Expense, month string) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if strings.HasPrefix(e.Date, month) {
			out = append(out, e)
		}
	}
	return out
}

// BudgetForCategory derives one category's budget from the income and the
// already month-filtered expenses.
func BudgetForCategory(incomeCents int64, monthExpenses []Expense, c Category) CategoryBudget {
	allocated := int64(math.Round(float64(incomeCents) * Share(c)))

	var spent int64
	for _, e := range monthExpenses {
		if e.Category == c {
			spent += e.AmountCents
		}
	}

	var pct float64
	if allocated > 0 {
		pct = float64(spent) / float64(allocated) * 100
	}

	return CategoryBudget{
		AllocatedCents: allocated,
		SpentCents:     spent,
		RemainingCents: allocated - spent,
		Percentage:     pct,
		OverBudget:     spent > allocated,
	}
}

// Summarize derives the full budget summary from the income and the
// already month-filtered expenses.
func Summarize(incomeCents int64, monthExpenses []Expense) Summary {
	needs := BudgetForCategory(incomeCents, monthExpenses, Needs)
	wants := BudgetForCategory(incomeCents, monthExpenses, Wants)
	savings := BudgetForCategory(incomeCents, monthExpenses, Savings)

	totalSpent := needs.SpentCents + wants.SpentCents + savings.SpentCents

	return Summary{
		IncomeCents:         incomeCents,
		TotalSpentCents:     totalSpent,
		TotalRemainingCents: incomeCents - totalSpent,
		Needs:               needs,
		Wants:               wants,
		Savings:             savings,
	}
}

// GroupByDate groups expenses by day key, most recent day first. Within a
// day the original relative order is preserved. The input is not modified.
func GroupByDate(expenses []Expense) []DayGroup {
	sorted := make([]Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	var groups []DayGroup
	for _, e := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			groups[n-1].Expenses = append(groups[n-1].Expenses, e)
			continue
		}
		groups = append(groups, DayGroup{Date: e.Date, Expenses: []Expense{e}})
	}
	return groups
}
