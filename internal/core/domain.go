package core

import "strings"

const (
	Needs   Category = "needs"
	Wants   Category = "wants"
	Savings Category = "savings"
)

// MaxIncomeCents is the ceiling accepted for a monthly income.
const MaxIncomeCents int64 = 100_000_000

// MaxDescriptionLen is the longest accepted expense description.
const MaxDescriptionLen = 100

type (
	// Category is one of the three 50/30/20 budget buckets.
	Category string

	// Expense is an immutable record of money spent. Amounts are integer
	// minor units (cents); Date is a "YYYY-MM-DD" calendar-day key.
	Expense struct {
		ID          string   `json:"id"`
		AmountCents int64    `json:"amount"`
		Description string   `json:"description"`
		Category    Category `json:"category"`
		Date        string   `json:"date"`
		CreatedAt   string   `json:"createdAt"`
	}

	// Location is an optional user location preference. All fields may be
	// unset; an absent location is represented by a nil *Location.
	Location struct {
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
		Address   string   `json:"address,omitempty"`
		City      string   `json:"city,omitempty"`
		District  string   `json:"district,omitempty"`
		Region    string   `json:"region,omitempty"`
		Country   string   `json:"country,omitempty"`
	}

	// ValidationResult reports whether an input is acceptable and, when it
	// is not, exactly one human-readable reason.
	ValidationResult struct {
		Valid  bool
		Reason string
	}
)

// IsValid reports whether c is one of the three known categories.
func (c Category) IsValid() bool {
	switch c {
	case Needs, Wants, Savings:
		return true
	default:
		return false
	}
}

// Categories returns the three buckets in their canonical order.
func Categories() []Category {
	return []Category{Needs, Wants, Savings}
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

// ValidateExpense checks user-supplied expense input before it becomes an
// Expense. Rules are applied in a fixed order so exactly one reason is
// reported for any malformed input.
func ValidateExpense(amountCents int64, description string, category Category) ValidationResult {
	if amountCents <= 0 {
		return invalid("Amount must be greater than 0")
	}
	if strings.TrimSpace(description) == "" {
		return invalid("Description is required")
	}
	if len(description) > MaxDescriptionLen {
		return invalid("Description must be under 100 characters")
	}
	if !category.IsValid() {
		return invalid("Please select a category")
	}
	return valid()
}

// ValidateIncome checks a monthly income in minor units.
func ValidateIncome(incomeCents int64) ValidationResult {
	if incomeCents < 0 {
		return invalid("Income cannot be negative")
	}
	if incomeCents > MaxIncomeCents {
		return invalid("Income exceeds maximum allowed")
	}
	return valid()
}
