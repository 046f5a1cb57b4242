package core

import "github.com/google/uuid"

// NewExpenseID returns an opaque unique identifier for a new expense.
// Uniqueness rests on UUID v4 randomness alone, which is sufficient for a
// local single-device store.
func NewExpenseID() string {
	return uuid.NewString()
}
