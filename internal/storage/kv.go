// Package storage persists budget state as textual values under fixed keys.
// A KV backend supplies durability; the Adapter layers the per-field
// encodings, documented defaults and fail-soft error handling on top.
package storage

import "context"

// Storage keys, namespaced per app area. ClearAll removes exactly this set.
const (
	keyIncome     = "@budget_income"
	keyExpenses   = "@budget_expenses"
	keyCurrency   = "@budget_currency"
	keyLocation   = "@budget_location"
	keyOnboarding = "@budget_onboarding_completed"
	keyLanguage   = "@app_language"
	keyTheme      = "@app_theme"
)

func allKeys() []string {
	return []string{
		keyIncome,
		keyExpenses,
		keyCurrency,
		keyLocation,
		keyOnboarding,
		keyLanguage,
		keyTheme,
	}
}

// KV is the durable key-value contract the adapter runs against.
type KV interface {
	// Get returns the stored value and whether the key existed.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value under the key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMany removes every listed key in one operation.
	DeleteMany(ctx context.Context, keys ...string) error

	Close() error
}
