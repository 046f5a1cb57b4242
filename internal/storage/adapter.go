package storage

import (
	"context"
	"encoding/json"

	"budgeteer/internal/core"
	"budgeteer/internal/locale"
	applog "budgeteer/internal/log"
)

// Adapter is the typed persistence layer over a KV backend. Loads never
// fail: a missing key, a decode error or a backend error all yield the
// field's documented default, with failures logged. Saves are best-effort;
// a failed save is logged and swallowed, leaving the in-memory state
// authoritative until the next save of that key.
type Adapter struct {
	kv     KV
	logger *applog.Logger
}

// NewAdapter wires an Adapter to a KV backend. A nil backend is a wiring
// bug and panics.
func NewAdapter(kv KV, logger *applog.Logger) *Adapter {
	if kv == nil {
		panic("storage: NewAdapter called with nil KV backend")
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Adapter{kv: kv, logger: logger.WithComponent(applog.ComponentStorage)}
}

func (a *Adapter) loadRaw(ctx context.Context, key string) (string, bool) {
	value, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.logger.ErrorContext(ctx, "Load failed, using default", applog.FieldKey, key, applog.FieldError, err)
		return "", false
	}
	return value, ok
}

func (a *Adapter) saveRaw(ctx context.Context, key, value string) {
	if err := a.kv.Set(ctx, key, value); err != nil {
		a.logger.ErrorContext(ctx, "Save failed, state not persisted", applog.FieldKey, key, applog.FieldError, err)
	}
}

// LoadIncome returns the persisted monthly income, 0 by default.
func (a *Adapter) LoadIncome(ctx context.Context) int64 {
	raw, ok := a.loadRaw(ctx, keyIncome)
	if !ok {
		return 0
	}
	var income int64
	if err := json.Unmarshal([]byte(raw), &income); err != nil {
		a.logger.ErrorContext(ctx, "Decode failed, using default", applog.FieldKey, keyIncome, applog.FieldError, err)
		return 0
	}
	return income
}

// SaveIncome persists the monthly income.
func (a *Adapter) SaveIncome(ctx context.Context, incomeCents int64) {
	body, _ := json.Marshal(incomeCents)
	a.saveRaw(ctx, keyIncome, string(body))
}

// LoadExpenses returns the persisted expense collection, empty by default.
func (a *Adapter) LoadExpenses(ctx context.Context) []core.Expense {
	raw, ok := a.loadRaw(ctx, keyExpenses)
	if !ok {
		return []core.Expense{}
	}
	var expenses []core.Expense
	if err := json.Unmarshal([]byte(raw), &expenses); err != nil {
		a.logger.ErrorContext(ctx, "Decode failed, using default", applog.FieldKey, keyExpenses, applog.FieldError, err)
		return []core.Expense{}
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return expenses
}

// SaveExpenses persists the full expense collection.
func (a *Adapter) SaveExpenses(ctx context.Context, expenses []core.Expense) {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	body, err := json.Marshal(expenses)
	if err != nil {
		a.logger.ErrorContext(ctx, "Encode failed, state not persisted", applog.FieldKey, keyExpenses, applog.FieldError, err)
		return
	}
	a.saveRaw(ctx, keyExpenses, string(body))
}

// LoadCurrency returns the persisted ISO 4217 code, USD by default.
func (a *Adapter) LoadCurrency(ctx context.Context) string {
	raw, ok := a.loadRaw(ctx, keyCurrency)
	if !ok || raw == "" {
		return locale.DefaultCurrency
	}
	return raw
}

// SaveCurrency persists the currency code as a raw string.
func (a *Adapter) SaveCurrency(ctx context.Context, code string) {
	a.saveRaw(ctx, keyCurrency, code)
}

// LoadLocation returns the persisted location preference, nil when absent.
func (a *Adapter) LoadLocation(ctx context.Context) *core.Location {
	raw, ok := a.loadRaw(ctx, keyLocation)
	if !ok {
		return nil
	}
	var loc core.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		a.logger.ErrorContext(ctx, "Decode failed, using default", applog.FieldKey, keyLocation, applog.FieldError, err)
		return nil
	}
	return &loc
}

// SaveLocation persists the location preference. A nil location removes the
// key so that "absent" and "present but empty" stay distinct in storage.
func (a *Adapter) SaveLocation(ctx context.Context, loc *core.Location) {
	if loc == nil {
		if err := a.kv.Delete(ctx, keyLocation); err != nil {
			a.logger.ErrorContext(ctx, "Delete failed, state not persisted", applog.FieldKey, keyLocation, applog.FieldError, err)
		}
		return
	}
	body, err := json.Marshal(loc)
	if err != nil {
		a.logger.ErrorContext(ctx, "Encode failed, state not persisted", applog.FieldKey, keyLocation, applog.FieldError, err)
		return
	}
	a.saveRaw(ctx, keyLocation, string(body))
}

// LoadOnboardingCompleted returns the persisted onboarding flag, false by default.
func (a *Adapter) LoadOnboardingCompleted(ctx context.Context) bool {
	raw, ok := a.loadRaw(ctx, keyOnboarding)
	if !ok {
		return false
	}
	var done bool
	if err := json.Unmarshal([]byte(raw), &done); err != nil {
		a.logger.ErrorContext(ctx, "Decode failed, using default", applog.FieldKey, keyOnboarding, applog.FieldError, err)
		return false
	}
	return done
}

// SaveOnboardingCompleted persists the onboarding flag.
func (a *Adapter) SaveOnboardingCompleted(ctx context.Context, done bool) {
	body, _ := json.Marshal(done)
	a.saveRaw(ctx, keyOnboarding, string(body))
}

// LoadLanguage returns the persisted UI language, English by default.
// Unrecognized stored values fall back to the default rather than leaking
// into the app.
func (a *Adapter) LoadLanguage(ctx context.Context) locale.Language {
	raw, ok := a.loadRaw(ctx, keyLanguage)
	if !ok {
		return locale.DefaultLanguage
	}
	lang := locale.Language(raw)
	if !lang.IsValid() {
		a.logger.WarnContext(ctx, "Unknown language stored, using default", applog.FieldKey, keyLanguage, "value", raw)
		return locale.DefaultLanguage
	}
	return lang
}

// SaveLanguage persists the UI language as a raw code string.
func (a *Adapter) SaveLanguage(ctx context.Context, lang locale.Language) {
	a.saveRaw(ctx, keyLanguage, string(lang))
}

// LoadTheme returns the persisted theme mode, auto by default.
func (a *Adapter) LoadTheme(ctx context.Context) locale.ThemeMode {
	raw, ok := a.loadRaw(ctx, keyTheme)
	if !ok {
		return locale.DefaultTheme
	}
	mode := locale.ThemeMode(raw)
	if !mode.IsValid() {
		a.logger.WarnContext(ctx, "Unknown theme stored, using default", applog.FieldKey, keyTheme, "value", raw)
		return locale.DefaultTheme
	}
	return mode
}

// SaveTheme persists the theme mode as a raw string.
func (a *Adapter) SaveTheme(ctx context.Context, mode locale.ThemeMode) {
	a.saveRaw(ctx, keyTheme, string(mode))
}

// ClearAll removes every key this adapter writes. Unlike loads and saves
// the error is returned: reset must know the clear actually happened before
// in-memory state may be discarded.
func (a *Adapter) ClearAll(ctx context.Context) error {
	return a.kv.DeleteMany(ctx, allKeys()...)
}

// Close releases the underlying backend.
func (a *Adapter) Close() error {
	return a.kv.Close()
}
