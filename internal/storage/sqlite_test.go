package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLite(t)

	if _, ok, err := kv.Get(ctx, "@budget_income"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "@budget_income", "12345"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "@budget_income")
	if err != nil || !ok || got != "12345" {
		t.Fatalf("Get = %q ok=%v err=%v", got, ok, err)
	}

	// Set replaces in place.
	if err := kv.Set(ctx, "@budget_income", "99"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if got, _, _ := kv.Get(ctx, "@budget_income"); got != "99" {
		t.Fatalf("overwrite: got %q", got)
	}
}

func TestSQLiteKVDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLite(t)

	kv.Set(ctx, "a", "1")
	kv.Set(ctx, "b", "2")
	kv.Set(ctx, "c", "3")

	if err := kv.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "a"); ok {
		t.Fatal("key a still present after delete")
	}

	// Deleting an absent key is a no-op.
	if err := kv.Delete(ctx, "a"); err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}

	if err := kv.DeleteMany(ctx, "b", "c", "missing"); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	for _, k := range []string{"b", "c"} {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Fatalf("key %s still present after DeleteMany", k)
		}
	}

	if err := kv.DeleteMany(ctx); err != nil {
		t.Fatalf("empty DeleteMany: %v", err)
	}
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	if err := kv.Set(ctx, "@budget_currency", "EUR"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "@budget_currency")
	if err != nil || !ok || got != "EUR" {
		t.Fatalf("after reopen: %q ok=%v err=%v", got, ok, err)
	}
}
