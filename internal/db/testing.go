// Package db test helpers. In-memory databases keep the suite fast and
// isolated; cleanup is registered automatically.
package db

import (
	"testing"
)

// NewTestDB creates an in-memory database with migrations applied.
// The database is closed automatically when the test completes.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	d, err := OpenInMemory()
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}

	t.Cleanup(func() {
		_ = d.Close()
	})

	return d
}
