package driver

import (
	"testing"
)

func TestNew_UnknownDialect(t *testing.T) {
	if _, err := New("oracle"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestExtractVersion(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		want   int
	}{
		{"extract_001.sql", "extract_", 1},
		{"extract_012.sql", "extract_", 12},
		{"extract_garbage.sql", "extract_", 0},
	}
	for _, tc := range cases {
		if got := extractVersion(tc.name, tc.prefix); got != tc.want {
			t.Errorf("extractVersion(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRewritePlaceholders(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM t WHERE a = ?", "SELECT * FROM t WHERE a = $1"},
		{"INSERT INTO t VALUES (?, ?, ?)", "INSERT INTO t VALUES ($1, $2, $3)"},
		{"SELECT * FROM t WHERE a = '?' AND b = ?", "SELECT * FROM t WHERE a = '?' AND b = $1"},
	}
	for _, tc := range cases {
		if got := rewritePlaceholders(tc.in); got != tc.want {
			t.Errorf("rewritePlaceholders(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSQLite_OpenAndMigrateInMemory(t *testing.T) {
	drv := NewSQLite()
	if err := drv.Open(":memory:"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = drv.Close() }()

	if drv.Dialect() != DialectSQLite {
		t.Errorf("Dialect = %s", drv.Dialect())
	}
	if drv.DB() == nil {
		t.Error("DB() returned nil")
	}
}
