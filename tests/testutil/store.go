package testutil

import (
	"testing"

	"github.com/JesperIV/TasX/internal/store"
)

// NewTestStore opens a throwaway in-memory SQLite gateway with the slot
// schema migrated, so tests exercise the real persistence round trip
// without touching disk. The gateway is closed via t.Cleanup.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
