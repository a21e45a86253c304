// Package testfixtures provides shared helpers for tests that need a
// migrated in-memory database.
package testfixtures

import (
	"context"
	"testing"

	"github.com/example/crane-asset-manager/internal/persistence/sqlite"
)

// NewStore opens an in-memory store with the full schema applied. The
// store is closed when the test finishes.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(sqlite.MemoryConfig())
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate in-memory store: %v", err)
	}
	return store
}
