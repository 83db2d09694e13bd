package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/HerbHall/collegefinder/internal/store"
)

// NewStore returns a private in-memory catalog database with a short busy
// timeout, closed when the test ends.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := store.Open(context.Background(), store.MemoryPath, store.Options{BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
