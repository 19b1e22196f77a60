//go:build integration

package badger_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/twnkl2713/moodflow/pkg/journal"
	badgerstore "github.com/twnkl2713/moodflow/pkg/store/journal/badger"
)

// TestBadgerJournal_Integration appends concurrently through the store on an
// on-disk BadgerDB, closes it, and checks every entry survives a reopen.
func TestBadgerJournal_Integration(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	backend, err := badgerstore.NewBadgerBackend(ctx, badgerstore.BadgerBackendConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("Failed to open badger backend: %v", err)
	}

	store := journal.Open(ctx, journal.Config{Backend: backend})

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Append(ctx, "calm and peaceful evening"); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := store.RemoveAt(ctx, 0); err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := badgerstore.NewBadgerBackend(ctx, badgerstore.BadgerBackendConfig{DBPath: dbPath})
	if err != nil {
		t.Fatalf("Failed to reopen badger backend: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	restored := journal.Open(ctx, journal.Config{Backend: reopened})
	if got := restored.Len(); got != writers-1 {
		t.Fatalf("Expected %d entries after reopen, got %d", writers-1, got)
	}
	for _, rec := range restored.List() {
		if rec.Mood != "Happy" {
			t.Errorf("Expected mood 'Happy', got %q", rec.Mood)
		}
	}
}
