package config

import (
	"context"
	"fmt"

	"github.com/twnkl2713/moodflow/pkg/journal"
	storejournal "github.com/twnkl2713/moodflow/pkg/store/journal"
)

// OpenJournal creates the configured backend and loads the journal store
// from it.
//
// The caller owns the returned backend and must Close it after the store is
// no longer used.
func OpenJournal(ctx context.Context, cfg *Config, m *MetricsResult) (*journal.Store, storejournal.Backend, error) {
	backend, err := CreateJournalBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create journal backend: %w", err)
	}

	if err := backend.Healthcheck(ctx); err != nil {
		_ = backend.Close()
		return nil, nil, fmt.Errorf("journal backend %s is not healthy: %w", backend.Name(), err)
	}

	store := journal.Open(ctx, journal.Config{
		Backend: backend,
		Metrics: m.Journal,
	})

	return store, backend, nil
}
