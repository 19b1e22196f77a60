// Package badger stores the journal blob under a single key in a BadgerDB
// database.
package badger

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// DefaultKey is the key the journal is stored under when none is configured.
const DefaultKey = "journal/entries"

// BadgerBackend implements journal.Backend on top of BadgerDB.
//
// Each WriteAll is a single Badger transaction, so a crash mid-write leaves
// either the old blob or the new one, never a mix.
type BadgerBackend struct {
	db  *badger.DB
	key []byte
}

// BadgerBackendConfig contains configuration for creating a BadgerDB backend.
type BadgerBackendConfig struct {
	// DBPath is the directory where BadgerDB keeps its files.
	// Ignored when InMemory is set.
	DBPath string `mapstructure:"db_path"`

	// Key is the key the journal blob is stored under. Default: DefaultKey
	Key string `mapstructure:"key"`

	// InMemory runs BadgerDB without touching disk. Used by tests.
	InMemory bool `mapstructure:"in_memory"`
}

// NewBadgerBackend opens (or creates) the database described by config.
func NewBadgerBackend(ctx context.Context, config BadgerBackendConfig) (*BadgerBackend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts badger.Options
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if config.DBPath == "" {
			return nil, fmt.Errorf("badger journal backend: db_path is required")
		}
		opts = badger.DefaultOptions(config.DBPath)
	}

	// One small value rewritten often: no compression, quiet logs.
	opts = opts.WithLoggingLevel(badger.WARNING)
	opts = opts.WithCompression(options.None)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", config.DBPath, err)
	}

	key := config.Key
	if key == "" {
		key = DefaultKey
	}

	return &BadgerBackend{db: db, key: []byte(key)}, nil
}

func (b *BadgerBackend) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("key %s: %w", b.key, journal.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read journal from BadgerDB: %w", err)
	}
	return data, nil
}

func (b *BadgerBackend) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Badger may retain the slice until commit; hand it a private copy.
	value := append([]byte(nil), data...)
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, value)
	})
	if err != nil {
		return fmt.Errorf("failed to write journal to BadgerDB: %w", err)
	}
	return nil
}

// Healthcheck fails once the database has been closed.
func (b *BadgerBackend) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return fmt.Errorf("BadgerDB is closed")
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

func (b *BadgerBackend) Name() string {
	return "badger"
}
