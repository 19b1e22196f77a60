// Package journal implements the shared journal store: the ordered sequence of
// Records that every worker reads and mutates.
//
// All access goes through one mutex, held for the whole of a List, Append or
// RemoveAt call. Mutations persist the full sequence to the backend before the
// lock is released, so the in-memory sequence and the stored copy agree
// whenever no call is in progress. A failed persist rolls the in-memory
// mutation back and surfaces ErrPersist to the caller.
package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/metrics"
	"github.com/twnkl2713/moodflow/pkg/mood"
	storejournal "github.com/twnkl2713/moodflow/pkg/store/journal"
)

var (
	// ErrNotFound is returned by RemoveAt when the index is out of range.
	ErrNotFound = errors.New("journal entry not found")

	// ErrPersist is returned when a mutation could not be written to the
	// backend. The mutation has been rolled back.
	ErrPersist = errors.New("failed to persist journal")
)

// Classifier maps entry text to a mood label.
type Classifier func(text string) string

// Config holds the collaborators of a Store. Only Backend is required.
type Config struct {
	// Backend persists the serialized journal.
	Backend storejournal.Backend

	// Classify labels new entries. Default: mood.Classify
	Classify Classifier

	// Now supplies the date stamp of new entries. Default: time.Now
	Now func() time.Time

	// Metrics records store operations. Default: no-op
	Metrics metrics.JournalMetrics
}

// Store is the shared journal store. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records []Record

	backend  storejournal.Backend
	classify Classifier
	now      func() time.Time
	metrics  metrics.JournalMetrics
}

// Open creates a store and loads the journal from the backend.
//
// Open never fails: a missing journal starts empty, and an unreadable or
// unparsable one starts empty with a warning. The corrupt copy is left in
// place until the first successful mutation overwrites it.
//
// Panics if cfg.Backend is nil.
func Open(ctx context.Context, cfg Config) *Store {
	if cfg.Backend == nil {
		panic("journal: backend is required")
	}
	if cfg.Classify == nil {
		cfg.Classify = mood.Classify
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopJournalMetrics()
	}

	s := &Store{
		records:  []Record{},
		backend:  cfg.Backend,
		classify: cfg.Classify,
		now:      cfg.Now,
		metrics:  cfg.Metrics,
	}

	start := time.Now()
	err := s.load(ctx)
	s.metrics.ObserveOperation("load", time.Since(start), err)
	s.metrics.SetEntries(len(s.records))

	return s
}

func (s *Store) load(ctx context.Context) error {
	data, err := s.backend.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, storejournal.ErrNotExist) {
			logger.Info("No existing journal in %s backend, starting empty", s.backend.Name())
			return nil
		}
		logger.Warn("Failed to read journal from %s backend, starting empty: %v", s.backend.Name(), err)
		return err
	}

	records, err := Decode(data)
	if err != nil {
		logger.Warn("Journal in %s backend is corrupt, starting empty: %v", s.backend.Name(), err)
		return err
	}

	s.records = records
	logger.Info("Loaded %d journal entries from %s backend", len(records), s.backend.Name())
	return nil
}

// List returns a copy of the current sequence. The result is never nil.
func (s *Store) List() []Record {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation("list", time.Since(start), nil)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ListJSON returns the current sequence in its serialized form, taken as one
// consistent snapshot.
func (s *Store) ListJSON() ([]byte, error) {
	return Encode(s.List())
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Append classifies text, stamps it with the current local date, appends the
// new Record and persists the journal.
//
// On ErrPersist the record is not kept.
func (s *Store) Append(ctx context.Context, text string) (rec Record, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation("append", time.Since(start), err)
	}()

	// Classification is pure, so it runs outside the lock.
	rec = Record{
		Date: s.now().Format(DateLayout),
		Text: text,
		Mood: s.classify(text),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.records
	next := make([]Record, len(prev), len(prev)+1)
	copy(next, prev)
	next = append(next, rec)

	if err := s.persist(ctx, next); err != nil {
		return Record{}, err
	}

	s.records = next
	s.metrics.SetEntries(len(next))
	return rec, nil
}

// RemoveAt deletes the entry at index, shifting later entries down by one,
// and persists the journal.
//
// Returns ErrNotFound without touching the backend if index is out of range,
// and ErrPersist (with nothing removed) if the write fails.
func (s *Store) RemoveAt(ctx context.Context, index int) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation("remove", time.Since(start), err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("index %d of %d: %w", index, len(s.records), ErrNotFound)
	}

	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:index]...)
	next = append(next, s.records[index+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.records = next
	s.metrics.SetEntries(len(next))
	return nil
}

// persist writes records to the backend. Caller must hold s.mu.
func (s *Store) persist(ctx context.Context, records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := s.backend.WriteAll(ctx, data); err != nil {
		logger.Error("Failed to persist journal to %s backend: %v", s.backend.Name(), err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
