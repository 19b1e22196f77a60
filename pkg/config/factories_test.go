package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/twnkl2713/moodflow/pkg/adapter/web"
	storejournal "github.com/twnkl2713/moodflow/pkg/store/journal"
)

func TestCreateJournalBackend_Filesystem(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "entries.json")

	backend, err := CreateJournalBackend(ctx, StorageConfig{
		Type:       "filesystem",
		Filesystem: map[string]any{"path": path},
	})
	if err != nil {
		t.Fatalf("Failed to create filesystem backend: %v", err)
	}
	defer func() { _ = backend.Close() }()

	if backend.Name() != "filesystem" {
		t.Errorf("Expected backend name 'filesystem', got %q", backend.Name())
	}
	if err := backend.Healthcheck(ctx); err != nil {
		t.Errorf("Expected healthy backend, got: %v", err)
	}
}

func TestCreateJournalBackend_FilesystemMissingPath(t *testing.T) {
	_, err := CreateJournalBackend(context.Background(), StorageConfig{
		Type:       "filesystem",
		Filesystem: map[string]any{},
	})
	if err == nil {
		t.Fatal("Expected error for missing path")
	}
	if !strings.Contains(err.Error(), "path is required") {
		t.Errorf("Expected 'path is required' error, got: %v", err)
	}
}

func TestCreateJournalBackend_FilesystemBadOptionType(t *testing.T) {
	_, err := CreateJournalBackend(context.Background(), StorageConfig{
		Type:       "filesystem",
		Filesystem: map[string]any{"path": []int{1, 2}},
	})
	if err == nil {
		t.Fatal("Expected decode error for non-string path")
	}
}

func TestCreateJournalBackend_Memory(t *testing.T) {
	backend, err := CreateJournalBackend(context.Background(), StorageConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("Failed to create memory backend: %v", err)
	}
	if backend.Name() != "memory" {
		t.Errorf("Expected backend name 'memory', got %q", backend.Name())
	}
}

func TestCreateJournalBackend_Badger(t *testing.T) {
	ctx := context.Background()

	backend, err := CreateJournalBackend(ctx, StorageConfig{
		Type: "badger",
		Badger: map[string]any{
			"db_path": filepath.Join(t.TempDir(), "journal.db"),
			"key":     "test/entries",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create badger backend: %v", err)
	}
	defer func() { _ = backend.Close() }()

	if err := backend.WriteAll(ctx, []byte("[]")); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	data, err := backend.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected '[]', got %q", data)
	}
}

func TestCreateJournalBackend_BadgerMissingPath(t *testing.T) {
	_, err := CreateJournalBackend(context.Background(), StorageConfig{
		Type:   "badger",
		Badger: map[string]any{},
	})
	if err == nil {
		t.Fatal("Expected error for missing db_path")
	}
}

func TestCreateJournalBackend_S3MissingBucket(t *testing.T) {
	_, err := CreateJournalBackend(context.Background(), StorageConfig{
		Type: "s3",
		S3:   map[string]any{"region": "us-east-1"},
	})
	if err == nil {
		t.Fatal("Expected error for missing bucket")
	}
	if !strings.Contains(err.Error(), "bucket is required") {
		t.Errorf("Expected 'bucket is required' error, got: %v", err)
	}
}

func TestCreateJournalBackend_UnknownType(t *testing.T) {
	_, err := CreateJournalBackend(context.Background(), StorageConfig{Type: "postgres"})
	if err == nil {
		t.Fatal("Expected error for unknown storage type")
	}
	if !strings.Contains(err.Error(), "unknown storage type") {
		t.Errorf("Expected 'unknown storage type' error, got: %v", err)
	}
}

func TestOpenJournal(t *testing.T) {
	ctx := context.Background()
	cfg := GetDefaultConfig()
	cfg.Storage.Filesystem["path"] = filepath.Join(t.TempDir(), "entries.json")

	m := InitializeMetrics(cfg)
	if m.Server != nil {
		t.Fatal("Expected no metrics server while metrics are disabled")
	}

	store, backend, err := OpenJournal(ctx, cfg, m)
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	defer func() { _ = backend.Close() }()

	if store.Len() != 0 {
		t.Errorf("Expected empty journal, got %d entries", store.Len())
	}

	rec, err := store.Append(ctx, "a happy day")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if rec.Mood != "Happy" {
		t.Errorf("Expected mood 'Happy', got %q", rec.Mood)
	}

	data, err := backend.ReadAll(ctx)
	if err != nil && err != storejournal.ErrNotExist {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !strings.Contains(string(data), "a happy day") {
		t.Errorf("Expected persisted entry, got %q", data)
	}
}

func TestCreateAdapters(t *testing.T) {
	cfg := GetDefaultConfig()
	m := InitializeMetrics(cfg)

	adapters, err := CreateAdapters(cfg, m)
	if err != nil {
		t.Fatalf("CreateAdapters failed: %v", err)
	}
	if len(adapters) != 1 {
		t.Fatalf("Expected 1 adapter, got %d", len(adapters))
	}

	wa, ok := adapters[0].(*web.WebAdapter)
	if !ok {
		t.Fatalf("Expected *web.WebAdapter, got %T", adapters[0])
	}
	if wa.Port() != 7878 || wa.Protocol() != "HTTP" {
		t.Errorf("Unexpected adapter: protocol=%s port=%d", wa.Protocol(), wa.Port())
	}

	cfg.Adapters.HTTP.Enabled = false
	if _, err := CreateAdapters(cfg, m); err == nil {
		t.Error("Expected error with no adapters enabled")
	}
}
