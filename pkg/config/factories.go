package config

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/twnkl2713/moodflow/internal/logger"
	storejournal "github.com/twnkl2713/moodflow/pkg/store/journal"
	journalBadger "github.com/twnkl2713/moodflow/pkg/store/journal/badger"
	journalFs "github.com/twnkl2713/moodflow/pkg/store/journal/fs"
	journalMemory "github.com/twnkl2713/moodflow/pkg/store/journal/memory"
)

// CreateJournalBackend builds the journal backend selected by cfg.Type,
// decoding the matching type-specific section.
func CreateJournalBackend(ctx context.Context, cfg StorageConfig) (storejournal.Backend, error) {
	switch cfg.Type {
	case "filesystem":
		return createFilesystemBackend(ctx, cfg.Filesystem)
	case "memory":
		return createMemoryBackend(ctx, cfg.Memory)
	case "badger":
		return createBadgerBackend(ctx, cfg.Badger)
	case "s3":
		return createS3Backend(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

func createFilesystemBackend(ctx context.Context, options map[string]any) (storejournal.Backend, error) {
	type FilesystemBackendConfig struct {
		Path string `mapstructure:"path"`
	}

	var backendCfg FilesystemBackendConfig
	if err := mapstructure.Decode(options, &backendCfg); err != nil {
		return nil, fmt.Errorf("failed to decode filesystem storage config: %w", err)
	}

	if backendCfg.Path == "" {
		return nil, fmt.Errorf("filesystem storage: path is required")
	}

	backend, err := journalFs.NewFileBackend(ctx, backendCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem journal backend: %w", err)
	}

	logger.Info("Filesystem journal backend initialized: path=%s", backendCfg.Path)
	return backend, nil
}

func createMemoryBackend(ctx context.Context, options map[string]any) (storejournal.Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Warn("Memory journal backend: entries are lost on restart")
	return journalMemory.NewMemoryBackend(), nil
}

func createBadgerBackend(ctx context.Context, options map[string]any) (storejournal.Backend, error) {
	var backendCfg journalBadger.BadgerBackendConfig
	if err := mapstructure.Decode(options, &backendCfg); err != nil {
		return nil, fmt.Errorf("failed to decode badger storage config: %w", err)
	}

	if backendCfg.DBPath == "" && !backendCfg.InMemory {
		return nil, fmt.Errorf("badger storage: db_path is required")
	}

	backend, err := journalBadger.NewBadgerBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create badger journal backend: %w", err)
	}

	logger.Info("BadgerDB journal backend initialized: db_path=%s", backendCfg.DBPath)
	return backend, nil
}
