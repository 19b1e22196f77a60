// Package fs stores the journal as a single JSON file on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/twnkl2713/moodflow/pkg/store/journal"
)

// FileBackend implements journal.Backend on one named file.
//
// Writes go to a temporary file in the same directory which is synced and then
// renamed over the target, so a failed or interrupted write never leaves a
// truncated journal behind.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for path, creating the parent directory
// with permissions 0755 if needed. The file itself is created on first write.
func NewFileBackend(ctx context.Context, path string) (*FileBackend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("filesystem journal backend: path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	return &FileBackend{path: path}, nil
}

// Path returns the journal file path.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", b.path, journal.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) WriteAll(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary journal file: %w", err)
	}
	tmpName := tmp.Name()

	// Remove the temporary file on any failure path.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync journal file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close journal file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set journal file permissions: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace journal file: %w", err)
	}

	committed = true
	return nil
}

// Healthcheck verifies the journal directory exists and is a directory.
func (b *FileBackend) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(filepath.Dir(b.path))
	if err != nil {
		return fmt.Errorf("journal directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("journal directory %s is not a directory", filepath.Dir(b.path))
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) Name() string {
	return "filesystem"
}
