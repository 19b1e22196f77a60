// Package journal defines the storage collaborator behind the shared journal
// store.
//
// A Backend holds one opaque blob: the serialized journal. The journal store
// rewrites the whole blob after every mutation and reads it once at startup,
// so backends only need whole-object read and replace. Implementations live in
// the subpackages (fs, memory, badger, s3) and are selected by configuration.
package journal

import (
	"context"
	"errors"
)

// ErrNotExist is returned by ReadAll when nothing has been written yet.
var ErrNotExist = errors.New("journal data does not exist")

// Backend stores the serialized journal.
//
// Thread Safety:
// Implementations must be safe for concurrent use, although the journal store
// serializes all writes behind its own lock.
type Backend interface {
	// ReadAll returns the last blob written.
	//
	// Returns ErrNotExist (possibly wrapped) if no blob has been written.
	ReadAll(ctx context.Context) ([]byte, error)

	// WriteAll replaces the stored blob with data.
	//
	// A successful return means a subsequent ReadAll observes data in full.
	// A failed write must leave the previous blob readable.
	WriteAll(ctx context.Context, data []byte) error

	// Healthcheck verifies the backend is reachable.
	Healthcheck(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error

	// Name identifies the backend in logs ("filesystem", "badger", ...).
	Name() string
}
