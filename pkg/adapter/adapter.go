package adapter

import (
	"context"

	"github.com/twnkl2713/moodflow/pkg/journal"
)

// Adapter is a network front end that MoodServer manages.
//
// Every adapter serves the same shared journal store.
//
// Lifecycle:
//  1. Creation: the adapter is built from its own configuration section
//  2. Store injection: SetStore provides the shared journal store
//  3. Startup: Serve listens and blocks until ctx is cancelled
//  4. Shutdown: Stop closes the listener
//
// Thread safety:
// SetStore is called once before Serve. Stop may be called concurrently
// with Serve.
type Adapter interface {
	// Serve listens and accepts connections until ctx is cancelled or an
	// unrecoverable error occurs.
	//
	// Returns nil when stopped through ctx or Stop. Any other return is
	// treated by MoodServer as fatal.
	Serve(ctx context.Context) error

	// SetStore injects the shared journal store.
	SetStore(store *journal.Store)

	// Stop closes the listener. It is idempotent and does not wait for
	// queued or running jobs.
	Stop(ctx context.Context) error

	// Protocol returns a human-readable protocol name for logs ("HTTP").
	Protocol() string

	// Port returns the configured TCP port.
	Port() int
}
