package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/adapter"
	"github.com/twnkl2713/moodflow/pkg/journal"
)

// ErrAlreadyServed is returned by a second call to Serve.
var ErrAlreadyServed = errors.New("server has already been served")

// MoodServer runs the network adapters that front one shared journal store.
//
// Lifecycle:
//  1. Creation: New() with the journal store
//  2. Registration: AddAdapter() for each adapter
//  3. Startup: Serve() runs all adapters concurrently
//  4. Shutdown: context cancellation or an adapter failure stops every adapter
//
// Example usage:
//
//	srv := server.New(store)
//	srv.AddAdapter(web.New(httpConfig, httpMetrics, poolMetrics))
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
//	    log.Fatal(err)
//	}
type MoodServer struct {
	store *journal.Store

	mu       sync.RWMutex
	adapters []adapter.Adapter
	served   bool
}

// New creates a server around store. Panics if store is nil.
func New(store *journal.Store) *MoodServer {
	if store == nil {
		panic("journal store cannot be nil")
	}
	return &MoodServer{store: store}
}

// AddAdapter injects the journal store into a and registers it.
//
// Returns an error if another adapter already uses the same protocol or port.
// Panics if a is nil or Serve has been called.
func (s *MoodServer) AddAdapter(a adapter.Adapter) error {
	if a == nil {
		panic("adapter cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.served {
		panic("cannot add adapter after Serve() has been called")
	}

	for _, existing := range s.adapters {
		if existing.Protocol() == a.Protocol() {
			return fmt.Errorf("adapter for protocol %s already registered", a.Protocol())
		}
		if existing.Port() == a.Port() {
			return fmt.Errorf("port %d already in use by %s adapter", a.Port(), existing.Protocol())
		}
	}

	a.SetStore(s.store)
	s.adapters = append(s.adapters, a)

	logger.Info("Registered %s adapter on port %d", a.Protocol(), a.Port())
	return nil
}

// Serve runs every adapter and blocks until ctx is cancelled or one of them
// fails. All adapters are stopped before Serve returns.
//
// Returns ctx.Err() after cancellation, the first adapter error otherwise.
func (s *MoodServer) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.served {
		s.mu.Unlock()
		return ErrAlreadyServed
	}
	s.served = true
	adapters := make([]adapter.Adapter, len(s.adapters))
	copy(adapters, s.adapters)
	s.mu.Unlock()

	if len(adapters) == 0 {
		return fmt.Errorf("no adapters registered; call AddAdapter() before Serve()")
	}

	logger.Info("Starting MoodFlow with %d adapter(s) and %d journal entries", len(adapters), s.store.Len())

	errChan := make(chan adapterError, len(adapters))
	var wg sync.WaitGroup

	for _, adp := range adapters {
		wg.Add(1)
		go func(a adapter.Adapter) {
			defer wg.Done()

			if err := a.Serve(ctx); err != nil {
				if ctx.Err() == nil {
					errChan <- adapterError{protocol: a.Protocol(), err: err}
				}
				return
			}

			// An adapter returning early without error still ends the run.
			if ctx.Err() == nil {
				errChan <- adapterError{protocol: a.Protocol(), err: errors.New("stopped unexpectedly")}
				return
			}
			logger.Info("%s adapter stopped", a.Protocol())
		}(adp)
	}

	var shutdownErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received (reason: %v)", ctx.Err())
		shutdownErr = ctx.Err()

	case adapterErr := <-errChan:
		logger.Error("%s adapter failed: %v - stopping all adapters", adapterErr.protocol, adapterErr.err)
		shutdownErr = fmt.Errorf("%s adapter error: %w", adapterErr.protocol, adapterErr.err)
	}

	stopAll(adapters)
	wg.Wait()

	logger.Info("MoodFlow stopped")
	return shutdownErr
}

type adapterError struct {
	protocol string
	err      error
}

// stopAll stops adapters in reverse registration order.
func stopAll(adapters []adapter.Adapter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(adapters) - 1; i >= 0; i-- {
		if err := adapters[i].Stop(ctx); err != nil {
			logger.Error("Error stopping %s adapter: %v", adapters[i].Protocol(), err)
		}
	}
}

// Adapters returns a copy of the registered adapters.
func (s *MoodServer) Adapters() []adapter.Adapter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adapters := make([]adapter.Adapter, len(s.adapters))
	copy(adapters, s.adapters)
	return adapters
}
