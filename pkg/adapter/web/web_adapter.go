// Package web implements the HTTP front end of MoodFlow.
//
// The accept loop is the only producer of work: for each accepted connection
// it builds one ConnectionJob and submits it to a fixed-size worker pool. It
// never touches the journal store itself. At most Workers requests are handled
// at once however fast connections arrive; the rest wait in the pool queue.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/internal/ratelimiter"
	"github.com/twnkl2713/moodflow/pkg/journal"
	"github.com/twnkl2713/moodflow/pkg/metrics"
	"github.com/twnkl2713/moodflow/pkg/pool"
)

// WebAdapter serves the journal API and static pages over raw TCP.
//
// Shutdown closes the listener only. Jobs already queued or running are not
// drained.
type WebAdapter struct {
	config WebConfig

	pool    *pool.Pool
	static  *StaticFiles
	limiter *ratelimiter.Limiter
	metrics metrics.HTTPMetrics

	store *journal.Store

	mu       sync.Mutex
	listener net.Listener

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

// New creates a web adapter and starts its worker pool.
//
// Panics if the configuration is invalid after defaults are applied.
// Metrics may be nil.
func New(config WebConfig, httpMetrics metrics.HTTPMetrics, poolMetrics metrics.PoolMetrics) *WebAdapter {
	config.applyDefaults()

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid HTTP config: %v", err))
	}

	if httpMetrics == nil {
		httpMetrics = metrics.NewNoopHTTPMetrics()
	}

	limiter := ratelimiter.New(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst)
	if limiter != nil {
		logger.Debug("HTTP rate limit: %.0f req/s, burst %d", limiter.Limit(), limiter.Burst())
	} else {
		logger.Debug("HTTP rate limit: unlimited")
	}

	return &WebAdapter{
		config:   config,
		pool:     pool.New(config.Workers, poolMetrics),
		static:   NewStaticFiles(config.StaticDir),
		limiter:  limiter,
		metrics:  httpMetrics,
		shutdown: make(chan struct{}),
	}
}

// SetStore injects the shared journal store.
func (a *WebAdapter) SetStore(store *journal.Store) {
	a.store = store
	logger.Debug("HTTP journal store configured")
}

// Serve listens on the configured address and runs the accept loop.
func (a *WebAdapter) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Address())
	if err != nil {
		return fmt.Errorf("failed to create HTTP listener on %s: %w", a.config.Address(), err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener runs the accept loop on ln until ctx is cancelled or Stop is
// called. ln is closed on return.
func (a *WebAdapter) ServeListener(ctx context.Context, ln net.Listener) error {
	if a.store == nil {
		_ = ln.Close()
		return fmt.Errorf("HTTP adapter has no journal store")
	}

	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	// Stop may have run before the listener was registered.
	select {
	case <-a.shutdown:
		_ = ln.Close()
		return nil
	default:
	}

	logger.Info("HTTP server listening on http://%s (workers: %d)", ln.Addr(), a.pool.Size())

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("HTTP shutdown signal received: %v", ctx.Err())
			a.initiateShutdown()
		case <-a.shutdown:
		}
	}()

	handler := NewHandler(a.store, a.static, a.limiter)

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-a.shutdown:
				logger.Info("HTTP listener closed (%d job(s) still queued)", a.pool.Pending())
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("HTTP listener closed unexpectedly: %w", err)
			}
			logger.Debug("Error accepting HTTP connection: %v", err)
			continue
		}

		a.metrics.RecordConnectionAccepted()
		a.pool.Submit(NewConnectionJob(conn, handler, a.config.MaxRequestBytes, a.metrics))
	}
}

func (a *WebAdapter) initiateShutdown() {
	a.shutdownOnce.Do(func() {
		close(a.shutdown)

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.listener != nil {
			if err := a.listener.Close(); err != nil {
				logger.Debug("Error closing HTTP listener: %v", err)
			}
		}
	})
}

// Stop closes the listener. It does not wait for queued or running jobs.
func (a *WebAdapter) Stop(ctx context.Context) error {
	a.initiateShutdown()
	return nil
}

func (a *WebAdapter) Protocol() string {
	return "HTTP"
}

func (a *WebAdapter) Port() int {
	return a.config.Port
}

// Workers returns the pool size.
func (a *WebAdapter) Workers() int {
	return a.pool.Size()
}
