package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/metrics"
)

// ConnectionJob handles exactly one accepted connection: read one request,
// route it, write the response, close.
//
// It carries everything it needs, so it can be built and run on its own
// without a pool.
type ConnectionJob struct {
	// ID correlates log lines for this connection.
	ID uuid.UUID

	Conn            net.Conn
	Handler         *Handler
	MaxRequestBytes int64
	Metrics         metrics.HTTPMetrics
}

// NewConnectionJob creates a job for conn with a fresh ID.
func NewConnectionJob(conn net.Conn, handler *Handler, maxRequestBytes int64, m metrics.HTTPMetrics) *ConnectionJob {
	if m == nil {
		m = metrics.NewNoopHTTPMetrics()
	}
	return &ConnectionJob{
		ID:              uuid.New(),
		Conn:            conn,
		Handler:         handler,
		MaxRequestBytes: maxRequestBytes,
		Metrics:         m,
	}
}

// Run implements pool.Job.
func (j *ConnectionJob) Run() {
	defer func() {
		if err := j.Conn.Close(); err != nil {
			logger.Debug("[%s] Error closing connection: %v", j.ID, err)
		}
	}()

	start := time.Now()

	req, err := ReadRequest(j.Conn, j.MaxRequestBytes)
	if err != nil {
		if errors.Is(err, errEmptyRequest) {
			logger.Debug("[%s] Connection from %s closed without a request", j.ID, j.Conn.RemoteAddr())
			return
		}
		logger.Debug("[%s] %v", j.ID, err)
		j.respond(emptyResponse(http.StatusBadRequest), RouteMalformed, start)
		return
	}

	logger.Debug("[%s] %s %s from %s", j.ID, req.Method, req.Path, j.Conn.RemoteAddr())

	resp, route := j.Handler.Handle(context.Background(), req)
	if route == RouteRateLimited {
		j.Metrics.RecordRateLimited()
	}
	j.respond(resp, route, start)
}

func (j *ConnectionJob) respond(resp Response, route string, start time.Time) {
	if _, err := resp.WriteTo(j.Conn); err != nil {
		logger.Debug("[%s] Error writing response: %v", j.ID, err)
	}
	j.Metrics.RecordRequest(route, resp.Status, time.Since(start))
	logger.Debug("[%s] %d %s (%s)", j.ID, resp.Status, route, time.Since(start))
}
