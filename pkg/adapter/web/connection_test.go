package web

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twnkl2713/moodflow/internal/ratelimiter"
)

type recordedRequest struct {
	route  string
	status int
}

type recordingHTTPMetrics struct {
	mu          sync.Mutex
	requests    []recordedRequest
	accepted    int
	rateLimited int
}

func (m *recordingHTTPMetrics) RecordRequest(route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{route, status})
}

func (m *recordingHTTPMetrics) RecordConnectionAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accepted++
}

func (m *recordingHTTPMetrics) RecordRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited++
}

// runJob runs a ConnectionJob against one end of a pipe, sends raw on the
// other and returns the response and its body.
func runJob(t *testing.T, h *Handler, m *recordingHTTPMetrics, raw string) (*http.Response, string) {
	t.Helper()
	server, client := net.Pipe()
	defer func() { _ = client.Close() }()

	done := make(chan struct{})
	go func() {
		NewConnectionJob(server, h, 8192, m).Run()
		close(done)
	}()

	go func() {
		_, _ = io.WriteString(client, raw)
	}()

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not finish")
	}
	return resp, string(body)
}

func TestConnectionJob_Run(t *testing.T) {
	h, store := newTestHandler(t, nil)
	m := &recordingHTTPMetrics{}

	resp, body := runJob(t, h, m,
		"POST /api/entries HTTP/1.1\r\nHost: x\r\nContent-Length: 21\r\n\r\n{\"text\":\"so tired!!\"}")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "close", resp.Header.Get("Connection"))
	assert.Equal(t, int64(0), resp.ContentLength)
	assert.Empty(t, body)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Stressed", store.List()[0].Mood)

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{RouteAppend, http.StatusCreated}, m.requests[0])
}

func TestConnectionJob_Malformed(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	m := &recordingHTTPMetrics{}

	resp, _ := runJob(t, h, m, "this is not http\r\n\r\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.Len(t, m.requests, 1)
	assert.Equal(t, RouteMalformed, m.requests[0].route)
}

func TestConnectionJob_List(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	m := &recordingHTTPMetrics{}

	resp, body := runJob(t, h, m, "GET /api/entries HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, int64(2), resp.ContentLength)
	assert.Equal(t, "[]", body)
}

func TestConnectionJob_RateLimitedIsCounted(t *testing.T) {
	h, _ := newTestHandler(t, ratelimiter.New(1, 1))
	m := &recordingHTTPMetrics{}

	resp, _ := runJob(t, h, m, "GET /api/entries HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = runJob(t, h, m, "GET /api/entries HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	assert.Equal(t, 1, m.rateLimited)
	assert.Equal(t, RouteRateLimited, m.requests[1].route)
}

func TestConnectionJob_EmptyConnection(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	m := &recordingHTTPMetrics{}
	server, client := net.Pipe()

	done := make(chan struct{})
	go func() {
		NewConnectionJob(server, h, 8192, m).Run()
		close(done)
	}()

	require.NoError(t, client.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not finish")
	}
	assert.Empty(t, m.requests)
}

func TestNewConnectionJob_UniqueIDs(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	a := NewConnectionJob(nil, h, 1, nil)
	b := NewConnectionJob(nil, h, 1, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Metrics)
}
