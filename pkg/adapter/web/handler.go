package web

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/internal/ratelimiter"
	"github.com/twnkl2713/moodflow/pkg/journal"
)

// Route labels, used in logs and the http request metrics.
const (
	RouteList             = "list"
	RouteAppend           = "append"
	RouteDelete           = "delete"
	RouteStatic           = "static"
	RouteMethodNotAllowed = "method_not_allowed"
	RouteRateLimited      = "rate_limited"
	RouteMalformed        = "malformed"
)

const (
	entriesPrefix = "/api/entries"
	deletePath    = "/api/delete"
)

// Handler routes a request to the journal API or to static content.
//
// Routing:
//   - path under /api/entries: GET lists, POST appends, other methods get 405
//   - POST /api/delete: removes an entry by index
//   - anything else: static content
type Handler struct {
	store   *journal.Store
	static  *StaticFiles
	limiter *ratelimiter.Limiter
}

// NewHandler creates a Handler. limiter may be nil for no rate limiting.
func NewHandler(store *journal.Store, static *StaticFiles, limiter *ratelimiter.Limiter) *Handler {
	return &Handler{
		store:   store,
		static:  static,
		limiter: limiter,
	}
}

// Handle produces the response for req and the route it took.
func (h *Handler) Handle(ctx context.Context, req *Request) (Response, string) {
	if !h.limiter.Allow() {
		return emptyResponse(http.StatusTooManyRequests), RouteRateLimited
	}

	if strings.HasPrefix(req.Path, entriesPrefix) {
		switch req.Method {
		case http.MethodGet:
			return h.handleList(), RouteList
		case http.MethodPost:
			return h.handleAppend(ctx, req.Body), RouteAppend
		default:
			return h.static.NotFound(http.StatusMethodNotAllowed), RouteMethodNotAllowed
		}
	}

	if req.Path == deletePath && req.Method == http.MethodPost {
		return h.handleDelete(ctx, req.Body), RouteDelete
	}

	return h.static.Serve(req.Path), RouteStatic
}

func (h *Handler) handleList() Response {
	data, err := h.store.ListJSON()
	if err != nil {
		logger.Error("Failed to encode journal: %v", err)
		return emptyResponse(http.StatusInternalServerError)
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: "application/json",
		Body:        data,
	}
}

type appendRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) handleAppend(ctx context.Context, body []byte) Response {
	var in appendRequest
	if err := json.Unmarshal(body, &in); err != nil || in.Text == nil {
		return emptyResponse(http.StatusBadRequest)
	}

	rec, err := h.store.Append(ctx, *in.Text)
	if err != nil {
		logger.Error("Failed to append journal entry: %v", err)
		return emptyResponse(http.StatusInternalServerError)
	}

	logger.Debug("Appended journal entry: date=%s mood=%s", rec.Date, rec.Mood)
	return emptyResponse(http.StatusCreated)
}

type deleteRequest struct {
	Index *uint64 `json:"index"`
}

// handleDelete answers 400 for malformed bodies and out-of-range indexes
// alike.
func (h *Handler) handleDelete(ctx context.Context, body []byte) Response {
	var in deleteRequest
	if err := json.Unmarshal(body, &in); err != nil || in.Index == nil || *in.Index > math.MaxInt {
		return emptyResponse(http.StatusBadRequest)
	}

	err := h.store.RemoveAt(ctx, int(*in.Index))
	switch {
	case err == nil:
		return emptyResponse(http.StatusNoContent)
	case errors.Is(err, journal.ErrNotFound):
		return emptyResponse(http.StatusBadRequest)
	default:
		logger.Error("Failed to delete journal entry %d: %v", *in.Index, err)
		return emptyResponse(http.StatusInternalServerError)
	}
}
