package web

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Request is the part of an HTTP request the router looks at.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// errEmptyRequest means the peer closed the connection without sending
// anything.
var errEmptyRequest = errors.New("connection closed before request")

// ReadRequest reads one HTTP/1.x request from r, consuming at most maxBytes.
//
// The query string is dropped from Path. A body cut short by maxBytes is
// returned truncated rather than as an error; the handlers reject it when it
// fails to parse.
func ReadRequest(r io.Reader, maxBytes int64) (*Request, error) {
	br := bufio.NewReader(io.LimitReader(r, maxBytes))

	req, err := http.ReadRequest(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyRequest
		}
		return nil, fmt.Errorf("malformed request: %w", err)
	}
	defer func() { _ = req.Body.Close() }()

	body, err := io.ReadAll(req.Body)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return &Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Body:   body,
	}, nil
}
