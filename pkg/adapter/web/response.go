package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Response is what a handler produces for one request.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func emptyResponse(status int) Response {
	return Response{Status: status}
}

// WriteTo writes the response in HTTP/1.1 wire format. Content-Length and
// Connection: close are always sent; Content-Type only with a body.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(128 + len(r.Body))

	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.Status, http.StatusText(r.Status))
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(r.Body))
	if len(r.Body) > 0 && r.ContentType != "" {
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", r.ContentType)
	}
	buf.WriteString("Connection: close\r\n\r\n")
	buf.Write(r.Body)

	return buf.WriteTo(w)
}
