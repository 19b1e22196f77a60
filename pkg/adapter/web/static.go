package web

import (
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	indexPage    = "index.html"
	notFoundPage = "404.html"
)

// internalErrorBody replaces the body of a page that exists but cannot be
// read. The status already chosen for the page is kept.
var internalErrorBody = []byte("<h1>500 Internal Server Error</h1>")

// StaticFiles serves pages from a directory tree.
//
// Lookup rules:
//   - "/" maps to index.html
//   - a last path element without "." gets ".html" appended ("/about" is about.html)
//   - a missing page is answered 404 with the body of 404.html
//
// Paths are cleaned before lookup and cannot leave the root.
type StaticFiles struct {
	root fs.FS
}

// NewStaticFiles serves files below dir.
func NewStaticFiles(dir string) *StaticFiles {
	return &StaticFiles{root: os.DirFS(dir)}
}

// NewStaticFilesFS serves files from root.
func NewStaticFilesFS(root fs.FS) *StaticFiles {
	return &StaticFiles{root: root}
}

// Resolve maps a URL path to a name within the root.
func Resolve(urlPath string) string {
	p := path.Clean("/" + urlPath)
	if p == "/" {
		return indexPage
	}
	if !strings.Contains(path.Base(p), ".") {
		p += ".html"
	}
	return strings.TrimPrefix(p, "/")
}

// Serve answers a GET for urlPath.
func (s *StaticFiles) Serve(urlPath string) Response {
	name := Resolve(urlPath)
	if _, err := fs.Stat(s.root, name); err != nil {
		return s.page(http.StatusNotFound, notFoundPage)
	}
	return s.page(http.StatusOK, name)
}

// NotFound answers with 404.html and the given status.
func (s *StaticFiles) NotFound(status int) Response {
	return s.page(status, notFoundPage)
}

func (s *StaticFiles) page(status int, name string) Response {
	data, err := fs.ReadFile(s.root, name)
	if err != nil {
		return Response{
			Status:      status,
			ContentType: "text/html; charset=utf-8",
			Body:        internalErrorBody,
		}
	}
	return Response{
		Status:      status,
		ContentType: contentType(name, data),
		Body:        data,
	}
}

// contentType guesses from the extension first, then from the content.
// mimetype falls back to application/octet-stream on its own.
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}
