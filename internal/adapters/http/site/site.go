// Package site serves the browser frontend for the activities API.
package site

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
)

const (
	// Prefix is the URL path the frontend is mounted under.
	Prefix = "/static/"
	// IndexPath is the entry page GET / redirects to.
	IndexPath = Prefix + indexFile

	indexFile = "index.html"
)

type config struct {
	dir string
}

// Option configures Register.
type Option func(*config)

// WithDir serves files from dir on disk instead of the embedded copy.
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// Handler serves root under Prefix. The index page is served in place
// rather than redirected to the directory.
func Handler(root fs.FS) http.Handler {
	files := http.StripPrefix(Prefix, http.FileServer(http.FS(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == IndexPath {
			serveIndex(w, r, root)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// serveIndex writes index.html through ServeContent, which unlike the file
// server helpers never redirects paths ending in /index.html.
func serveIndex(w http.ResponseWriter, r *http.Request, root fs.FS) {
	f, err := root.Open(indexFile)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "index is not seekable", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, indexFile, fi.ModTime(), content)
}

// Register attaches the static frontend routes to mux.
func Register(_ context.Context, mux *http.ServeMux, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	root := FS()
	if cfg.dir != "" {
		root = os.DirFS(cfg.dir)
	}
	mux.Handle(Prefix, Handler(root))
}
