// Package swagger serves the OpenAPI document and a ReDoc viewer for it.
package swagger

import (
	"context"
	"net/http"
)

// DefaultRedocURL is the ReDoc bundle the docs page loads.
const DefaultRedocURL = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

type config struct {
	redocURL string
}

// Option configures Register.
type Option func(*config)

// WithRedocURL overrides where the docs page loads ReDoc from.
func WithRedocURL(url string) Option {
	return func(c *config) {
		if url != "" {
			c.redocURL = url
		}
	}
}

// Register attaches the API docs routes to mux.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> Embedded OpenAPI spec
func Register(_ context.Context, mux *http.ServeMux, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	cfg := config{redocURL: DefaultRedocURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	page := []byte(indexHTML(cfg.redocURL))

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

func indexHTML(redocURL string) string {
	return `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Mergington Activities API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + redocURL + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
}
