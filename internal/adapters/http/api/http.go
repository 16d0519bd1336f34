// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ListActivities(ctx context.Context) (model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (service.SignupResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler       *RootHandler
	activitiesHandler *ActivitiesHandler
	signupHandler     *SignupHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// Option configures the Server.
type Option func(*serverConfig)

type serverConfig struct {
	indexPath string
	logger    logger.Logger
}

// WithIndexPath sets where GET / redirects. Defaults to /static/index.html.
func WithIndexPath(path string) Option {
	return func(c *serverConfig) {
		if path != "" {
			c.indexPath = path
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{indexPath: "/static/index.html"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Named("api")
	}
	return &Server{
		rootHandler:       NewRootHandler(cfg.indexPath),
		activitiesHandler: NewActivitiesHandler(deps, cfg.logger),
		signupHandler:     NewSignupHandler(deps, cfg.logger),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux. "/" is a catch-all, so any
// path not claimed by another package answers with a JSON 404.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandleList, "activities"))
	mux.HandleFunc("/activities/", MetricsMiddleware(s.signupHandler.HandleSignup, "signup"))
	mux.HandleFunc("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusFor maps an error to the HTTP status and detail message clients see.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingParam):
		return http.StatusUnprocessableEntity, "Missing required query parameter: email"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "Method Not Allowed"
	case errors.Is(err, ErrRouteNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Activity not found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return http.StatusBadRequest, "Already signed up for this activity"
	case errors.Is(err, repository.ErrActivityFull):
		return http.StatusBadRequest, "Activity is full"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "Service Unavailable"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func writeErr(w http.ResponseWriter, err error) int {
	status, detail := statusFor(err)
	writeError(w, status, detail)
	return status
}

func methodNotAllowed(w http.ResponseWriter, op, allowed string) {
	w.Header().Set("Allow", allowed)
	writeErr(w, NewKind(op, ErrMethodNotAllowed))
}
