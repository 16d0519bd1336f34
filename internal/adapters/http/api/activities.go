package api

import (
	"context"
	"net/http"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// ActivitiesDependencies defines the read side used by GET /activities.
type ActivitiesDependencies interface {
	ListActivities(ctx context.Context) (model.Catalog, error)
}

// ActivitiesHandler handles catalog requests.
type ActivitiesHandler struct {
	deps   ActivitiesDependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies, l logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, logger: l}
}

// HandleList handles GET /activities requests. The body is a JSON object
// keyed by activity name in catalog order.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	activities, err := h.deps.ListActivities(r.Context())
	if err != nil {
		err = WrapKind(op, ErrDependency, err)
		if status := writeErr(w, err); status >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "list activities failed", logger.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
