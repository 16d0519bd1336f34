package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/pkg/logger"
)

const signupSuffix = "/signup"

// SignupDependencies defines the write side used by POST /activities/{name}/signup.
type SignupDependencies interface {
	Signup(ctx context.Context, activity, email string) (service.SignupResult, error)
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps   SignupDependencies
	logger logger.Logger
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies, l logger.Logger) *SignupHandler {
	return &SignupHandler{deps: deps, logger: l}
}

// HandleSignup handles POST /activities/{activity_name}/signup?email=... requests.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name, ok := activityFromPath(r.URL.Path)
	if !ok {
		writeErr(w, NewKind(op, ErrRouteNotFound))
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}

	query := r.URL.Query()
	if !query.Has("email") {
		writeErr(w, NewKind(op, ErrMissingParam))
		return
	}
	email := query.Get("email")

	res, err := h.deps.Signup(r.Context(), name, email)
	if err != nil {
		err = WrapKind(op, ErrDependency, err)
		if status := writeErr(w, err); status >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "signup failed",
				logger.String("activity", name),
				logger.Error(err),
			)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// activityFromPath extracts {name} from /activities/{name}/signup. r.URL.Path
// is already percent-decoded, so names with spaces arrive intact.
func activityFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/activities/")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, signupSuffix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
