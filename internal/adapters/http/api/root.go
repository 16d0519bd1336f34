package api

import "net/http"

// RootHandler redirects the bare root to the frontend and answers every
// other unclaimed path with a JSON 404.
type RootHandler struct {
	indexPath string
}

// NewRootHandler creates a new root handler redirecting to indexPath.
func NewRootHandler(indexPath string) *RootHandler {
	return &RootHandler{indexPath: indexPath}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	const op = "api.root"
	if r.URL.Path != "/" {
		writeErr(w, NewKind(op, ErrRouteNotFound))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	http.Redirect(w, r, h.indexPath, http.StatusTemporaryRedirect)
}
