package api

import "net/http"

const rootMessage = "ChargeSense AI Backend is running. Use POST /upload to send Excel or CSV files."

type rootResponse struct {
	Message string `json:"message"`
}

// RootHandler answers the liveness banner at GET /.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "api.root", "GET, HEAD")
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{Message: rootMessage})
}
