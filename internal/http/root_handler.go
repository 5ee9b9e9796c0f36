package http

import (
	"encoding/json"
	"net/http"

	"github.com/tracknest/tracknest/pkg/logger"
)

// RootHandler answers the API root and health probes.
type RootHandler struct {
	logger  logger.Logger
	version string
}

func NewRootHandler(logger logger.Logger, version string) *RootHandler {
	return &RootHandler{
		logger:  logger,
		version: version,
	}
}

func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/api" && r.URL.Path != "/api/" {
		WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *RootHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HandleHealth)
	// catch all route
	mux.HandleFunc("/", h.Handle)
}
