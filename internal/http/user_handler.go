package http

import (
	"encoding/json"
	"net/http"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

// UserHandler serves the account surface. Accounts are created by the
// auth middleware on first token validation, so there is no signup
// endpoint, only the viewer's own profile, settings and deletion.
type UserHandler struct {
	service domain.UserService
	logger  logger.Logger
}

func NewUserHandler(service domain.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/users.me", h.handleMe)
	mux.HandleFunc("/api/users.updateSettings", h.handleUpdateSettings)
	mux.HandleFunc("/api/users.delete", h.handleDelete)
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": viewer,
	})
}

func (h *UserHandler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.UpdateUserSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateSettings(r.Context(), viewer, req.NotifySelf)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// handleDelete removes the viewer's account. Trackers the account owns
// and everything under them cascade with it.
func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), viewer); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}
