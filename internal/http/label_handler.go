package http

import (
	"encoding/json"
	"net/http"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

type LabelHandler struct {
	service        domain.LabelService
	trackerService domain.TrackerService
	logger         logger.Logger
}

func NewLabelHandler(service domain.LabelService, trackerService domain.TrackerService, logger logger.Logger) *LabelHandler {
	return &LabelHandler{
		service:        service,
		trackerService: trackerService,
		logger:         logger,
	}
}

func (h *LabelHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/labels.list", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/labels.create", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/labels.update", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/labels.delete", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleDelete)))
}

func (h *LabelHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())

	var req domain.GetTrackerRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}

	labels, err := h.service.List(r.Context(), viewer, tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list labels")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"labels": labels,
	})
}

func (h *LabelHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	label, err := h.service.Create(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to create label")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"label": label,
	})
}

func (h *LabelHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.UpdateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	label, err := h.service.Update(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to update label")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"label": label,
	})
}

func (h *LabelHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.DeleteLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), viewer, req.LabelID); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to delete label")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}
