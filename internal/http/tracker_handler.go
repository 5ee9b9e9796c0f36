package http

import (
	"encoding/json"
	"net/http"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

// TrackerHandler serves the tracker CRUD surface plus the owner-only
// operations hanging off a tracker: ACL grants and archive
// export/import.
type TrackerHandler struct {
	service       domain.TrackerService
	accessService domain.AccessService
	exportService domain.ExportService
	importService domain.ImportService
	trackerRepo   domain.TrackerRepository
	logger        logger.Logger
}

func NewTrackerHandler(
	service domain.TrackerService,
	accessService domain.AccessService,
	exportService domain.ExportService,
	importService domain.ImportService,
	trackerRepo domain.TrackerRepository,
	logger logger.Logger,
) *TrackerHandler {
	return &TrackerHandler{
		service:       service,
		accessService: accessService,
		exportService: exportService,
		importService: importService,
		trackerRepo:   trackerRepo,
		logger:        logger,
	}
}

func (h *TrackerHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/trackers.list", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/trackers.get", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/trackers.create", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/trackers.update", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/trackers.delete", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleDelete)))

	mux.Handle("/api/trackers.listAccess", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleListAccess)))
	mux.Handle("/api/trackers.grantAccess", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleGrantAccess)))
	mux.Handle("/api/trackers.revokeAccess", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleRevokeAccess)))

	mux.Handle("/api/trackers.export", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleExport)))
	mux.Handle("/api/trackers.import", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleImport)))
}

func (h *TrackerHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())

	var req domain.ListTrackersRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cursor, err := domain.DecodeCursor(req.Cursor, req.Count)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trackers, next, err := h.service.List(r.Context(), viewer, req.Owner, cursor)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list trackers")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trackers":    trackers,
		"next_cursor": next.Encode(),
	})
}

func (h *TrackerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	tracker, err := h.service.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}

	access, err := h.accessService.ForTracker(r.Context(), viewer, tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to resolve access")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracker": tracker,
		"access":  access.Names(),
	})
}

func (h *TrackerHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.CreateTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, err := h.service.Create(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to create tracker")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"tracker": tracker,
	})
}

func (h *TrackerHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.UpdateTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, err := h.service.Update(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to update tracker")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracker": tracker,
	})
}

func (h *TrackerHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.DeleteTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), viewer, req.TrackerID); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to delete tracker")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}

func (h *TrackerHandler) handleListAccess(w http.ResponseWriter, r *http.Request) {
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

	tracker, err := h.service.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}

	grants, err := h.accessService.List(r.Context(), viewer, tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list access grants")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"grants": grants,
	})
}

func (h *TrackerHandler) handleGrantAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.GrantUserAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, err := h.getTrackerByID(w, r, viewer, req.TrackerID)
	if tracker == nil {
		return
	}

	grant, err := h.accessService.Grant(r.Context(), viewer, tracker, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to grant access")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"grant": grant,
	})
}

func (h *TrackerHandler) handleRevokeAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.RevokeUserAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, err := h.getTrackerByID(w, r, viewer, req.TrackerID)
	if tracker == nil {
		return
	}

	if err = h.accessService.Revoke(r.Context(), viewer, tracker, &req); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to revoke access")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}

// handleExport streams the gzipped archive of a tracker. Owner only:
// archives contain private subscriber state and signed identities.
func (h *TrackerHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.GetTrackerRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.service.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}
	if tracker.OwnerID != viewer.ID {
		WriteJSONError(w, "Only the tracker owner may export it", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+tracker.Name+`.json.gz"`)
	if err := h.exportService.Export(r.Context(), tracker, w); err != nil {
		// Headers are out the door, all that is left is logging.
		h.logger.WithField("tracker_id", tracker.ID).
			WithField("error", err.Error()).Error("Failed to export tracker")
	}
}

// handleImport replays an uploaded archive into a tracker the viewer
// owns. The body is the gzipped JSON dump; the target tracker is named
// by query parameters like the export.
func (h *TrackerHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.GetTrackerRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.service.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}
	if tracker.OwnerID != viewer.ID {
		WriteJSONError(w, "Only the tracker owner may import into it", http.StatusForbidden)
		return
	}

	if err := h.importService.Import(r.Context(), tracker, r.Body); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to import tracker archive")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}

// getTrackerByID loads a tracker for an id-addressed admin operation,
// writing the response itself on failure. Missing browse collapses to
// not found before the service-level owner check runs.
func (h *TrackerHandler) getTrackerByID(w http.ResponseWriter, r *http.Request, viewer *domain.User, trackerID int64) (*domain.Tracker, error) {
	if trackerID == 0 {
		WriteJSONError(w, "tracker_id is required", http.StatusBadRequest)
		return nil, nil
	}
	tracker, err := h.trackerRepo.GetByID(r.Context(), trackerID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return nil, err
	}
	access, err := h.accessService.ForTracker(r.Context(), viewer, tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to resolve access")
		return nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		WriteJSONError(w, "Tracker not found", http.StatusNotFound)
		return nil, nil
	}
	return tracker, nil
}
