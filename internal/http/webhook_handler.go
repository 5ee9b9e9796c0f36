package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

// WebhookHandler manages webhook subscriptions at user, tracker and
// ticket scope.
type WebhookHandler struct {
	service    domain.WebhookService
	ticketRepo domain.TicketRepository
	logger     logger.Logger
}

func NewWebhookHandler(service domain.WebhookService, ticketRepo domain.TicketRepository, logger logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service:    service,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/webhooks.list", middleware.RequireScope(middleware.ScopeTrackersRead)(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/webhooks.create", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/webhooks.delete", middleware.RequireScope(middleware.ScopeTrackersWrite)(http.HandlerFunc(h.handleDelete)))
}

func (h *WebhookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	scope := domain.WebhookScope(query.Get("scope"))
	trackerID, _ := strconv.ParseInt(query.Get("tracker_id"), 10, 64)
	scopedID, _ := strconv.ParseInt(query.Get("scoped_id"), 10, 64)

	var ticketID int64
	if scope == domain.WebhookScopeTicket {
		if trackerID == 0 || scopedID == 0 {
			WriteJSONError(w, "tracker_id and scoped_id are required at ticket scope", http.StatusBadRequest)
			return
		}
		ticket, err := h.ticketRepo.GetByScopedID(r.Context(), trackerID, scopedID)
		if err != nil {
			writeServiceError(w, h.logger, viewer, err, "Failed to get ticket")
			return
		}
		ticketID = ticket.ID
	}

	webhooks, err := h.service.List(r.Context(), viewer, scope, trackerID, ticketID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list webhooks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"webhooks": webhooks,
	})
}

func (h *WebhookHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.CreateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	webhook, err := h.service.Create(r.Context(), viewer, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to create webhook")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"webhook": webhook,
	})
}

func (h *WebhookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.DeleteWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), viewer, req.WebhookID); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to delete webhook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}
