package http

import (
	"encoding/json"
	"net/http"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

// SubscriptionHandler toggles the viewer's tracker and ticket
// subscriptions.
type SubscriptionHandler struct {
	service        domain.SubscriptionService
	trackerService domain.TrackerService
	ticketService  domain.TicketService
	logger         logger.Logger
}

func NewSubscriptionHandler(
	service domain.SubscriptionService,
	trackerService domain.TrackerService,
	ticketService domain.TicketService,
	logger logger.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:        service,
		trackerService: trackerService,
		ticketService:  ticketService,
		logger:         logger,
	}
}

type subscriptionRequest struct {
	Owner   string `json:"owner"`
	Tracker string `json:"tracker"`

	// ScopedID switches the request to ticket scope when non-zero.
	ScopedID int64 `json:"scoped_id,omitempty"`
}

func (r *subscriptionRequest) Validate() error {
	if r.Owner == "" {
		return domain.NewFieldValidationError("owner", "is required")
	}
	if r.Tracker == "" {
		return domain.NewFieldValidationError("tracker", "is required")
	}
	return nil
}

func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/subscriptions.subscribe", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleSubscribe)))
	mux.Handle("/api/subscriptions.unsubscribe", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleUnsubscribe)))
}

func (h *SubscriptionHandler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

func (h *SubscriptionHandler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

func (h *SubscriptionHandler) handle(w http.ResponseWriter, r *http.Request, subscribe bool) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.Get(r.Context(), viewer, req.Owner, req.Tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}

	var sub *domain.TicketSubscription
	if req.ScopedID == 0 {
		if subscribe {
			sub, err = h.service.SubscribeTracker(r.Context(), viewer, tracker)
		} else {
			err = h.service.UnsubscribeTracker(r.Context(), viewer, tracker)
		}
	} else {
		var ticket *domain.Ticket
		ticket, err = h.ticketService.Get(r.Context(), viewer, tracker, req.ScopedID)
		if err == nil {
			if subscribe {
				sub, err = h.service.SubscribeTicket(r.Context(), viewer, tracker, ticket)
			} else {
				err = h.service.UnsubscribeTicket(r.Context(), viewer, tracker, ticket)
			}
		}
	}
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to update subscription")
		return
	}

	if sub != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"subscription": sub,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}
