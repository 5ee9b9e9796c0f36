package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/pkg/logger"
)

// TicketHandler serves the ticket lifecycle surface: submission, the
// combined comment/status update, field edits, assignment, the event
// log and comment editing.
type TicketHandler struct {
	service            domain.TicketService
	trackerService     domain.TrackerService
	searchService      domain.SearchService
	participantService domain.ParticipantService
	userService        domain.UserService
	trackerRepo        domain.TrackerRepository
	accessService      domain.AccessService
	logger             logger.Logger
}

// TicketHandlerConfig wires the handler's collaborators.
type TicketHandlerConfig struct {
	Service            domain.TicketService
	TrackerService     domain.TrackerService
	SearchService      domain.SearchService
	ParticipantService domain.ParticipantService
	UserService        domain.UserService
	TrackerRepo        domain.TrackerRepository
	AccessService      domain.AccessService
	Logger             logger.Logger
}

func NewTicketHandler(cfg TicketHandlerConfig) *TicketHandler {
	return &TicketHandler{
		service:            cfg.Service,
		trackerService:     cfg.TrackerService,
		searchService:      cfg.SearchService,
		participantService: cfg.ParticipantService,
		userService:        cfg.UserService,
		trackerRepo:        cfg.TrackerRepo,
		accessService:      cfg.AccessService,
		logger:             cfg.Logger,
	}
}

func (h *TicketHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/tickets.list", middleware.RequireScope(middleware.ScopeTicketsRead)(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/tickets.get", middleware.RequireScope(middleware.ScopeTicketsRead)(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/tickets.events", middleware.RequireScope(middleware.ScopeTicketsRead)(http.HandlerFunc(h.handleEvents)))
	mux.Handle("/api/tickets.submit", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleSubmit)))
	mux.Handle("/api/tickets.update", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/tickets.delete", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/tickets.assign", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleAssign)))
	mux.Handle("/api/tickets.unassign", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleUnassign)))
	mux.Handle("/api/comments.update", middleware.RequireScope(middleware.ScopeTicketsWrite)(http.HandlerFunc(h.handleEditComment)))
}

// handleList pages a tracker's tickets. A q parameter switches to the
// search DSL, which also carries the default status:open filter.
func (h *TicketHandler) handleList(w http.ResponseWriter, r *http.Request) {
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
	cursor, err := domain.DecodeCursor(r.URL.Query().Get("cursor"), parseCountParam(r))
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.Get(r.Context(), viewer, req.Owner, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}

	var tickets []*domain.Ticket
	var next *domain.Cursor
	if r.URL.Query().Has("q") {
		tickets, next, err = h.searchService.Search(r.Context(), viewer, tracker, r.URL.Query().Get("q"), cursor)
	} else {
		tickets, next, err = h.service.List(r.Context(), viewer, tracker, cursor)
	}
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list tickets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tickets":     tickets,
		"next_cursor": next.Encode(),
	})
}

func (h *TicketHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())

	var req domain.GetTicketRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.Get(r.Context(), viewer, req.Owner, req.Tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}
	ticket, err := h.service.Get(r.Context(), viewer, tracker, req.ScopedID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get ticket")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ticket": ticket,
	})
}

func (h *TicketHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())

	var req domain.GetTicketRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cursor, err := domain.DecodeCursor(r.URL.Query().Get("cursor"), parseCountParam(r))
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, err := h.trackerService.Get(r.Context(), viewer, req.Owner, req.Tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return
	}
	ticket, err := h.service.Get(r.Context(), viewer, tracker, req.ScopedID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get ticket")
		return
	}

	events, next, err := h.service.Events(r.Context(), viewer, tracker, ticket, cursor)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events":      events,
		"next_cursor": next.Encode(),
	})
}

func (h *TicketHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.SubmitTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker := h.resolveTracker(w, r, viewer, req.TrackerID)
	if tracker == nil {
		return
	}
	actor, err := h.participantService.ForUser(r.Context(), viewer.ID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to resolve participant")
		return
	}

	ticket, err := h.service.Submit(r.Context(), viewer, actor, tracker, &req)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to submit ticket")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"ticket": ticket,
	})
}

// updateTicketRequest is the combined ticket update payload. Comment,
// status and resolution run through the lifecycle engine in one step;
// title, description and labels are field edits. Created, external_id
// and external_url are import-style fields only the tracker owner may
// set.
type updateTicketRequest struct {
	TrackerID int64 `json:"tracker_id"`
	ScopedID  int64 `json:"scoped_id"`

	Comment    *string `json:"comment,omitempty"`
	Status     *string `json:"status,omitempty"`
	Resolution *string `json:"resolution,omitempty"`

	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`

	Created     *time.Time `json:"created,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`
}

// lifecycleUpdate translates the status name form of the payload into
// the engine's resolve/reopen terms. Only the resolved and reported
// targets change a ticket's state; the rest of the enum is descriptive
// and never reached by a transition.
func (req *updateTicketRequest) lifecycleUpdate(ticket *domain.Ticket) (*domain.TicketUpdate, error) {
	update := &domain.TicketUpdate{
		Created:     req.Created,
		ExternalID:  req.ExternalID,
		ExternalURL: req.ExternalURL,
	}
	if req.Comment != nil {
		update.Text = *req.Comment
	}
	if req.Status == nil {
		if req.Comment == nil {
			return nil, nil
		}
		return update, nil
	}

	status, err := domain.ParseTicketStatus(*req.Status)
	if err != nil {
		return nil, domain.NewFieldValidationError("status", err.Error())
	}
	switch status {
	case domain.StatusResolved:
		update.Resolve = true
		if req.Resolution != nil {
			update.Resolution = *req.Resolution
		}
	case domain.StatusReported:
		if ticket.Status != domain.StatusReported {
			update.Reopen = true
		}
	default:
		return nil, domain.NewFieldValidationError("status",
			"only resolved and reported can be set through an update")
	}
	return update, nil
}

func (h *TicketHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, ticket := h.resolveTicket(w, r, viewer, req.TrackerID, req.ScopedID)
	if ticket == nil {
		return
	}

	// Field edits first so the lifecycle event sees the final title.
	if req.Title != nil || req.Description != nil || req.Labels != nil {
		updated, err := h.service.Update(r.Context(), viewer, tracker, ticket, &domain.UpdateTicketRequest{
			TrackerID:   req.TrackerID,
			ScopedID:    req.ScopedID,
			Title:       req.Title,
			Description: req.Description,
			Labels:      req.Labels,
		})
		if err != nil {
			writeServiceError(w, h.logger, viewer, err, "Failed to update ticket")
			return
		}
		ticket = updated
	}

	update, err := req.lifecycleUpdate(ticket)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var event *domain.Event
	if update != nil {
		actor, err := h.participantService.ForUser(r.Context(), viewer.ID)
		if err != nil {
			writeServiceError(w, h.logger, viewer, err, "Failed to resolve participant")
			return
		}
		event, err = h.service.Apply(r.Context(), viewer, actor, tracker, ticket, update)
		if err != nil {
			writeServiceError(w, h.logger, viewer, err, "Failed to apply ticket update")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ticket": ticket,
		"event":  event,
	})
}

func (h *TicketHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		TrackerID int64 `json:"tracker_id"`
		ScopedID  int64 `json:"scoped_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tracker, ticket := h.resolveTicket(w, r, viewer, req.TrackerID, req.ScopedID)
	if ticket == nil {
		return
	}

	if err := h.service.Delete(r.Context(), viewer, tracker, ticket); err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to delete ticket")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}

func (h *TicketHandler) handleAssign(w http.ResponseWriter, r *http.Request) {
	h.handleAssignment(w, r, true)
}

func (h *TicketHandler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	h.handleAssignment(w, r, false)
}

func (h *TicketHandler) handleAssignment(w http.ResponseWriter, r *http.Request, assign bool) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.AssignUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, ticket := h.resolveTicket(w, r, viewer, req.TrackerID, req.ScopedID)
	if ticket == nil {
		return
	}
	assignee, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to resolve assignee")
		return
	}

	if assign {
		err = h.service.Assign(r.Context(), viewer, tracker, ticket, assignee)
	} else {
		err = h.service.Unassign(r.Context(), viewer, tracker, ticket, assignee)
	}
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to update assignment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
	})
}

func (h *TicketHandler) handleEditComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	if viewer == nil {
		WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req domain.EditCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tracker, ticket := h.resolveTicket(w, r, viewer, req.TrackerID, req.ScopedID)
	if ticket == nil {
		return
	}

	comment, err := h.service.EditComment(r.Context(), viewer, tracker, ticket, req.CommentID, req.Text)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to edit comment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"comment": comment,
	})
}

// resolveTracker loads an id-addressed tracker, collapsing missing
// browse access to not found. It writes the response itself on failure
// and returns nil.
func (h *TicketHandler) resolveTracker(w http.ResponseWriter, r *http.Request, viewer *domain.User, trackerID int64) *domain.Tracker {
	if trackerID == 0 {
		WriteJSONError(w, "tracker_id is required", http.StatusBadRequest)
		return nil
	}
	tracker, err := h.trackerRepo.GetByID(r.Context(), trackerID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get tracker")
		return nil
	}
	access, err := h.accessService.ForTracker(r.Context(), viewer, tracker)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to resolve access")
		return nil
	}
	if !access.Has(domain.AccessBrowse) {
		WriteJSONError(w, "Tracker not found", http.StatusNotFound)
		return nil
	}
	return tracker
}

func (h *TicketHandler) resolveTicket(w http.ResponseWriter, r *http.Request, viewer *domain.User, trackerID, scopedID int64) (*domain.Tracker, *domain.Ticket) {
	tracker := h.resolveTracker(w, r, viewer, trackerID)
	if tracker == nil {
		return nil, nil
	}
	if scopedID == 0 {
		WriteJSONError(w, "scoped_id is required", http.StatusBadRequest)
		return nil, nil
	}
	ticket, err := h.service.Get(r.Context(), viewer, tracker, scopedID)
	if err != nil {
		writeServiceError(w, h.logger, viewer, err, "Failed to get ticket")
		return nil, nil
	}
	return tracker, ticket
}

func parseCountParam(r *http.Request) int {
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	return count
}
