package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the domain error kinds onto HTTP statuses.
// Services wrap their errors, so each kind is matched with errors.As
// rather than on the concrete type. Trackers and tickets the viewer
// cannot browse already surface from the services as not found, so a
// permission error here means browse was held but the operation needed
// more; anonymous viewers get a 401 instead so clients know
// authenticating could help. Anything unrecognized is logged and
// returned as a generic 500 with message.
func writeServiceError(w http.ResponseWriter, log logger.Logger, viewer *domain.User, err error, message string) {
	var (
		validationErr domain.ValidationError
		permissionErr *domain.PermissionError
		conflictErr   *domain.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &permissionErr):
		if viewer == nil {
			WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		WriteJSONError(w, permissionErr.Error(), http.StatusForbidden)
	case errors.As(err, &conflictErr):
		WriteJSONError(w, conflictErr.Error(), http.StatusConflict)
	default:
		if notFound, ok := asNotFound(err); ok {
			WriteJSONError(w, notFound.Error(), http.StatusNotFound)
			return
		}
		log.WithField("error", err.Error()).Error(message)
		WriteJSONError(w, message, http.StatusInternalServerError)
	}
}

// asNotFound unwraps err to whichever entity not-found error it carries
func asNotFound(err error) (error, bool) {
	var (
		trackerErr      *domain.ErrTrackerNotFound
		ticketErr       *domain.ErrTicketNotFound
		commentErr      *domain.ErrCommentNotFound
		labelErr        *domain.ErrLabelNotFound
		userErr         *domain.ErrUserNotFound
		webhookErr      *domain.ErrWebhookNotFound
		subscriptionErr *domain.ErrSubscriptionNotFound
		accessErr       *domain.ErrUserAccessNotFound
		participantErr  *domain.ErrParticipantNotFound
	)
	switch {
	case errors.As(err, &trackerErr):
		return trackerErr, true
	case errors.As(err, &ticketErr):
		return ticketErr, true
	case errors.As(err, &commentErr):
		return commentErr, true
	case errors.As(err, &labelErr):
		return labelErr, true
	case errors.As(err, &userErr):
		return userErr, true
	case errors.As(err, &webhookErr):
		return webhookErr, true
	case errors.As(err, &subscriptionErr):
		return subscriptionErr, true
	case errors.As(err, &accessErr):
		return accessErr, true
	case errors.As(err, &participantErr):
		return participantErr, true
	}
	return nil, false
}
