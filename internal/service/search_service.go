package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
	"github.com/tracknest/tracknest/pkg/searchql"
)

// SearchService normalizes the ticket query DSL and runs it against the
// ticket repository.
type SearchService struct {
	ticketRepo    domain.TicketRepository
	accessService domain.AccessService
	logger        logger.Logger
}

func NewSearchService(ticketRepo domain.TicketRepository, accessService domain.AccessService, logger logger.Logger) *SearchService {
	return &SearchService{
		ticketRepo:    ticketRepo,
		accessService: accessService,
		logger:        logger,
	}
}

// Search resolves query for viewer on tracker. Browse access is
// required, a tracker the viewer cannot browse stays hidden.
func (s *SearchService) Search(ctx context.Context, viewer *domain.User, tracker *domain.Tracker, query string, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	access, err := s.accessService.ForTracker(ctx, viewer, tracker)
	if err != nil {
		return nil, nil, err
	}
	if !access.Has(domain.AccessBrowse) {
		return nil, nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}

	q, err := buildSearchQuery(viewer, tracker, query)
	if err != nil {
		return nil, nil, err
	}

	tickets, next, err := s.ticketRepo.Search(ctx, q, cursor)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to search tickets: %v", err))
		return nil, nil, fmt.Errorf("failed to search tickets: %w", err)
	}
	return tickets, next, nil
}

// buildSearchQuery normalizes parsed terms into the repository query.
// Without a status term the query filters to open tickets, without a
// sort term it orders by newest activity.
func buildSearchQuery(viewer *domain.User, tracker *domain.Tracker, query string) (*domain.TicketSearchQuery, error) {
	q := &domain.TicketSearchQuery{TrackerID: tracker.ID}

	hasStatus := false
	hasSort := false
	for _, term := range searchql.Parse(query) {
		switch term.Key {
		case "":
			q.Terms = append(q.Terms, domain.SearchTerm{Value: term.Value, Inverse: term.Inverse})

		case "status":
			hasStatus = true
			if term.Value == "any" {
				// status:any lifts the filter. Its negation matches
				// nothing.
				if term.Inverse {
					q.Terms = append(q.Terms, domain.SearchTerm{Key: "nothing"})
				}
				continue
			}
			if term.Value != "open" && term.Value != "closed" {
				if _, err := domain.ParseTicketStatus(term.Value); err != nil {
					return nil, domain.NewValidationError(fmt.Sprintf("Invalid status: '%s'", term.Value))
				}
			}
			q.Terms = append(q.Terms, domain.SearchTerm{Key: "status", Value: term.Value, Inverse: term.Inverse})

		case "submitter", "assigned":
			// The bare word me means the viewer. A tilde makes it a
			// literal username, ~me is the user named me.
			value := term.Value
			if value == "me" {
				if viewer == nil {
					q.Terms = append(q.Terms, domain.SearchTerm{Key: "nothing", Inverse: term.Inverse})
					continue
				}
				value = viewer.Username
			} else {
				value = strings.TrimPrefix(value, "~")
			}
			q.Terms = append(q.Terms, domain.SearchTerm{Key: term.Key, Value: value, Inverse: term.Inverse})

		case "label":
			q.Terms = append(q.Terms, domain.SearchTerm{Key: "label", Value: term.Value, Inverse: term.Inverse})

		case "no":
			if term.Value != "assignee" && term.Value != "label" {
				return nil, domain.NewValidationError(fmt.Sprintf("Invalid search term: 'no:%s'", term.Value))
			}
			q.Terms = append(q.Terms, domain.SearchTerm{Key: "no", Value: term.Value, Inverse: term.Inverse})

		case "sort", "rsort":
			column := strings.TrimPrefix(term.Value, "-")
			switch column {
			case "created", "updated", "comments":
			default:
				return nil, domain.NewValidationError(fmt.Sprintf(
					"Invalid %s value: '%s'. Supported values are: 'created', 'updated', 'comments'.",
					term.Key, column))
			}
			// The first sort term wins.
			if hasSort {
				continue
			}
			hasSort = true
			if column != "updated" {
				q.OrderBy = column
			}
			q.Asc = term.Key == "rsort"

		default:
			return nil, domain.NewValidationError(fmt.Sprintf("Invalid search term: '%s:%s'", term.Key, term.Value))
		}
	}

	if !hasStatus {
		q.Terms = append(q.Terms, domain.SearchTerm{Key: "status", Value: "open"})
	}
	return q, nil
}
