package domain

import "context"

//go:generate mockgen -destination mocks/mock_search_service.go -package mocks github.com/tracknest/tracknest/internal/domain SearchService

// SearchService runs the ticket query DSL. The zero query is
// "status:open sorted by recent activity".
type SearchService interface {
	Search(ctx context.Context, viewer *User, tracker *Tracker, query string, cursor *Cursor) ([]*Ticket, *Cursor, error)
}
