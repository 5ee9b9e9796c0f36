package domain

import (
	"context"
	"strings"
)

// Key type for request-scoped auth values
type contextKey string

const (
	UserContextKey   contextKey = "user"
	ScopesContextKey contextKey = "scopes"
)

// AuthScopes is the grant list carried by a bearer token, e.g.
// "trackers:read" or "tickets:write". Write implies read.
type AuthScopes []string

func (s AuthScopes) Has(scope string) bool {
	for _, granted := range s {
		if granted == scope {
			return true
		}
		if strings.HasSuffix(scope, ":read") &&
			granted == strings.TrimSuffix(scope, ":read")+":write" {
			return true
		}
	}
	return false
}

// WithUser stores the authenticated user on the context. A nil user marks
// an anonymous request.
func WithUser(ctx context.Context, user *User, scopes AuthScopes) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, user)
	return context.WithValue(ctx, ScopesContextKey, scopes)
}

// UserFromContext returns the authenticated user or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(UserContextKey).(*User)
	return user
}

// ScopesFromContext returns the token's grant list. Anonymous requests
// have none.
func ScopesFromContext(ctx context.Context) AuthScopes {
	scopes, _ := ctx.Value(ScopesContextKey).(AuthScopes)
	return scopes
}
