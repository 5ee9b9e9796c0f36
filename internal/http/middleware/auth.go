package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tracknest/tracknest/internal/domain"
)

// Keys for storing the authenticated viewer and token scopes in context
type contextKey string

const (
	AuthViewerKey contextKey = "auth_viewer"
	AuthScopesKey contextKey = "auth_scopes"
)

// Scope names carried by bearer tokens.
const (
	ScopeTrackersRead  = "trackers:read"
	ScopeTrackersWrite = "trackers:write"
	ScopeTicketsRead   = "tickets:read"
	ScopeTicketsWrite  = "tickets:write"
)

// TokenClaims is the bearer token payload minted by the identity
// service. The subject is the identity service's stable user ID.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Scopes   []string `json:"scopes,omitempty"`
}

// ScopeSet is the set of grants a bearer token carries. An empty set
// means the token is unrestricted.
type ScopeSet []string

// Has reports whether the set grants the named scope. A write grant
// implies the read grant for the same resource.
func (s ScopeSet) Has(scope string) bool {
	if len(s) == 0 {
		return true
	}
	for _, granted := range s {
		if granted == scope {
			return true
		}
		if resource, op, ok := strings.Cut(scope, ":"); ok && op == "read" && granted == resource+":write" {
			return true
		}
	}
	return false
}

// UserServiceInterface defines the interface for resolving token
// subjects to local accounts
type UserServiceInterface interface {
	GetOrCreateFromRemote(ctx context.Context, remote *domain.RemoteUser) (*domain.User, error)
}

// AuthConfig holds the configuration for the auth middleware
type AuthConfig struct {
	getJWTSecret func() ([]byte, error)
}

// NewAuthMiddleware creates a new auth middleware with the given secret provider
func NewAuthMiddleware(getJWTSecret func() ([]byte, error)) *AuthConfig {
	return &AuthConfig{
		getJWTSecret: getJWTSecret,
	}
}

// Authenticate resolves the bearer token when the request carries one.
// Requests without an Authorization header pass through anonymously
// with no viewer in the context. Access control downstream decides
// what an anonymous viewer may see.
func (ac *AuthConfig) Authenticate(users UserServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			secret, err := ac.getJWTSecret()
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			claims := &TokenClaims{}
			_, err = jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			if claims.Subject == "" {
				http.Error(w, "Subject not found in token", http.StatusUnauthorized)
				return
			}

			remote := &domain.RemoteUser{
				ID:       claims.Subject,
				Username: claims.Username,
				Email:    claims.Email,
			}
			if err := remote.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Invalid token claims: %v", err), http.StatusUnauthorized)
				return
			}

			viewer, err := users.GetOrCreateFromRemote(r.Context(), remote)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), AuthViewerKey, viewer)
			ctx = context.WithValue(ctx, AuthScopesKey, ScopeSet(claims.Scopes))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects authenticated requests whose token does not
// grant the named scope. Anonymous requests pass through untouched;
// they carry no token to restrict.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ViewerFromContext(r.Context()) != nil && !ScopesFromContext(r.Context()).Has(scope) {
				http.Error(w, fmt.Sprintf("Token lacks the %s scope", scope), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ViewerFromContext returns the authenticated viewer, or nil for
// anonymous requests.
func ViewerFromContext(ctx context.Context) *domain.User {
	viewer, _ := ctx.Value(AuthViewerKey).(*domain.User)
	return viewer
}

// ScopesFromContext returns the scope set of the request's token.
func ScopesFromContext(ctx context.Context) ScopeSet {
	scopes, _ := ctx.Value(AuthScopesKey).(ScopeSet)
	return scopes
}
