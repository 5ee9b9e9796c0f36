package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/domain/mocks"
)

func testSecret() ([]byte, error) {
	return []byte("test-jwt-secret"), nil
}

func signTestToken(t *testing.T, secret []byte, claims *TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestNewAuthMiddleware(t *testing.T) {
	middleware := NewAuthMiddleware(testSecret)
	assert.NotNil(t, middleware)
}

func TestAuthenticate(t *testing.T) {
	secret, _ := testSecret()

	setup := func(t *testing.T) (*mocks.MockUserService, http.Handler, *int, **domain.User, *ScopeSet) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		users := mocks.NewMockUserService(ctrl)

		var calls int
		var seenViewer *domain.User
		var seenScopes ScopeSet
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			seenViewer = ViewerFromContext(r.Context())
			seenScopes = ScopesFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := NewAuthMiddleware(testSecret).Authenticate(users)(next)
		return users, handler, &calls, &seenViewer, &seenScopes
	}

	t.Run("anonymous request passes through with no viewer", func(t *testing.T) {
		_, handler, calls, seenViewer, _ := setup(t)

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *calls)
		assert.Nil(t, *seenViewer)
	})

	t.Run("invalid authorization header format", func(t *testing.T) {
		_, handler, calls, _, _ := setup(t)

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "InvalidFormat")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
		assert.Equal(t, 0, *calls)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, handler, calls, _, _ := setup(t)

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer notatoken")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
		assert.Equal(t, 0, *calls)
	})

	t.Run("expired token", func(t *testing.T) {
		_, handler, _, _, _ := setup(t)

		token := signTestToken(t, secret, &TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "remote-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			Username: "alice",
		})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("token signed with the wrong secret", func(t *testing.T) {
		_, handler, _, _, _ := setup(t)

		token := signTestToken(t, []byte("other-secret"), &TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "remote-1"},
			Username:         "alice",
		})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("missing subject", func(t *testing.T) {
		_, handler, _, _, _ := setup(t)

		token := signTestToken(t, secret, &TokenClaims{Username: "alice"})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Subject not found in token")
	})

	t.Run("claims that fail profile validation", func(t *testing.T) {
		_, handler, calls, _, _ := setup(t)

		token := signTestToken(t, secret, &TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "remote-1"},
			Username:         "Not A Valid Username",
		})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token claims")
		assert.Equal(t, 0, *calls)
	})

	t.Run("successful auth resolves the viewer", func(t *testing.T) {
		users, handler, calls, seenViewer, seenScopes := setup(t)

		alice := &domain.User{ID: 7, RemoteID: "remote-1", Username: "alice", Email: "alice@example.org"}
		users.EXPECT().
			GetOrCreateFromRemote(gomock.Any(), &domain.RemoteUser{
				ID:       "remote-1",
				Username: "alice",
				Email:    "alice@example.org",
			}).
			Return(alice, nil)

		token := signTestToken(t, secret, &TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "remote-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Username: "alice",
			Email:    "alice@example.org",
			Scopes:   []string{ScopeTrackersRead, ScopeTicketsWrite},
		})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *calls)
		assert.Equal(t, alice, *seenViewer)
		assert.Equal(t, ScopeSet{ScopeTrackersRead, ScopeTicketsWrite}, *seenScopes)
	})

	t.Run("account resolution failure", func(t *testing.T) {
		users, handler, calls, _, _ := setup(t)

		users.EXPECT().
			GetOrCreateFromRemote(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		token := signTestToken(t, secret, &TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "remote-1"},
			Username:         "alice",
		})

		req := httptest.NewRequest("GET", "/api/trackers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 0, *calls)
	})
}

func TestRequireScope(t *testing.T) {
	viewer := &domain.User{ID: 7, Username: "alice"}

	run := func(ctxViewer *domain.User, scopes ScopeSet, required string) *httptest.ResponseRecorder {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := RequireScope(required)(next)

		req := httptest.NewRequest("POST", "/api/tickets.submit", nil)
		ctx := req.Context()
		if ctxViewer != nil {
			ctx = contextWithAuth(ctx, ctxViewer, scopes)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req.WithContext(ctx))
		return w
	}

	t.Run("anonymous requests pass", func(t *testing.T) {
		w := run(nil, nil, ScopeTicketsWrite)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unrestricted token passes", func(t *testing.T) {
		w := run(viewer, nil, ScopeTicketsWrite)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("granted scope passes", func(t *testing.T) {
		w := run(viewer, ScopeSet{ScopeTicketsWrite}, ScopeTicketsWrite)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("write grant implies read", func(t *testing.T) {
		w := run(viewer, ScopeSet{ScopeTicketsWrite}, ScopeTicketsRead)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("read grant does not imply write", func(t *testing.T) {
		w := run(viewer, ScopeSet{ScopeTicketsRead}, ScopeTicketsWrite)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "tickets:write")
	})

	t.Run("scopes do not cross resources", func(t *testing.T) {
		w := run(viewer, ScopeSet{ScopeTrackersWrite}, ScopeTicketsRead)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestScopeSetHas(t *testing.T) {
	assert.True(t, ScopeSet(nil).Has(ScopeTrackersWrite))
	assert.True(t, ScopeSet{}.Has(ScopeTicketsRead))
	assert.True(t, ScopeSet{ScopeTrackersRead}.Has(ScopeTrackersRead))
	assert.True(t, ScopeSet{ScopeTrackersWrite}.Has(ScopeTrackersRead))
	assert.False(t, ScopeSet{ScopeTrackersRead}.Has(ScopeTrackersWrite))
	assert.False(t, ScopeSet{ScopeTicketsRead}.Has(ScopeTrackersRead))
}

func contextWithAuth(ctx context.Context, viewer *domain.User, scopes ScopeSet) context.Context {
	ctx = context.WithValue(ctx, AuthViewerKey, viewer)
	return context.WithValue(ctx, AuthScopesKey, scopes)
}
