package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/internal/domain/mocks"
	pkgmocks "github.com/tracknest/tracknest/pkg/mocks"
)

func setupUserHandlerTest(t *testing.T) (*UserHandler, *mocks.MockUserService, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockUserService(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	handler := NewUserHandler(mockService, mockLogger)
	return handler, mockService, ctrl
}

func TestUserHandler_RegisterRoutes(t *testing.T) {
	handler, _, ctrl := setupUserHandlerTest(t)
	defer ctrl.Finish()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	endpoints := []string{
		"/api/users.me",
		"/api/users.updateSettings",
		"/api/users.delete",
	}
	for _, endpoint := range endpoints {
		h, _ := mux.Handler(&http.Request{URL: &url.URL{Path: endpoint}})
		assert.NotNil(t, h, "expected handler registered for %s", endpoint)
	}
}

func TestUserHandler_HandleMe(t *testing.T) {
	t.Run("returns the viewer's profile", func(t *testing.T) {
		handler, _, ctrl := setupUserHandlerTest(t)
		defer ctrl.Finish()
		viewer := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}

		req := withViewer(httptest.NewRequest(http.MethodGet, "/api/users.me", nil), viewer)
		rr := httptest.NewRecorder()
		handler.handleMe(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		user := resp["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler, _, ctrl := setupUserHandlerTest(t)
		defer ctrl.Finish()

		req := httptest.NewRequest(http.MethodGet, "/api/users.me", nil)
		rr := httptest.NewRecorder()
		handler.handleMe(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserHandler_HandleUpdateSettings(t *testing.T) {
	handler, mockService, ctrl := setupUserHandlerTest(t)
	defer ctrl.Finish()
	viewer := &domain.User{ID: 1, Username: "alice"}

	updated := &domain.User{ID: 1, Username: "alice", NotifySelf: true}
	mockService.EXPECT().UpdateSettings(gomock.Any(), viewer, true).Return(updated, nil)

	body, _ := json.Marshal(map[string]interface{}{"notify_self": true})
	req := withViewer(httptest.NewRequest(http.MethodPost, "/api/users.updateSettings", bytes.NewReader(body)), viewer)
	rr := httptest.NewRecorder()
	handler.handleUpdateSettings(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, true, user["notify_self"])
}

func TestUserHandler_HandleDelete(t *testing.T) {
	handler, mockService, ctrl := setupUserHandlerTest(t)
	defer ctrl.Finish()
	viewer := &domain.User{ID: 1, Username: "alice"}

	mockService.EXPECT().Delete(gomock.Any(), viewer).Return(nil)

	req := withViewer(httptest.NewRequest(http.MethodPost, "/api/users.delete", nil), viewer)
	rr := httptest.NewRecorder()
	handler.handleDelete(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
