package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmocks "github.com/tracknest/tracknest/pkg/mocks"
)

func TestRootHandler_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := pkgmocks.NewMockLogger(ctrl)
	handler := NewRootHandler(mockLogger, "0.9")

	t.Run("root path returns status and version", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.Handle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "0.9", body["version"])
	})

	t.Run("api root responds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		rr := httptest.NewRecorder()

		handler.Handle(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown path returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rr := httptest.NewRecorder()

		handler.Handle(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRootHandler_HandleHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := pkgmocks.NewMockLogger(ctrl)
	handler := NewRootHandler(mockLogger, "0.9")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.HandleHealth(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRootHandler_RegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := pkgmocks.NewMockLogger(ctrl)
	handler := NewRootHandler(mockLogger, "0.9")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	for _, endpoint := range []string{"/health", "/"} {
		h, pattern := mux.Handler(&http.Request{URL: &url.URL{Path: endpoint}})
		assert.NotNil(t, h)
		assert.Equal(t, endpoint, pattern)
	}
}
