package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timepal/pkg/protocol"
)

func TestEndpointPrefersRoutePattern(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/v1/*", "/now"}

	req := httptest.NewRequest(http.MethodGet, "/v1/now", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	assert.Equal(t, "/v1/now", endpoint(req))

	assert.Equal(t, "/custom", endpoint(httptest.NewRequest(http.MethodGet, "/custom", nil)))
	assert.Equal(t, "/", endpoint(nil))
}

func TestRecoverPanic(t *testing.T) {
	h := requestID(recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body protocol.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
}

func TestRequestID_TooLongIsReplaced(t *testing.T) {
	var seen string
	h := requestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))

	long := make([]byte, maxRequestIDLength+1)
	for i := range long {
		long[i] = 'a'
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, string(long))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, string(long), seen)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
