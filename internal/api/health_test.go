package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_CheckHealth(t *testing.T) {
	healthy := false
	h := NewHealthHandler(func() bool { return healthy }, func() map[string]bool {
		return map[string]bool{"store": healthy}
	})

	check := func() map[string]any {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		h.CheckHealth(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	body := check()
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, map[string]any{"store": false}, body["components"])

	healthy = true
	body = check()
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthHandler_NilFuncs(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	w := httptest.NewRecorder()
	h.CheckHealth(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "components")
}
