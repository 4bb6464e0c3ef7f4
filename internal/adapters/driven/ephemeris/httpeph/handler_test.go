package httpeph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	NewHandler(newFixture()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandler_Position(t *testing.T) {
	rec, body := serve(t, "/position?jd=2460001&body=su")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "su", body["body"])
	assert.InDelta(t, 121.5, body["longitude"], 1e-9)
}

func TestHandler_TransitMissing(t *testing.T) {
	rec, body := serve(t, "/transit?jd=2460000&lat=0&lon=0&body=su&event=set")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["valid"])
}

func TestHandler_BadParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"missing jd", "/ayanamsa", `"jd"`},
		{"bad jd", "/ayanamsa?jd=noon", `"jd"`},
		{"missing lat", "/transit?jd=1&lon=0&body=su&event=rise", `"lat"`},
		{"bad flag", "/transit?jd=1&lat=0&lon=0&body=su&event=rise&disc_center=maybe", `"disc_center"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(t, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(newFixture()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ayanamsa?jd=1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
