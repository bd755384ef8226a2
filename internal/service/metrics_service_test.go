package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceRecords(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/login", 200, 10*time.Millisecond)
	m.RecordLogin(LoginFailed)
	m.RecordLogin(LoginFailed)
	m.RecordSubmission()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `portal_logins_total{outcome="invalid_credentials"} 2`)
	assert.Contains(t, body, "portal_grade_requests_submitted_total 1")
	assert.Contains(t, body, `http_requests_total{method="GET",path="/login",status="200"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveDBQuery("users.count", time.Millisecond)
	m.RecordLogin(LoginSucceeded)
	m.ObservePasswordHash("hash", time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
