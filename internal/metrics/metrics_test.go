package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveAndServe(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest("POST", "/api/auth/login", 200, 42*time.Millisecond)
	m.ObserveRequest("POST", "/api/auth/login", 401, 10*time.Millisecond)
	m.ObserveLogin("success")
	m.ObserveLogin("failure")
	m.ObserveLogin("failure")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `mintid_http_requests_total{method="POST",path="/api/auth/login",status="200"} 1`)
	assert.Contains(t, body, `mintid_http_requests_total{method="POST",path="/api/auth/login",status="401"} 1`)
	assert.Contains(t, body, `mintid_login_attempts_total{outcome="failure"} 2`)
	assert.Contains(t, body, `mintid_login_attempts_total{outcome="success"} 1`)
	assert.Contains(t, body, "mintid_http_request_duration_seconds_bucket")
}

func TestMetrics_IndependentInstances(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ObserveLogin("success")

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.NotContains(t, rec.Body.String(), `mintid_login_attempts_total{outcome="success"} 1`)
}
