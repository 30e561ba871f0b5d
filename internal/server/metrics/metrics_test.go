package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest_CountsByLabels(t *testing.T) {
	m := New()

	m.ObserveRequest("http", "POST /users", "201", 10*time.Millisecond)
	m.ObserveRequest("http", "POST /users", "201", 20*time.Millisecond)
	m.ObserveRequest("grpc", "CreateAccount", "AlreadyExists", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("http", "POST /users", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("grpc", "CreateAccount", "AlreadyExists")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveRequest("http", "GET /notes", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `technotes_requests_total{code="200",method="GET /notes",transport="http"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
