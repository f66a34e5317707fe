package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStoreOp(t *testing.T) {
	m := New()
	m.ObserveStoreOp("tenant", "vacated", nil)
	m.ObserveStoreOp("tenant", "vacated", nil)
	m.ObserveStoreOp("tenant", "vacated", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeOps.WithLabelValues("tenant", "vacated", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("tenant", "vacated", "error")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/rooms", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	m.SetOverdue(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `rentbook_http_requests_total{code="200",method="GET",route="/api/rooms"} 1`))
	assert.True(t, strings.Contains(body, "rentbook_overdue_payments 3"))
}
