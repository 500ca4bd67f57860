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

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.GateDecision("deny")
	m.GateDecision("deny")
	m.CodesCreated("brand_1", 100)
	m.CodesCreated("brand_1", 0)
	m.ShopifyRequest("brand_1", "create_batch", "ok", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gateDecisions.WithLabelValues("deny")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.codesCreated.WithLabelValues("brand_1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shopifyRequests.WithLabelValues("brand_1", "create_batch", "ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.GateDecision("pass")
		m.HTTPRequest("GET", 200)
		m.ShopifyRequest("b", "op", "ok", time.Second)
		m.CodesCreated("b", 3)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.HTTPRequest("POST", 201)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `coupon_http_requests_total{method="POST",status="201"} 1`)
}
