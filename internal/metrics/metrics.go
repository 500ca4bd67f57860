package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coupon"

// Metrics owns a private registry. A nil *Metrics is valid and records nothing,
// which keeps call sites free of enabled checks.
type Metrics struct {
	registry        *prometheus.Registry
	gateDecisions   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	shopifyRequests *prometheus.CounterVec
	shopifyDuration *prometheus.HistogramVec
	codesCreated    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Access gate outcomes by action.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by method and status code.",
		}, []string{"method", "status"}),
		shopifyRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopify_requests_total",
			Help:      "Shopify Admin API calls by brand, operation and outcome.",
		}, []string{"brand", "operation", "outcome"}),
		shopifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shopify_request_duration_seconds",
			Help:      "Latency of Shopify Admin API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"brand", "operation"}),
		codesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_codes_created_total",
			Help:      "Discount codes Shopify accepted, per brand.",
		}, []string{"brand"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gateDecisions,
		m.httpRequests,
		m.shopifyRequests,
		m.shopifyDuration,
		m.codesCreated,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) GateDecision(outcome string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HTTPRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ShopifyRequest(brandID string, operation string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.shopifyRequests.WithLabelValues(brandID, operation, outcome).Inc()
	m.shopifyDuration.WithLabelValues(brandID, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) CodesCreated(brandID string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.codesCreated.WithLabelValues(brandID).Add(float64(n))
}
