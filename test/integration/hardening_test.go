//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-generator/internal/config"
)

func TestSecurityHeadersOnResponses(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := doJSON(t, env.login(t, testUser), http.MethodGet, env.server.URL+"/api/brands", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
}

func TestIPAllowlist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.IPRestrictEnabled = true
		cfg.AllowedIPs = []string{"10.0.0."}
	})

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/login", nil)
	require.NoError(t, err)
	req.Header.Set("CF-Connecting-IP", "192.0.2.10")
	resp, err := env.client(t).Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err = http.NewRequest(http.MethodGet, env.server.URL+"/login", nil)
	require.NoError(t, err)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 172.16.0.1")
	resp, err = env.client(t).Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, env.server.URL+"/api/price-rules", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://coupons.integration.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := env.client(t).Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://coupons.integration.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req, err = http.NewRequest(http.MethodOptions, env.server.URL+"/api/price-rules", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = env.client(t).Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, "https://coupons.integration.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAuthRateLimitReturns429(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(cfg *config.Config) { cfg.AuthRateLimitRPM = 2 })
	client := env.client(t)

	var last *http.Response
	for i := 0; i < 5; i++ {
		last = doJSON(t, client, http.MethodPost, env.server.URL+"/api/auth", map[string]string{"username": "x", "password": "y"})
	}

	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	assert.Equal(t, "Too many requests", decodeEnvelope(t, last, nil).Error)
}

func TestOperationalEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)

	health := doJSON(t, client, http.MethodGet, env.server.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, health.StatusCode)

	metrics := doJSON(t, client, http.MethodGet, env.server.URL+"/metrics", nil)
	assert.Equal(t, http.StatusOK, metrics.StatusCode)

	docs := doJSON(t, env.login(t, testUser), http.MethodGet, env.server.URL+"/api/docs/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, docs.StatusCode)
	assert.Equal(t, "application/yaml", docs.Header.Get("Content-Type"))

	static := doJSON(t, client, http.MethodGet, env.server.URL+"/static/app.js", nil)
	assert.Equal(t, http.StatusOK, static.StatusCode)
}
