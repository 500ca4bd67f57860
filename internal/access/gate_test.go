package access

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-generator/internal/model"
)

type stubVerifier map[string]model.Identity

func (s stubVerifier) Verify(token string) (model.Identity, bool) {
	identity, ok := s[token]
	return identity, ok
}

var alice = model.Identity{Username: "alice", Name: "Alice", Role: model.RoleUser}

func newTestGate(policy Policy) *Gate {
	return NewGate(policy, stubVerifier{"good": alice})
}

func request(method string, path string, session string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	if session != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: session})
	}
	return r
}

func TestGate_AuthRequirement(t *testing.T) {
	t.Parallel()

	gate := newTestGate(Policy{})

	t.Run("api without session is 401", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/api/price-rules", ""))
		assert.Equal(t, ActionDeny, d.Action)
		assert.Equal(t, http.StatusUnauthorized, d.Status)
		assert.Equal(t, "Unauthorized", d.Error)
	})

	t.Run("page without session redirects to login", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/", ""))
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/login", d.Location)
	})

	t.Run("tampered session counts as absent", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/api/brands", "forged"))
		assert.Equal(t, http.StatusUnauthorized, d.Status)
	})

	t.Run("valid session passes with identity", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/api/brands", "good"))
		require.Equal(t, ActionPass, d.Action)
		require.NotNil(t, d.Identity)
		assert.Equal(t, alice, *d.Identity)
	})

	t.Run("public paths and their subtrees", func(t *testing.T) {
		for _, path := range []string{"/login", "/api/auth", "/api/auth/me", "/api/auth/hash", "/healthz", "/metrics"} {
			d := gate.Decide(request(http.MethodGet, path, ""))
			assert.Equal(t, ActionPass, d.Action, path)
		}
	})

	t.Run("prefix without separator is not public", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/api/authz", ""))
		assert.Equal(t, ActionDeny, d.Action)
	})

	t.Run("signed-in login visit goes home", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/login", "good"))
		assert.Equal(t, ActionRedirect, d.Action)
		assert.Equal(t, "/", d.Location)
	})

	t.Run("assets bypass everything", func(t *testing.T) {
		for _, path := range []string{"/static/app.js", "/brands/acme.png", "/favicon.ico"} {
			assert.Equal(t, ActionBypass, gate.Decide(request(http.MethodGet, path, "")).Action, path)
		}
	})
}

func TestGate_IPAdmission(t *testing.T) {
	t.Parallel()

	gate := newTestGate(Policy{IPRestrictEnabled: true, AllowedIPs: []string{"203.0.113.7", "10.1."}})

	cases := []struct {
		name    string
		headers map[string]string
		allowed bool
	}{
		{"exact match", map[string]string{"X-Real-IP": "203.0.113.7"}, true},
		{"prefix match", map[string]string{"X-Forwarded-For": "10.1.4.4, 198.51.100.1"}, true},
		{"cdn header wins", map[string]string{"CF-Connecting-IP": "8.8.8.8", "X-Real-IP": "203.0.113.7"}, false},
		{"prefix needs trailing dot", map[string]string{"X-Real-IP": "203.0.113.70"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := request(http.MethodGet, "/api/brands", "good")
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}

			d := gate.Decide(r)
			if tc.allowed {
				assert.Equal(t, ActionPass, d.Action)
				return
			}
			assert.Equal(t, ActionDeny, d.Action)
			assert.Equal(t, http.StatusForbidden, d.Status)
			assert.Equal(t, "Access denied", d.Error)
		})
	}

	t.Run("assets skip the IP check", func(t *testing.T) {
		r := request(http.MethodGet, "/brands/logo.png", "")
		r.Header.Set("X-Real-IP", "8.8.8.8")
		assert.Equal(t, ActionBypass, gate.Decide(r).Action)
	})
}

func TestGate_CORS(t *testing.T) {
	t.Parallel()

	brands := []model.Brand{
		{ID: "brand_1", AllowedOrigin: "https://one.example"},
		{ID: "brand_2", AllowedOrigin: "https://two.example"},
	}
	gate := newTestGate(Policy{Brands: brands, DevOrigins: []string{"http://localhost:3000"}})

	t.Run("known origin is echoed", func(t *testing.T) {
		r := request(http.MethodGet, "/api/brands", "good")
		r.Header.Set("Origin", "https://two.example")

		d := gate.Decide(r)
		assert.Equal(t, "https://two.example", d.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", d.Header.Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "86400", d.Header.Get("Access-Control-Max-Age"))
	})

	t.Run("unknown origin gets the active brand origin", func(t *testing.T) {
		r := request(http.MethodGet, "/api/brands", "good")
		r.Header.Set("Origin", "https://evil.example")
		r.AddCookie(&http.Cookie{Name: ActiveBrandCookie, Value: "brand_2"})

		d := gate.Decide(r)
		assert.Equal(t, "https://two.example", d.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("falls back to the first brand", func(t *testing.T) {
		r := request(http.MethodGet, "/api/brands", "good")
		d := gate.Decide(r)
		assert.Equal(t, "https://one.example", d.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("dev origin is echoed", func(t *testing.T) {
		r := request(http.MethodGet, "/api/brands", "good")
		r.Header.Set("Origin", "http://localhost:3000")
		assert.Equal(t, "http://localhost:3000", gate.Decide(r).Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answers without a session", func(t *testing.T) {
		r := request(http.MethodOptions, "/api/price-rules", "")
		r.Header.Set("Origin", "https://one.example")

		d := gate.Decide(r)
		assert.Equal(t, ActionPreflight, d.Action)
		assert.Equal(t, http.StatusNoContent, d.Status)
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", d.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("pages get no CORS headers", func(t *testing.T) {
		d := gate.Decide(request(http.MethodGet, "/", "good"))
		assert.Empty(t, d.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("no brands falls back to dev origin", func(t *testing.T) {
		bare := newTestGate(Policy{DevOrigins: []string{"http://localhost:3000"}})
		d := bare.Decide(request(http.MethodGet, "/api/brands", "good"))
		assert.Equal(t, "http://localhost:3000", d.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", ClientIP(r))

	r.Header.Set("X-Forwarded-For", " 198.51.100.2 , 10.0.0.1")
	assert.Equal(t, "198.51.100.2", ClientIP(r))
}
