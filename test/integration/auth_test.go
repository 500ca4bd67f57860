//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coupon-generator/internal/config"
	"coupon-generator/internal/model"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)

	resp := doJSON(t, client, http.MethodPost, env.server.URL+"/api/auth", map[string]string{
		"username": "ALICE",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var identity model.Identity
	body := decodeEnvelope(t, resp, &identity)
	assert.True(t, body.Success)
	assert.Equal(t, model.Identity{Username: testUser, Name: "Alice", Role: model.RoleAdmin}, identity)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	assert.Equal(t, 7*24*60*60, session.MaxAge)
	assert.False(t, session.Secure)

	me := doJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", nil)
	require.Equal(t, http.StatusOK, me.StatusCode)

	logout := doJSON(t, client, http.MethodDelete, env.server.URL+"/api/auth", nil)
	require.Equal(t, http.StatusOK, logout.StatusCode)

	after := doJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, after.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)

	resp := doJSON(t, client, http.MethodPost, env.server.URL+"/api/auth", map[string]string{"username": testUser})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username and password are required", decodeEnvelope(t, resp, nil).Error)

	resp = doJSON(t, client, http.MethodPost, env.server.URL+"/api/auth", map[string]string{"username": testUser, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid username or password", decodeEnvelope(t, resp, nil).Error)
}

func TestUnauthenticatedRequests(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)

	api := doJSON(t, client, http.MethodGet, env.server.URL+"/api/price-rules", nil)
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode)
	assert.Equal(t, "Unauthorized", decodeEnvelope(t, api, nil).Error)

	page := doJSON(t, client, http.MethodGet, env.server.URL+"/", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, page.StatusCode)
	assert.Equal(t, "/login", page.Header.Get("Location"))

	login := doJSON(t, client, http.MethodGet, env.server.URL+"/login", nil)
	assert.Equal(t, http.StatusOK, login.StatusCode)
}

func TestSignedInLoginPageRedirectsHome(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.login(t, testUser)

	resp := doJSON(t, client, http.MethodGet, env.server.URL+"/login", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestHashEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)

	resp := doJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/hash?password=secret", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.HashResult
	decodeEnvelope(t, resp, &result)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", result.Hash)
	assert.Equal(t, "USER_N_PASSWORD_HASH="+result.Hash, result.EnvFormat)

	missing := doJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/hash", nil)
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)

	prod := newTestEnv(t, func(cfg *config.Config) { cfg.Env = "production" })
	blocked := doJSON(t, prod.client(t), http.MethodGet, prod.server.URL+"/api/auth/hash?password=secret", nil)
	assert.Equal(t, http.StatusForbidden, blocked.StatusCode)
	assert.Equal(t, "Not available in production", decodeEnvelope(t, blocked, nil).Error)
}

func TestAuditRequiresAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	user := doJSON(t, env.login(t, "bob"), http.MethodGet, env.server.URL+"/api/audit", nil)
	assert.Equal(t, http.StatusForbidden, user.StatusCode)

	admin := doJSON(t, env.login(t, testUser), http.MethodGet, env.server.URL+"/api/audit", nil)
	assert.Equal(t, http.StatusNotFound, admin.StatusCode)
	assert.Equal(t, "audit log is not enabled", decodeEnvelope(t, admin, nil).Error)
}
