package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coupon-generator/internal/access"
	"coupon-generator/internal/middleware"
	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
	"coupon-generator/internal/shopify"
	"coupon-generator/pkg/apierror"
)

var (
	brandOne = model.Brand{ID: "brand_1", Name: "One", Domain: "one.example", AdminAPIURL: "https://one.myshopify.com/admin/api/2024-01", AccessToken: "t1"}
	brandTwo = model.Brand{ID: "brand_2", Name: "Two", Domain: "two.example", AdminAPIURL: "https://two.myshopify.com/admin/api/2024-01", AccessToken: "t2"}
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, data any) model.APIResponse {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return model.APIResponse{Success: raw.Success, Error: raw.Error}
}

func jsonRequest(method string, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withIdentity(req *http.Request, identity model.Identity) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apierror.Validation("bad input"), http.StatusBadRequest, "bad input"},
		{"upstream keeps message", apierror.Upstream("Shopify API error: 502 Bad Gateway", nil), http.StatusInternalServerError, "Shopify API error: 502 Bad Gateway"},
		{"rate limited", apierror.RateLimited("slow down"), http.StatusTooManyRequests, "slow down"},
		{"credentials sentinel", model.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"unknown error is hidden", errors.New("pq: secret detail"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeBody(t, rec, nil)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var dst model.LoginRequest

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	err := decodeJSON(httptest.NewRecorder(), req, &dst)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err = decodeJSON(httptest.NewRecorder(), req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request body is required")
}

func newAuthHandler(t *testing.T, production bool) *AuthHandler {
	t.Helper()

	sessions, err := service.NewSessionService(strings.Repeat("x", 32), 7*24*time.Hour)
	require.NoError(t, err)

	hash, err := service.HashPassword("pw", service.SchemeSHA256)
	require.NoError(t, err)

	auth := service.NewAuthService([]model.UserRecord{{Username: "alice", Name: "Alice", Role: model.RoleAdmin, PasswordHash: hash}})
	return NewAuthHandler(auth, sessions, service.NewAuditService(nil), CookieConfig{Secure: production}, production)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t, true)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(http.MethodPost, "/api/auth", model.LoginRequest{Username: "alice", Password: "pw"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var identity model.Identity
	decodeBody(t, rec, &identity)
	assert.Equal(t, "Alice", identity.Name)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, access.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(http.MethodPost, "/api/auth", model.LoginRequest{Username: "alice", Password: "wrong"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t, false)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodDelete, "/api/auth", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)

	rec = httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decodeBody(t, rec, nil).Error)

	rec = httptest.NewRecorder()
	h.Me(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), model.Identity{Username: "alice", Role: model.RoleAdmin}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Hash(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newAuthHandler(t, false).Hash(rec, httptest.NewRequest(http.MethodGet, "/api/auth/hash?password=pw&scheme=bcrypt", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.HashResult
	decodeBody(t, rec, &result)
	assert.Equal(t, service.SchemeBcrypt, result.Scheme)
	assert.True(t, service.VerifyPassword("pw", result.Hash))

	rec = httptest.NewRecorder()
	newAuthHandler(t, false).Hash(rec, httptest.NewRequest(http.MethodGet, "/api/auth/hash?password=pw&scheme=md5", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	newAuthHandler(t, true).Hash(rec, httptest.NewRequest(http.MethodGet, "/api/auth/hash?password=pw", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBrandHandler_Switch(t *testing.T) {
	t.Parallel()

	h := NewBrandHandler(service.NewBrandService([]model.Brand{brandOne, brandTwo}, new(shopify.MockGateway)), service.NewAuditService(nil), CookieConfig{})

	rec := httptest.NewRecorder()
	h.Switch(rec, jsonRequest(http.MethodPost, "/api/brands", model.SwitchBrandRequest{BrandID: "brand_2"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var active model.ActiveBrand
	decodeBody(t, rec, &active)
	assert.Equal(t, model.ActiveBrand{ActiveBrandID: "brand_2", Name: "Two", Domain: "two.example"}, active)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, access.ActiveBrandCookie, cookies[0].Name)
	assert.False(t, cookies[0].HttpOnly)
	assert.Equal(t, 365*24*60*60, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	h.Switch(rec, jsonRequest(http.MethodPost, "/api/brands", model.SwitchBrandRequest{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "brandId is required", decodeBody(t, rec, nil).Error)
}

func TestDiscountHandler_BatchUsesActiveBrand(t *testing.T) {
	t.Parallel()

	gateway := new(shopify.MockGateway)
	gateway.On("CreateDiscountCodeBatch", mock.Anything, brandTwo, model.ID(9), []string{"A", "B"}).
		Return(model.BatchChunkResult{}, apierror.Upstream("Shopify API error: 422 Unprocessable Entity", nil)).Once()

	h := NewDiscountHandler(
		service.NewBrandService([]model.Brand{brandOne, brandTwo}, gateway),
		service.NewDiscountService(gateway, nil),
		service.NewAuditService(nil),
	)

	req := jsonRequest(http.MethodPost, "/api/discount-codes/batch", map[string]any{"price_rule_id": "9", "codes": []string{"A", "B"}})
	req.AddCookie(&http.Cookie{Name: access.ActiveBrandCookie, Value: "brand_2"})

	rec := httptest.NewRecorder()
	h.CreateBatch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result model.BatchResult
	body := decodeBody(t, rec, &result)
	assert.False(t, body.Success)
	assert.Equal(t, "Batch 1: Shopify API error: 422 Unprocessable Entity", body.Error)
	assert.Equal(t, 0, result.TotalCreated)
	assert.Equal(t, 2, result.TotalRequested)
	gateway.AssertExpectations(t)
}

func TestPriceRuleHandler_UpstreamErrorSurfaces(t *testing.T) {
	t.Parallel()

	gateway := new(shopify.MockGateway)
	gateway.On("ListPriceRules", mock.Anything, brandOne).Return(nil, apierror.Upstream("[API] Invalid API key or access token", nil)).Once()

	h := NewPriceRuleHandler(service.NewBrandService([]model.Brand{brandOne}, gateway), service.NewPriceRuleService(gateway), service.NewAuditService(nil))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/price-rules", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "[API] Invalid API key or access token", decodeBody(t, rec, nil).Error)
}

func TestGenerateHandler_Preview(t *testing.T) {
	t.Parallel()

	gateway := new(shopify.MockGateway)
	h := NewGenerateHandler(
		service.NewBrandService([]model.Brand{brandOne}, gateway),
		service.NewGenerationService(service.NewPriceRuleService(gateway), service.NewDiscountService(gateway, nil)),
		service.NewAuditService(nil),
	)

	rec := httptest.NewRecorder()
	h.Preview(rec, httptest.NewRequest(http.MethodGet, "/api/codes/preview?prefix=spring&length=6&count=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var preview model.CodePreview
	decodeBody(t, rec, &preview)
	require.Len(t, preview.Codes, 3)
	for _, code := range preview.Codes {
		assert.True(t, strings.HasPrefix(code, "SPRING-"))
		assert.Len(t, code, len("SPRING-")+6)
	}

	rec = httptest.NewRecorder()
	h.Preview(rec, httptest.NewRequest(http.MethodGet, "/api/codes/preview?length=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
