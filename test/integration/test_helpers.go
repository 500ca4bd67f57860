//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coupon-generator/internal/app"
	"coupon-generator/internal/config"
	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
)

const (
	testUser     = "alice"
	testPassword = "correct horse battery"
	testToken    = "shpat_integration"
	apiPrefix    = "/admin/api/2024-01"
)

// fakeShopify is a minimal Admin API: it stores price rules and echoes
// discount codes. failBatch holds 1-based batch call numbers that fail.
type fakeShopify struct {
	mu            sync.Mutex
	server        *httptest.Server
	priceRules    []map[string]any
	batchCalls    int
	batchSizes    []int
	failBatch     map[int]bool
	jobOnlyBatch  bool
	lastPriceRule map[string]any
}

func newFakeShopify(t *testing.T) *fakeShopify {
	t.Helper()

	f := &fakeShopify{failBatch: map[int]bool{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeShopify) adminURL() string {
	return f.server.URL + apiPrefix
}

func (f *fakeShopify) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Shopify-Access-Token") != testToken {
		writeUpstream(w, http.StatusUnauthorized, map[string]any{"errors": "[API] Invalid API key or access token"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	switch {
	case r.Method == http.MethodPost && path == "/price_rules.json":
		var body struct {
			PriceRule map[string]any `json:"price_rule"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body.PriceRule["id"] = 1000 + len(f.priceRules) + 1
		f.priceRules = append(f.priceRules, body.PriceRule)
		f.lastPriceRule = body.PriceRule
		writeUpstream(w, http.StatusCreated, map[string]any{"price_rule": body.PriceRule})

	case r.Method == http.MethodGet && path == "/price_rules.json":
		writeUpstream(w, http.StatusOK, map[string]any{"price_rules": f.priceRules})

	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/price_rules/"):
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/batch.json"):
		f.batchCalls++
		var body struct {
			DiscountCodes []map[string]any `json:"discount_codes"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.batchSizes = append(f.batchSizes, len(body.DiscountCodes))

		if f.failBatch[f.batchCalls] {
			writeUpstream(w, http.StatusUnprocessableEntity, map[string]any{"errors": "Discount codes limit exceeded"})
			return
		}
		if f.jobOnlyBatch {
			writeUpstream(w, http.StatusCreated, map[string]any{"discount_code_creation": map[string]any{
				"id": 77, "status": "queued", "codes_count": len(body.DiscountCodes),
			}})
			return
		}
		writeUpstream(w, http.StatusCreated, map[string]any{"discount_codes": body.DiscountCodes})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/discount_codes.json"):
		var body struct {
			DiscountCode map[string]any `json:"discount_code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body.DiscountCode["id"] = 5001
		writeUpstream(w, http.StatusCreated, map[string]any{"discount_code": body.DiscountCode})

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/discount_codes.json"):
		writeUpstream(w, http.StatusOK, map[string]any{"discount_codes": []map[string]any{{"id": 5001, "code": "SAVE-AAAA"}}})

	case r.Method == http.MethodPost && path == "/graphql.json":
		writeUpstream(w, http.StatusOK, map[string]any{"data": map[string]any{
			"shop": map[string]any{"name": "Integration", "myshopifyDomain": "integration.myshopify.com", "currencyCode": "USD"},
		}})

	default:
		writeUpstream(w, http.StatusNotFound, map[string]any{"errors": "Not Found"})
	}
}

func writeUpstream(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type testEnv struct {
	server  *httptest.Server
	shopify *fakeShopify
	cfg     *config.Config
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	upstream := newFakeShopify(t)
	hash, err := service.HashPassword(testPassword, service.SchemeSHA256)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:              "development",
		ServerPort:       "0",
		SessionSecret:    strings.Repeat("k", config.MinSessionSecretLength),
		SessionTTL:       7 * 24 * time.Hour,
		DevOrigins:       []string{"http://localhost:3000"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
		LogFormat:        "pretty",
		MetricsEnabled:   true,
		Users: []model.UserRecord{
			{Username: testUser, Name: "Alice", Role: model.RoleAdmin, PasswordHash: hash},
			{Username: "bob", Name: "Bob", Role: model.RoleUser, PasswordHash: hash},
		},
		Brands: []model.Brand{
			{
				ID:            "brand_1",
				Name:          "Integration",
				Domain:        "integration.example",
				AdminAPIURL:   upstream.adminURL(),
				AccessToken:   testToken,
				GraphQLURL:    upstream.adminURL() + "/graphql.json",
				AllowedOrigin: "https://coupons.integration.example",
			},
			{
				ID:          "brand_2",
				Name:        "Second",
				AdminAPIURL: upstream.adminURL(),
				AccessToken: testToken,
			},
		},
	}
	for _, fn := range mutate {
		fn(cfg)
	}

	handler, err := app.NewHandler(cfg, app.Dependencies{})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testEnv{server: server, shopify: upstream, cfg: cfg}
}

// client returns an HTTP client with a cookie jar that does not follow
// redirects.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) login(t *testing.T, username string) *http.Client {
	t.Helper()

	client := e.client(t)
	resp := doJSON(t, client, http.MethodPost, e.server.URL+"/api/auth", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return client
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, client *http.Client, method string, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data), fmt.Sprintf("data: %s", env.Data))
	}
	return env
}
