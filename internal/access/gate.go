package access

import (
	"net/http"
	"strings"

	"coupon-generator/internal/model"
)

const (
	SessionCookie     = "session"
	ActiveBrandCookie = "active_brand"
)

type Action string

const (
	// ActionPass lets the request through with Header applied.
	ActionPass Action = "pass"
	// ActionBypass lets static assets through untouched.
	ActionBypass    Action = "bypass"
	ActionDeny      Action = "deny"
	ActionRedirect  Action = "redirect"
	ActionPreflight Action = "preflight"
)

// Decision is the outcome of evaluating one request. The transport layer
// applies it; the gate itself never writes a response.
type Decision struct {
	Action   Action
	Status   int
	Error    string
	Location string
	Header   http.Header
	Identity *model.Identity
	ClientIP string
}

type SessionVerifier interface {
	Verify(token string) (model.Identity, bool)
}

type Policy struct {
	IPRestrictEnabled bool
	AllowedIPs        []string
	DevOrigins        []string
	Brands            []model.Brand
}

var assetPrefixes = []string{"/static/", "/brands/"}

var publicPaths = []string{"/login", "/api/auth", "/api/auth/hash", "/healthz", "/metrics"}

type Gate struct {
	policy   Policy
	sessions SessionVerifier
	origins  map[string]struct{}
}

func NewGate(policy Policy, sessions SessionVerifier) *Gate {
	origins := map[string]struct{}{}
	for _, brand := range policy.Brands {
		if brand.AllowedOrigin != "" {
			origins[brand.AllowedOrigin] = struct{}{}
		}
	}
	for _, origin := range policy.DevOrigins {
		origins[origin] = struct{}{}
	}

	return &Gate{policy: policy, sessions: sessions, origins: origins}
}

// Decide runs the access checks in order: asset bypass, IP admission, CORS
// preflight, authentication, the signed-in /login redirect, then CORS
// headers for API paths.
func (g *Gate) Decide(r *http.Request) Decision {
	path := r.URL.Path

	if isAsset(path) {
		return Decision{Action: ActionBypass}
	}

	ip := ClientIP(r)
	if g.policy.IPRestrictEnabled && len(g.policy.AllowedIPs) > 0 && !IPAllowed(ip, g.policy.AllowedIPs) {
		return Decision{Action: ActionDeny, Status: http.StatusForbidden, Error: "Access denied", ClientIP: ip}
	}

	api := isAPI(path)
	var header http.Header
	if api {
		header = g.corsHeader(r)
		// Browsers never attach cookies to a preflight, so it is answered
		// before the session check.
		if r.Method == http.MethodOptions {
			return Decision{Action: ActionPreflight, Status: http.StatusNoContent, Header: header, ClientIP: ip}
		}
	}

	identity := g.identity(r)

	if identity == nil && !isPublic(path) {
		if api {
			return Decision{Action: ActionDeny, Status: http.StatusUnauthorized, Error: "Unauthorized", Header: header, ClientIP: ip}
		}
		return Decision{Action: ActionRedirect, Status: http.StatusTemporaryRedirect, Location: "/login", ClientIP: ip}
	}

	if path == "/login" && identity != nil {
		return Decision{Action: ActionRedirect, Status: http.StatusTemporaryRedirect, Location: "/", Identity: identity, ClientIP: ip}
	}

	return Decision{Action: ActionPass, Header: header, Identity: identity, ClientIP: ip}
}

func (g *Gate) identity(r *http.Request) *model.Identity {
	if g.sessions == nil {
		return nil
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	identity, ok := g.sessions.Verify(cookie.Value)
	if !ok {
		return nil
	}
	return &identity
}

func (g *Gate) corsHeader(r *http.Request) http.Header {
	header := http.Header{}

	origin := r.Header.Get("Origin")
	if _, ok := g.origins[origin]; ok && origin != "" {
		header.Set("Access-Control-Allow-Origin", origin)
		header.Add("Vary", "Origin")
	} else if fallback := g.fallbackOrigin(r); fallback != "" {
		header.Set("Access-Control-Allow-Origin", fallback)
	}

	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	header.Set("Access-Control-Allow-Credentials", "true")
	header.Set("Access-Control-Max-Age", "86400")

	return header
}

// fallbackOrigin is the active brand's origin, else the first brand's, else
// the first development origin.
func (g *Gate) fallbackOrigin(r *http.Request) string {
	if cookie, err := r.Cookie(ActiveBrandCookie); err == nil {
		for _, brand := range g.policy.Brands {
			if brand.ID == cookie.Value && brand.AllowedOrigin != "" {
				return brand.AllowedOrigin
			}
		}
	}

	if len(g.policy.Brands) > 0 && g.policy.Brands[0].AllowedOrigin != "" {
		return g.policy.Brands[0].AllowedOrigin
	}

	if len(g.policy.DevOrigins) > 0 {
		return g.policy.DevOrigins[0]
	}
	return ""
}

func isAsset(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// isPublic treats each public path as covering its own subtree, so
// /api/auth/me is reachable without a session and answers 401 itself.
func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
