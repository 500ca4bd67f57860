package handler

import (
	"net/http"
	"strings"

	"coupon-generator/internal/middleware"
	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
	"coupon-generator/pkg/apierror"
)

type AuthHandler struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	audit      *service.AuditService
	cookies    CookieConfig
	production bool
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, audit *service.AuditService, cookies CookieConfig, production bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, audit: audit, cookies: cookies, production: production}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		writeError(w, apierror.Validation("Username and password are required"))
		return
	}

	actor := actorFromRequest(r)
	actor.Username = username

	identity, ok := h.auth.Authenticate(username, payload.Password)
	if !ok {
		h.audit.Log(r.Context(), model.AuditEntry{
			Action: "auth.login",
			Actor:  actor,
			Status: service.AuditStatusFailure,
			Error:  model.ErrInvalidCredentials.Error(),
		})
		writeError(w, model.ErrInvalidCredentials)
		return
	}

	token, _, err := h.sessions.Issue(identity)
	if err != nil {
		writeError(w, apierror.Internal("Login failed", err))
		return
	}

	http.SetCookie(w, h.cookies.session(token, h.sessions.TTL()))

	actor.Username = identity.Username
	actor.Role = identity.Role
	h.audit.Log(r.Context(), model.AuditEntry{Action: "auth.login", Actor: actor, Status: service.AuditStatusSuccess})

	writeSuccess(w, http.StatusOK, identity, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.clearSession())

	if _, ok := middleware.IdentityFromContext(r.Context()); ok {
		h.audit.Log(r.Context(), model.AuditEntry{Action: "auth.logout", Actor: actorFromRequest(r), Status: service.AuditStatusSuccess})
	}

	writeSuccess(w, http.StatusOK, nil, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Not authenticated"))
		return
	}

	writeSuccess(w, http.StatusOK, identity, nil)
}

// Hash is a provisioning helper for USER_n_PASSWORD_HASH values. It is
// disabled in production.
func (h *AuthHandler) Hash(w http.ResponseWriter, r *http.Request) {
	if h.production {
		writeError(w, apierror.Forbidden("Not available in production"))
		return
	}

	password := r.URL.Query().Get("password")
	if password == "" {
		writeError(w, apierror.Validation("Provide ?password=yourpassword"))
		return
	}

	scheme := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scheme")))
	if scheme == "" {
		scheme = service.SchemeSHA256
	}

	hash, err := service.HashPassword(password, scheme)
	if err != nil {
		writeError(w, apierror.Validation("scheme must be sha256, bcrypt or argon2id"))
		return
	}

	writeSuccess(w, http.StatusOK, model.HashResult{
		Password:  password,
		Hash:      hash,
		Scheme:    scheme,
		EnvFormat: "USER_N_PASSWORD_HASH=" + hash,
	}, nil)
}
