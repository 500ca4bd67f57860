package handler

import (
	"net/http"
	"strings"

	"coupon-generator/internal/access"
	"coupon-generator/internal/middleware"
	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	ip := middleware.ClientIPFromContext(r.Context())
	if ip == "" {
		ip = access.ClientIP(r)
	}

	actor := model.AuditActor{IP: ip}
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		actor.Username = identity.Username
		actor.Role = identity.Role
	}

	return actor
}

func activeBrandID(r *http.Request) string {
	cookie, err := r.Cookie(access.ActiveBrandCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// resolveBrand returns the brand the caller currently works on.
func resolveBrand(brands *service.BrandService, r *http.Request) (model.Brand, error) {
	return brands.Active(activeBrandID(r))
}

func auditStatus(err error) string {
	if err != nil {
		return service.AuditStatusFailure
	}
	return service.AuditStatusSuccess
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func resourceID(id model.ID) string {
	if id <= 0 {
		return ""
	}
	return id.String()
}

func joinErrors(messages []string) string {
	return strings.Join(messages, "; ")
}
