package handler

import (
	"net/http"

	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
)

type BrandHandler struct {
	brands  *service.BrandService
	audit   *service.AuditService
	cookies CookieConfig
}

func NewBrandHandler(brands *service.BrandService, audit *service.AuditService, cookies CookieConfig) *BrandHandler {
	return &BrandHandler{brands: brands, audit: audit, cookies: cookies}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.brands.List(activeBrandID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, list, nil)
}

func (h *BrandHandler) Switch(w http.ResponseWriter, r *http.Request) {
	var payload model.SwitchBrandRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	active, err := h.brands.Switch(payload.BrandID)
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:  "brand.switch",
		Actor:   actorFromRequest(r),
		BrandID: payload.BrandID,
		Status:  auditStatus(err),
		Error:   errorText(err),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.cookies.activeBrand(active.ActiveBrandID))
	writeSuccess(w, http.StatusOK, active, nil)
}

func (h *BrandHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.brands.Status(r.Context(), activeBrandID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, status, nil)
}
