package handler

import (
	"net/http"

	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
)

type PriceRuleHandler struct {
	brands     *service.BrandService
	priceRules *service.PriceRuleService
	audit      *service.AuditService
}

func NewPriceRuleHandler(brands *service.BrandService, priceRules *service.PriceRuleService, audit *service.AuditService) *PriceRuleHandler {
	return &PriceRuleHandler{brands: brands, priceRules: priceRules, audit: audit}
}

func (h *PriceRuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.PriceRuleRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	rule, err := h.priceRules.Create(r.Context(), brand, payload)
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:   "price_rule.create",
		Actor:    actorFromRequest(r),
		BrandID:  brand.ID,
		Status:   auditStatus(err),
		Resource: resourceID(rule.ID),
		Detail:   map[string]any{"title": payload.Title, "value_type": payload.ValueType},
		Error:    errorText(err),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, rule, nil)
}

func (h *PriceRuleHandler) List(w http.ResponseWriter, r *http.Request) {
	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	rules, err := h.priceRules.List(r.Context(), brand)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, rules, nil)
}

func (h *PriceRuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	rawID := r.URL.Query().Get("id")
	_, err = h.priceRules.Delete(r.Context(), brand, rawID)
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:   "price_rule.delete",
		Actor:    actorFromRequest(r),
		BrandID:  brand.ID,
		Status:   auditStatus(err),
		Resource: rawID,
		Error:    errorText(err),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, nil)
}
