package handler

import (
	"net/http"

	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
)

type DiscountHandler struct {
	brands    *service.BrandService
	discounts *service.DiscountService
	audit     *service.AuditService
}

func NewDiscountHandler(brands *service.BrandService, discounts *service.DiscountService, audit *service.AuditService) *DiscountHandler {
	return &DiscountHandler{brands: brands, discounts: discounts, audit: audit}
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.DiscountCodeRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	code, err := h.discounts.Create(r.Context(), brand, payload)
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:   "discount_code.create",
		Actor:    actorFromRequest(r),
		BrandID:  brand.ID,
		Status:   auditStatus(err),
		Resource: resourceID(payload.PriceRuleID),
		Detail:   map[string]any{"code": payload.Code},
		Error:    errorText(err),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, code, nil)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	codes, err := h.discounts.List(r.Context(), brand, r.URL.Query().Get("price_rule_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, codes, nil)
}

func (h *DiscountHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var payload model.BatchRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.discounts.CreateBatch(r.Context(), brand, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	status := service.AuditStatusSuccess
	if result.Failed() {
		status = service.AuditStatusPartial
		if result.TotalCreated == 0 {
			status = service.AuditStatusFailure
		}
	}
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:   "discount_code.batch",
		Actor:    actorFromRequest(r),
		BrandID:  brand.ID,
		Status:   status,
		Resource: resourceID(payload.PriceRuleID),
		Detail:   map[string]any{"total_requested": result.TotalRequested, "total_created": result.TotalCreated},
		Error:    joinErrors(result.Errors),
	})

	if result.Failed() {
		writePartial(w, result, joinErrors(result.Errors))
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *DiscountHandler) BatchJob(w http.ResponseWriter, r *http.Request) {
	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	job, err := h.discounts.BatchJob(r.Context(), brand, query.Get("price_rule_id"), query.Get("batch_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, job, nil)
}
