package handler

import (
	"net/http"
	"strconv"
	"strings"

	"coupon-generator/internal/model"
	"coupon-generator/internal/service"
	"coupon-generator/pkg/apierror"
)

type GenerateHandler struct {
	brands     *service.BrandService
	generation *service.GenerationService
	audit      *service.AuditService
}

func NewGenerateHandler(brands *service.BrandService, generation *service.GenerationService, audit *service.AuditService) *GenerateHandler {
	return &GenerateHandler{brands: brands, generation: generation, audit: audit}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var payload model.GenerateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	brand, err := resolveBrand(h.brands, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.generation.Generate(r.Context(), brand, payload)

	failure := result.FailureMessage()
	status := auditStatus(err)
	if err == nil && failure != "" {
		status = service.AuditStatusPartial
	}
	detail := map[string]any{"mode": payload.Mode, "codes": len(result.Codes)}
	if result.Batch != nil {
		detail["total_created"] = result.Batch.TotalCreated
	}
	h.audit.Log(r.Context(), model.AuditEntry{
		Action:   "generate",
		Actor:    actorFromRequest(r),
		BrandID:  brand.ID,
		Status:   status,
		Resource: resourceID(result.PriceRule.ID),
		Detail:   detail,
		Error:    firstNonEmpty(errorText(err), failure),
	})

	if err != nil {
		writeError(w, err)
		return
	}

	if failure != "" {
		writePartial(w, result, failure)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *GenerateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var prefix *string
	if query.Has("prefix") {
		value := query.Get("prefix")
		prefix = &value
	}

	length, err := optionalInt(query.Get("length"), "length")
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := optionalInt(query.Get("count"), "count")
	if err != nil {
		writeError(w, err)
		return
	}

	preview, err := h.generation.Preview(prefix, length, count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, preview, nil)
}

func optionalInt(raw string, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.Validation(name + " must be an integer")
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
