package handler

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db     pinger
	brands int
}

// NewHealthHandler takes a nil db when the audit store is not configured.
func NewHealthHandler(db pinger, brands int) *HealthHandler {
	return &HealthHandler{db: db, brands: brands}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"status": "ok", "brands": h.brands}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Health(ctx); err != nil {
			data["status"] = "degraded"
			data["database"] = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, apiResponse(false, data, "database unreachable"))
			return
		}
		data["database"] = "ok"
	}

	writeSuccess(w, http.StatusOK, data, nil)
}
