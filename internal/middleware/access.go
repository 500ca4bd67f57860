package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"coupon-generator/internal/access"
	"coupon-generator/internal/metrics"
)

// Decider evaluates a request. access.Gate implements it.
type Decider interface {
	Decide(r *http.Request) access.Decision
}

// Access applies the gate's decision for every request.
func Access(gate Decider, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := gate.Decide(r)
			m.GateDecision(string(decision.Action))

			for key, values := range decision.Header {
				for _, value := range values {
					w.Header().Add(key, value)
				}
			}

			switch decision.Action {
			case access.ActionBypass:
				next.ServeHTTP(w, r)
			case access.ActionDeny:
				if decision.Status == http.StatusForbidden {
					slog.Warn("request denied by IP allowlist", "client_ip", decision.ClientIP, "path", r.URL.Path)
				}
				writeJSONError(w, decision.Status, decision.Error)
			case access.ActionRedirect:
				http.Redirect(w, r, decision.Location, decision.Status)
			case access.ActionPreflight:
				w.WriteHeader(decision.Status)
			default:
				ctx := context.WithValue(r.Context(), clientIPContextKey, decision.ClientIP)
				if decision.Identity != nil {
					ctx = WithIdentity(ctx, *decision.Identity)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
