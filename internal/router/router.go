package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coupon-generator/internal/config"
	"coupon-generator/internal/handler"
	"coupon-generator/internal/metrics"
	"coupon-generator/internal/middleware"
	"coupon-generator/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Brand     *handler.BrandHandler
	PriceRule *handler.PriceRuleHandler
	Discount  *handler.DiscountHandler
	Generate  *handler.GenerateHandler
	Audit     *handler.AuditHandler
	Docs      *handler.DocsHandler
	Health    *handler.HealthHandler
	Page      *handler.PageHandler
}

type Assets struct {
	Static    fs.FS
	BrandLogo http.FileSystem
}

func New(cfg *config.Config, gate middleware.Decider, m *metrics.Metrics, h Handlers, assets Assets) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging(m))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Access(gate, m))

	r.Get("/healthz", h.Health.Health)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", m.Handler())
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static))))
	if assets.BrandLogo != nil {
		r.Handle("/brands/*", http.StripPrefix("/brands/", http.FileServer(assets.BrandLogo)))
	}

	r.Get("/login", h.Page.Login)
	r.Get("/", h.Page.Index)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/auth", h.Auth.Login)
		api.Delete("/auth", h.Auth.Logout)
		api.Get("/auth/me", h.Auth.Me)
		api.Get("/auth/hash", h.Auth.Hash)

		api.Get("/brands", h.Brand.List)
		api.Post("/brands", h.Brand.Switch)
		api.Get("/brands/status", h.Brand.Status)

		api.Get("/price-rules", h.PriceRule.List)
		api.Post("/price-rules", h.PriceRule.Create)
		api.Delete("/price-rules", h.PriceRule.Delete)

		api.Get("/discount-codes", h.Discount.List)
		api.Post("/discount-codes", h.Discount.Create)
		api.Get("/discount-codes/batch", h.Discount.BatchJob)
		api.Post("/discount-codes/batch", h.Discount.CreateBatch)

		api.Post("/generate", h.Generate.Generate)
		api.Get("/codes/preview", h.Generate.Preview)

		api.With(middleware.RequireRoles(model.RoleAdmin)).Get("/audit", h.Audit.List)

		api.Get("/docs", h.Docs.SwaggerUI)
		api.Get("/docs/openapi.yaml", h.Docs.OpenAPI)
	})

	return r
}
