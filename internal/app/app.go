package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coupon-generator/internal/access"
	"coupon-generator/internal/config"
	"coupon-generator/internal/database"
	"coupon-generator/internal/handler"
	"coupon-generator/internal/metrics"
	"coupon-generator/internal/repository"
	"coupon-generator/internal/router"
	"coupon-generator/internal/service"
	"coupon-generator/internal/shopify"
	"coupon-generator/internal/web"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

// Dependencies are the pieces built outside the HTTP stack. Zero values are
// valid: no audit store, no health pinger, the default Shopify transport.
type Dependencies struct {
	AuditStore       service.AuditStore
	Health           interface{ Health(context.Context) error }
	ShopifyTransport http.RoundTripper
}

func New(cfg *config.Config) (*App, error) {
	var deps Dependencies
	var cleanup []func()

	if cfg.DatabaseURL != "" {
		slog.Info("connecting to PostgreSQL for the audit log")
		db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}

		deps.AuditStore = repository.NewAuditRepository(db.Pool)
		deps.Health = db
		cleanup = append(cleanup, db.Close)
	} else {
		slog.Warn("DATABASE_URL not set; audit entries are logged only")
	}

	appHandler, err := NewHandler(cfg, deps)
	if err != nil {
		for _, fn := range cleanup {
			fn()
		}
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appHandler,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanup}, nil
}

// NewHandler wires services, handlers and middleware into the root handler.
func NewHandler(cfg *config.Config, deps Dependencies) (http.Handler, error) {
	if len(cfg.Brands) == 0 {
		slog.Warn("no brands configured; Shopify endpoints will fail")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	sessionService, err := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session service: %w", err)
	}
	authService := service.NewAuthService(cfg.Users)
	auditService := service.NewAuditService(deps.AuditStore)

	gateway := shopify.NewClient(shopify.Options{
		Retries:   cfg.ShopifyRetries,
		Timeout:   cfg.ShopifyTimeout,
		Transport: deps.ShopifyTransport,
		Metrics:   m,
	})
	brandService := service.NewBrandService(cfg.Brands, gateway)
	priceRuleService := service.NewPriceRuleService(gateway)
	discountService := service.NewDiscountService(gateway, m)
	generationService := service.NewGenerationService(priceRuleService, discountService)

	gate := access.NewGate(access.Policy{
		IPRestrictEnabled: cfg.IPRestrictEnabled,
		AllowedIPs:        cfg.AllowedIPs,
		DevOrigins:        cfg.DevOrigins,
		Brands:            cfg.Brands,
	}, sessionService)

	cookies := handler.CookieConfig{Secure: cfg.IsProduction()}

	var brandLogos http.FileSystem
	if dir := strings.TrimSpace(cfg.BrandAssetsDir); dir != "" {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			brandLogos = http.Dir(dir)
		} else {
			slog.Warn("brand assets directory not found; /brands/ is disabled", "dir", dir)
		}
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"users", authService.UserCount(),
		"brands", len(cfg.Brands),
		"ip_restrict", cfg.IPRestrictEnabled,
		"audit_store", auditService.Enabled(),
		"metrics", cfg.MetricsEnabled,
	)

	return router.New(cfg, gate, m, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessionService, auditService, cookies, cfg.IsProduction()),
		Brand:     handler.NewBrandHandler(brandService, auditService, cookies),
		PriceRule: handler.NewPriceRuleHandler(brandService, priceRuleService, auditService),
		Discount:  handler.NewDiscountHandler(brandService, discountService, auditService),
		Generate:  handler.NewGenerateHandler(brandService, generationService, auditService),
		Audit:     handler.NewAuditHandler(auditService),
		Docs:      handler.NewDocsHandler(web.OpenAPISpec),
		Health:    handler.NewHealthHandler(deps.Health, len(cfg.Brands)),
		Page:      handler.NewPageHandler(web.Pages()),
	}, router.Assets{
		Static:    web.Static(),
		BrandLogo: brandLogos,
	}), nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
