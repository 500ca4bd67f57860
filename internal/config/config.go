package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"coupon-generator/internal/model"
)

const (
	MaxUsers  = 20
	MaxBrands = 10

	MinSessionSecretLength = 32
)

var defaultDevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3000",
}

type Config struct {
	Env string

	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	IPRestrictEnabled bool
	AllowedIPs        []string
	DevOrigins        []string

	RateLimitRPM     int
	AuthRateLimitRPM int

	ShopifyRetries int
	ShopifyTimeout time.Duration

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	LogLevel  string
	LogFormat string

	BrandAssetsDir string
	MetricsEnabled bool

	Users  []model.UserRecord
	Brands []model.Brand
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                     strings.ToLower(getEnv("APP_ENV", "development")),
		ServerPort:              getEnv("SERVER_PORT", "3000"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 0),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 0),
		SessionSecret:           strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionTTL:              getDuration("SESSION_TTL", 7*24*time.Hour),
		IPRestrictEnabled:       getBool("IP_RESTRICT_ENABLED", false),
		AllowedIPs:              splitCSV(os.Getenv("ALLOWED_IPS")),
		DevOrigins:              splitCSV(os.Getenv("DEV_ORIGINS")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		ShopifyRetries:          getInt("SHOPIFY_RETRIES", 0),
		ShopifyTimeout:          getDuration("SHOPIFY_TIMEOUT", 0),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 5)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 0)),
		LogLevel:                strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:               strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
		BrandAssetsDir:          getEnv("BRAND_ASSETS_DIR", "./public/brands"),
		MetricsEnabled:          getBool("METRICS_ENABLED", true),
		Users:                   LoadUsers(os.Getenv),
		Brands:                  LoadBrands(os.Getenv),
	}

	if len(cfg.DevOrigins) == 0 {
		cfg.DevOrigins = append([]string(nil), defaultDevOrigins...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", MinSessionSecretLength)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT cannot be negative")
	}

	if c.ShopifyRetries < 0 {
		return fmt.Errorf("SHOPIFY_RETRIES cannot be negative")
	}

	if c.IPRestrictEnabled && len(c.AllowedIPs) == 0 {
		return fmt.Errorf("ALLOWED_IPS is required when IP_RESTRICT_ENABLED is true")
	}

	if c.DatabaseURL != "" && c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}

	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be pretty or json")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
