package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"coupon-generator/internal/model"
)

// LookupFunc resolves an environment key. os.Getenv satisfies it.
type LookupFunc func(key string) string

// LoadUsers reads USER_1 .. USER_n where n is USER_COUNT capped at MaxUsers.
// Records without a username or password hash are skipped.
func LoadUsers(lookup LookupFunc) []model.UserRecord {
	count := recordCount(lookup, "USER_COUNT", MaxUsers)
	users := make([]model.UserRecord, 0, count)

	for i := 1; i <= count; i++ {
		prefix := fmt.Sprintf("USER_%d_", i)
		username := strings.TrimSpace(lookup(prefix + "USERNAME"))
		hash := strings.TrimSpace(lookup(prefix + "PASSWORD_HASH"))
		if username == "" || hash == "" {
			slog.Warn("skipping incomplete user record", "index", i)
			continue
		}

		name := strings.TrimSpace(lookup(prefix + "NAME"))
		if name == "" {
			name = username
		}

		users = append(users, model.UserRecord{
			Username:     username,
			Name:         name,
			Role:         model.NormalizeRole(lookup(prefix + "ROLE")),
			PasswordHash: hash,
		})
	}

	return users
}

// LoadBrands reads BRAND_1 .. BRAND_n where n is BRAND_COUNT capped at
// MaxBrands. A brand needs a name, an Admin API URL and an access token.
func LoadBrands(lookup LookupFunc) []model.Brand {
	count := recordCount(lookup, "BRAND_COUNT", MaxBrands)
	brands := make([]model.Brand, 0, count)

	for i := 1; i <= count; i++ {
		prefix := fmt.Sprintf("BRAND_%d_", i)
		get := func(suffix string) string {
			return strings.TrimSpace(lookup(prefix + suffix))
		}

		brand := model.Brand{
			ID:            fmt.Sprintf("brand_%d", i),
			Name:          get("NAME"),
			Domain:        get("SHOPIFY_DOMAIN"),
			AdminAPIURL:   strings.TrimRight(get("SHOPIFY_ADMIN_API_URL"), "/"),
			AccessToken:   get("SHOPIFY_ACCESS_TOKEN"),
			APIKey:        get("SHOPIFY_API_KEY"),
			APISecret:     get("SHOPIFY_API_SECRET"),
			GraphQLURL:    get("SHOPIFY_ADMIN_API_URL_GRAPHQL"),
			AllowedOrigin: get("ALLOWED_ORIGIN"),
			Logo:          get("LOGO"),
			Color:         get("COLOR"),
		}

		if brand.Name == "" || brand.AdminAPIURL == "" || brand.AccessToken == "" {
			slog.Warn("skipping incomplete brand record", "index", i, "brand_id", brand.ID)
			continue
		}

		brands = append(brands, brand)
	}

	return brands
}

func recordCount(lookup LookupFunc, key string, limit int) int {
	raw := strings.TrimSpace(lookup(key))
	if raw == "" {
		return 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid record count", "key", key, "value", raw)
		return 0
	}

	if n > limit {
		slog.Warn("record count capped", "key", key, "value", n, "limit", limit)
		return limit
	}

	return n
}
