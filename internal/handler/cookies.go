package handler

import (
	"net/http"
	"time"

	"coupon-generator/internal/access"
)

const activeBrandMaxAge = 365 * 24 * time.Hour

type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) session(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     access.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) clearSession() *http.Cookie {
	return &http.Cookie{
		Name:     access.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// activeBrand is readable by page scripts.
func (c CookieConfig) activeBrand(brandID string) *http.Cookie {
	return &http.Cookie{
		Name:     access.ActiveBrandCookie,
		Value:    brandID,
		Path:     "/",
		MaxAge:   int(activeBrandMaxAge.Seconds()),
		HttpOnly: false,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
