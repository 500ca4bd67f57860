package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds handler run time. A non-positive timeout disables it so
// upstream calls are limited only by the client connection.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	message := `{"success":false,"error":"Request timed out"}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
