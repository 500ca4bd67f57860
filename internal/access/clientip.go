package access

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller address in trust order: the CDN header, the
// first X-Forwarded-For hop, X-Real-IP, then the socket peer.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}

// IPAllowed matches ip against entries. An entry ending in "." admits every
// address that starts with it, e.g. "10.0." admits 10.0.0.0/16.
func IPAllowed(ip string, entries []string) bool {
	if ip == "" {
		return false
	}

	for _, entry := range entries {
		if ip == entry {
			return true
		}
		if strings.HasSuffix(entry, ".") && strings.HasPrefix(ip, entry) {
			return true
		}
	}

	return false
}
