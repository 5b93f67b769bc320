package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"atelier/pkg/requestcontext"
)

// ClientMetadata extracts client IP address, User-Agent and browser from the request
// and adds them to the context. It should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), userAgent, BrowserFromUserAgent(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BrowserFromUserAgent returns "<name> <version>", or "" for an empty header.
func BrowserFromUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	name, version := useragent.New(raw).Browser()
	return strings.TrimSpace(name + " " + version)
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	// RemoteAddr is "ip:port", or "[::1]:port" for IPv6
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}
	return "unknown"
}
