package http

import (
	"net/http"
	"strings"

	"github.com/redmonkez12/offiswap/internal/auth"
)

const swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// SecurityHeaders sets browser hardening headers. Responses to credential
// endpoints and to token-bearing requests are marked uncacheable.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			h.Set("Content-Security-Policy", swaggerCSP)
		} else {
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		if strings.HasPrefix(r.URL.Path, "/api/auth/") || r.Header.Get(auth.TokenHeader) != "" {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
		}

		next.ServeHTTP(w, r)
	})
}
