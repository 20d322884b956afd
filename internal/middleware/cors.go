package middleware

import (
	"net/http"
	"strings"
)

// The headers and methods this API actually accepts; the surface is GET/POST
// only, with locale and request-id hints allowed through for the frontend.
const (
	corsAllowHeaders = "Authorization, Content-Type, X-Locale, X-Request-ID"
	corsAllowMethods = "GET, POST, OPTIONS"
)

// CORS allows browser calls from the configured frontend origins and answers
// preflights without touching the handler chain below it.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allow[strings.TrimSpace(origin)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := allow[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
					w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
