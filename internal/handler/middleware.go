package handler

import (
	"net/http"

	"bill-export-server/internal/domain"
)

// APIKeyMiddleware gates protected routes on a shared API key. When no key is
// configured the middleware is a pass-through, which keeps local development
// friction-free.
func APIKeyMiddleware(config domain.Config, logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expected := config.GetAPIKey()
			if expected == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeError(w, http.StatusUnauthorized, "API key required")
				return
			}
			if key != expected {
				logger.Warn("Rejected request with invalid API key", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
