package middleware

import (
	"net/http"

	"github.com/templui/galeri/internal/config"
	"github.com/templui/galeri/internal/ctxkeys"
)

// Config puts the sanitized configuration (no APP_KEY, DB or S3 credentials)
// into the request context for the CSRF and flash cookies.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), safe)))
		})
	}
}
