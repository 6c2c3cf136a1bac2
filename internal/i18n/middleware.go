package i18n

import "net/http"

// Middleware attaches a localizer for the server's language to every
// request. The language is fixed per process; per-request negotiation is
// handled by running one instance per language behind a path prefix.
func Middleware(lang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		loc := NewLocalizer(lang)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), loc)))
		})
	}
}
