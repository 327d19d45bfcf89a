package middleware

import "net/http"

// CORS header values. Any origin may read the API; it serves public data only.
const (
	corsAllowMethods = "OPTIONS, GET, POST, PATCH, PUT, DELETE"
	corsAllowHeaders = "Content-Type"
)

// CORSConfig configures CORS.
type CORSConfig struct {
	// ExposeHeaders is sent as Access-Control-Expose-Headers.
	ExposeHeaders string
}

// CORS answers every OPTIONS request as a preflight with 204 and, for other
// requests carrying an Origin header, allows any origin to read the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Origin", "*")
				h.Set("Access-Control-Expose-Headers", cfg.ExposeHeaders)
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if r.Header.Get("Origin") != "" {
				h.Set("Access-Control-Allow-Origin", "*")
				h.Set("Access-Control-Expose-Headers", cfg.ExposeHeaders)
			}
			next.ServeHTTP(w, r)
		})
	}
}
