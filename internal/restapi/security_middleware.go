package restapi

import (
	"net/http"
	"strings"
)

const apiContentPolicy = "default-src 'none'; frame-ancestors 'none';"

// debugContentPolicy covers the server-rendered debug pages and their inline stylesheet.
const debugContentPolicy = "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none';"

var staticSecurityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"X-XSS-Protection", "1; mode=block"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// corsHeaders are sent to cross-origin callers. Dashboards read the
// rate-limit and request-id headers, so they are exposed.
var corsHeaders = [][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS"},
	{"Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key"},
	{"Access-Control-Expose-Headers", "Retry-After, X-RateLimit-Limit, X-Request-Id"},
	{"Access-Control-Max-Age", "86400"},
}

// securityHeaders adds security and CORS headers and answers preflight requests.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range staticSecurityHeaders {
			h.Set(kv[0], kv[1])
		}

		if strings.HasPrefix(r.URL.Path, "/debug/") {
			h.Set("Content-Security-Policy", debugContentPolicy)
		} else {
			h.Set("Content-Security-Policy", apiContentPolicy)
		}

		if r.Header.Get("Origin") != "" {
			for _, kv := range corsHeaders {
				h.Set(kv[0], kv[1])
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
