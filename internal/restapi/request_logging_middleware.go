package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"askdata.insights.org/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// responseWriter records the status code and body size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// requestID reuses a caller-supplied id when it is a UUID and mints one otherwise.
func requestID(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed.String()
		}
	}
	return uuid.NewString()
}

// NewRequestLoggingMiddleware logs one line per request. Handlers find a
// logger tagged with the request id through logging.FromContext.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r)
			w.Header().Set(requestIDHeader, id)

			reqLogger := logger.With(slog.String("request_id", id))
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			// The path is logged without its query string; API keys travel there.
			logging.LogHTTPRequest(reqLogger,
				r.Method,
				r.URL.Path,
				wrapped.statusCode,
				float64(time.Since(start).Nanoseconds())/1e6,
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("bytes", wrapped.bytes),
				slog.String("component", "http_server"))
		})
	}
}
