package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"askdata.insights.org/internal/app"
	"askdata.insights.org/internal/logging"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	sessions    *sessionStore
	now         func() time.Time
}

// NewRestAPI creates a RestAPI and starts its rate limiter and idle session
// sweep. Close stops both.
func NewRestAPI(app *app.Application) *RestAPI {
	api := &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.Config.RateLimitExemptKeys...),
		sessions:    newSessionStore(app.Config.SessionIdleTTL),
		now:         time.Now,
	}
	if app.Metrics != nil {
		api.rateLimiter.onLimited = app.Metrics.RateLimitedTotal.Inc
	}
	api.sessions.start(api.sessionsExpired)
	return api
}

func (api *RestAPI) sessionsExpired(removed int) {
	logging.LogOperation(api.Logger, "sessions_expired",
		slog.String("component", "http_server"),
		slog.Int("removed", removed))
	api.updateActiveSessions()
}

// WithMiddleware wraps handler in request logging, security headers,
// compression and rate limiting, outermost first.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	handler = api.rateLimiter.Handler(handler)
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

// Close stops the background goroutines and drops all sessions. The result
// cache belongs to the caller that opened it.
func (api *RestAPI) Close() error {
	api.rateLimiter.Stop()
	api.sessions.stop()
	api.sessions.clear()
	api.updateActiveSessions()
	return nil
}
