package app

import (
	"log/slog"

	"askdata.insights.org/internal/appconf"
	"askdata.insights.org/internal/cache"
	"askdata.insights.org/internal/metrics"
	"askdata.insights.org/internal/query"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Processor *query.Processor
	// Cache is nil when no Redis address is configured.
	Cache   *cache.ResultCache
	Metrics *metrics.Metrics
}

// QueryProcessor returns the configured processor, or query.Default.
func (app *Application) QueryProcessor() *query.Processor {
	if app.Processor == nil {
		return query.Default
	}
	return app.Processor
}
