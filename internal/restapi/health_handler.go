package restapi

import (
	"context"
	"net/http"
	"time"

	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/models"
)

const healthCheckTimeout = 2 * time.Second

type healthEntry struct {
	Status string `json:"status"`
	Env    string `json:"env"`
	Cache  string `json:"cache"`
}

// healthHandler reports liveness. It answers 503 when a configured cache is unreachable.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	entry := healthEntry{Status: "ok", Env: api.Config.Env.String(), Cache: "disabled"}
	code := http.StatusOK

	if api.Cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := api.Cache.Ping(ctx); err != nil {
			logging.LogError(api.Logger, "cache_ping_failed", err)
			entry.Status = "degraded"
			entry.Cache = "unavailable"
			code = http.StatusServiceUnavailable
		} else {
			entry.Cache = "ok"
		}
	}

	api.sendResponse(w, r, models.NewResponse(code, map[string]interface{}{
		"entry":      entry,
		"references": models.NewEmptyReferences(),
	}, http.StatusText(code)))
}
