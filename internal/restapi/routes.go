package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/healthz", http.HandlerFunc(api.healthHandler))

	router.Handler(http.MethodGet, "/api/v1/query.json", validateAPIKey(api, api.queryHandler))
	router.Handler(http.MethodGet, "/api/v1/suggestions.json", validateAPIKey(api, api.suggestionsHandler))
	router.Handler(http.MethodGet, "/api/v1/indicators.json", validateAPIKey(api, api.indicatorsHandler))
	router.Handler(http.MethodGet, "/api/v1/places.json", validateAPIKey(api, api.placesHandler))
	router.Handler(http.MethodGet, "/api/v1/dashboard.json", validateAPIKey(api, api.dashboardHandler))
	router.Handler(http.MethodGet, "/api/v1/wards.json", validateAPIKey(api, api.wardsHandler))

	router.Handler(http.MethodGet, "/api/v1/kpi/:indicator", validateAPIKey(api, api.kpiHandler))
	router.Handler(http.MethodGet, "/api/v1/gap-analysis/:indicator", validateAPIKey(api, api.gapAnalysisHandler))
	router.Handler(http.MethodGet, "/api/v1/gap-lens/:indicator", validateAPIKey(api, api.gapLensHandler))
	router.Handler(http.MethodGet, "/api/v1/explain/:chart", validateAPIKey(api, api.explainHandler))

	router.Handler(http.MethodPost, "/api/v1/sessions.json", validateAPIKey(api, api.createSessionHandler))
	router.Handler(http.MethodGet, "/api/v1/sessions/:id", validateAPIKey(api, api.sessionHandler))
	router.Handler(http.MethodDelete, "/api/v1/sessions/:id", validateAPIKey(api, api.deleteSessionHandler))
	router.Handler(http.MethodPost, "/api/v1/sessions/:id/query", validateAPIKey(api, api.submitSessionQueryHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}
