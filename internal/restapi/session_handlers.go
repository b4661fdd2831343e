package restapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/metrics"
	"askdata.insights.org/internal/models"
	"askdata.insights.org/internal/query"
	"askdata.insights.org/internal/render"
	"askdata.insights.org/internal/utils"
)

type sessionEntry struct {
	ID     string         `json:"id"`
	State  query.State    `json:"state"`
	Result *render.Result `json:"result,omitempty"`
}

func (api *RestAPI) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	session := query.NewSession(api.QueryProcessor(), api.Config.ResponseDelay, api.Logger)
	id := api.sessions.create(session)
	api.updateActiveSessions()

	logging.LogOperation(api.Logger, "session_created",
		slog.String("component", "http_server"),
		slog.String("session_id", id))

	api.sendResponse(w, r, models.NewEntryResponse(sessionEntry{ID: id, State: session.State()}, models.NewEmptyReferences()))
}

// sessionParam looks up the :id session, replying 400 or 404 when it cannot.
func (api *RestAPI) sessionParam(w http.ResponseWriter, r *http.Request) (string, *query.Session, bool) {
	id := utils.PathParam(r, "id")
	if err := utils.ValidateSessionID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return "", nil, false
	}
	session, ok := api.sessions.get(id)
	if !ok {
		api.sendNotFound(w, r)
		return "", nil, false
	}
	return id, session, true
}

func (api *RestAPI) sessionHandler(w http.ResponseWriter, r *http.Request) {
	id, session, ok := api.sessionParam(w, r)
	if !ok {
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(sessionEntry{ID: id, State: session.State()}, models.NewEmptyReferences()))
}

func (api *RestAPI) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.PathParam(r, "id")
	if err := utils.ValidateSessionID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}
	if !api.sessions.delete(id) {
		api.sendNotFound(w, r)
		return
	}
	api.updateActiveSessions()
	api.sendResponse(w, r, models.NewEntryResponse(sessionEntry{ID: id}, models.NewEmptyReferences()))
}

// submitSessionQueryHandler runs a query through the session. The request
// blocks for the session delay; a newer submission to the same session makes
// this one answer 409.
func (api *RestAPI) submitSessionQueryHandler(w http.ResponseWriter, r *http.Request) {
	id, session, ok := api.sessionParam(w, r)
	if !ok {
		return
	}

	q, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return
	}
	opts, fieldErrors := api.renderOptions(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	opts.OriginalQuery = q

	start := time.Now()
	state, err := session.Submit(r.Context(), q)
	switch {
	case err == nil:
	case errors.Is(err, query.ErrSuperseded):
		api.conflictResponse(w, r, err)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.LogOperation(api.Logger, "session_query_abandoned",
			slog.String("component", "http_server"),
			slog.String("session_id", id))
		return
	default:
		api.observeQuery(r.Context(), "", outcomeOf(err), start)
		api.queryErrorResponse(w, r, err)
		return
	}

	if state.Parsed.TemplateID == query.TemplateExplainChart && opts.ChartContext == "" {
		opts.ChartContext = state.LastChart
	}
	result, err := api.renderResult(r.Context(), state.Parsed, opts)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.observeQuery(r.Context(), state.Parsed.TemplateID, metrics.OutcomeMatched, start)
	api.observeUnavailable(result)

	entry := sessionEntry{ID: id, State: state, Result: result}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewDatasetReferences(render.DatasetFor(result.Template))))
}

func (api *RestAPI) updateActiveSessions() {
	if api.Metrics == nil {
		return
	}
	api.Metrics.ActiveSessions.Set(float64(api.sessions.len()))
}
