package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/metrics"
	"askdata.insights.org/internal/models"
	"askdata.insights.org/internal/query"
	"askdata.insights.org/internal/render"
	"askdata.insights.org/internal/utils"
)

func (api *RestAPI) queryHandler(w http.ResponseWriter, r *http.Request) {
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
	parsed, err := api.QueryProcessor().Process(q)
	if err != nil {
		api.observeQuery(r.Context(), "", outcomeOf(err), start)
		api.queryErrorResponse(w, r, err)
		return
	}

	result, err := api.renderResult(r.Context(), parsed, opts)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.observeQuery(r.Context(), parsed.TemplateID, metrics.OutcomeMatched, start)
	api.observeUnavailable(result)

	api.sendResponse(w, r, models.NewEntryResponse(result, models.NewDatasetReferences(render.DatasetFor(result.Template))))
}

// renderOptions reads the scenario and chart context shared by the query endpoints.
func (api *RestAPI) renderOptions(r *http.Request) (render.Options, map[string][]string) {
	opts := render.Options{
		Now:                api.now(),
		FreshnessThreshold: api.Config.FreshnessThreshold,
	}
	fieldErrors := make(map[string][]string)

	scenario, ok := render.ParseScenario(utils.QueryParam(r, "scenario"))
	if !ok {
		fieldErrors["scenario"] = []string{"scenario must be moderate or aggressive"}
	}
	opts.Scenario = scenario

	chart, ok := render.ParseChartContext(utils.QueryParam(r, "context"))
	if !ok {
		fieldErrors["context"] = []string{render.ChartContextError}
	}
	opts.ChartContext = chart
	return opts, fieldErrors
}

// renderResult renders parsed through the result cache. The cache key covers
// every input of the rendered body, including the day freshness is checked on.
func (api *RestAPI) renderResult(ctx context.Context, parsed *query.ParsedQuery, opts render.Options) (*render.Result, error) {
	key := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		parsed.TemplateID, parsed.Indicator, parsed.Place, parsed.PeerCountry,
		opts.Scenario, opts.ChartContext, opts.Now.Format(time.DateOnly))

	data, err := api.Cache.GetOrCompute(ctx, key, func() ([]byte, error) {
		return json.Marshal(render.Render(parsed, opts))
	})
	if err != nil {
		return nil, err
	}

	var result render.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	result.OriginalQuery = opts.OriginalQuery
	return &result, nil
}

func outcomeOf(err error) string {
	var noMatch *query.NoMatchError
	var unresolved *query.UnresolvedEntityError
	switch {
	case errors.Is(err, query.ErrEmptyQuery):
		return metrics.OutcomeEmpty
	case errors.As(err, &noMatch):
		return metrics.OutcomeNoMatch
	case errors.As(err, &unresolved):
		return metrics.OutcomeUnresolved
	default:
		return metrics.OutcomeNoMatch
	}
}

// observeQuery counts the query outcome and logs it with the request logger.
func (api *RestAPI) observeQuery(ctx context.Context, template query.TemplateID, outcome string, start time.Time) {
	if template == "" {
		template = "none"
	}
	elapsedMs := float64(time.Since(start).Nanoseconds()) / 1e6
	logging.LogQuery(ctx, logging.FromContext(ctx), string(template), outcome, elapsedMs)

	if api.Metrics == nil {
		return
	}
	api.Metrics.QueriesTotal.WithLabelValues(string(template), outcome).Inc()
	api.Metrics.QueryDurationMs.Observe(elapsedMs)
}

func (api *RestAPI) observeUnavailable(result *render.Result) {
	if api.Metrics == nil || result.Available {
		return
	}
	api.Metrics.UnavailableTotal.WithLabelValues(string(result.Template)).Inc()
}

type suggestion struct {
	TemplateID  query.TemplateID `json:"templateId"`
	Description string           `json:"description"`
	Example     string           `json:"example"`
}

func (api *RestAPI) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	templates := query.Templates()
	list := make([]suggestion, 0, len(templates))
	for _, t := range templates {
		list = append(list, suggestion{TemplateID: t.ID, Description: t.Description, Example: t.Example})
	}
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences()))
}
