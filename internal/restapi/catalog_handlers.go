package restapi

import (
	"net/http"
	"slices"

	"askdata.insights.org/internal/catalog"
	"askdata.insights.org/internal/models"
	"askdata.insights.org/internal/query"
	"askdata.insights.org/internal/render"
	"askdata.insights.org/internal/utils"
)

type indicatorEntry struct {
	Name       string `json:"name"`
	HasKPI     bool   `json:"hasKpi"`
	HasGapLens bool   `json:"hasGapLens"`
}

func (api *RestAPI) indicatorsHandler(w http.ResponseWriter, r *http.Request) {
	kpis := catalog.KPIIndicators()
	lenses := catalog.GapLensIndicators()

	names := api.QueryProcessor().AvailableIndicators()
	list := make([]indicatorEntry, 0, len(names))
	for _, name := range names {
		list = append(list, indicatorEntry{
			Name:       name,
			HasKPI:     slices.Contains(kpis, name),
			HasGapLens: slices.Contains(lenses, name),
		})
	}
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences()))
}

type placesEntry struct {
	Places        []string `json:"places"`
	PeerCountries []string `json:"peerCountries"`
}

func (api *RestAPI) placesHandler(w http.ResponseWriter, r *http.Request) {
	processor := api.QueryProcessor()
	entry := placesEntry{
		Places:        append([]string{}, processor.AvailablePlaces()...),
		PeerCountries: append([]string{}, processor.AvailablePeerCountries()...),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

// indicatorParam resolves the :indicator path parameter against the indicator
// list. Unknown names pass through so the renderer reports them as unavailable.
func (api *RestAPI) indicatorParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := utils.PathParam(r, "indicator")
	if err := utils.ValidateName(raw); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"indicator": {err.Error()}})
		return "", false
	}
	if resolved, ok := query.FindBestMatch(raw, api.QueryProcessor().AvailableIndicators()); ok {
		return resolved, true
	}
	return raw, true
}

// sendRendered replies with a rendered result, or 404 with its message when
// the catalog has no data for it.
func (api *RestAPI) sendRendered(w http.ResponseWriter, r *http.Request, parsed *query.ParsedQuery, opts render.Options) {
	result, err := api.renderResult(r.Context(), parsed, opts)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.observeUnavailable(result)
	if !result.Available {
		api.sendNotFoundText(w, r, result.Message)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(result, models.NewDatasetReferences(render.DatasetFor(result.Template))))
}

func (api *RestAPI) kpiHandler(w http.ResponseWriter, r *http.Request) {
	indicator, ok := api.indicatorParam(w, r)
	if !ok {
		return
	}
	opts, _ := api.renderOptions(r)
	api.sendRendered(w, r, &query.ParsedQuery{
		TemplateID: query.TemplateKPICard,
		Indicator:  indicator,
		Confidence: query.ResolvedConfidence,
	}, opts)
}

func (api *RestAPI) gapAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	indicator, ok := api.indicatorParam(w, r)
	if !ok {
		return
	}

	processor := api.QueryProcessor()
	fieldErrors := make(map[string][]string)
	place := resolveParam(r, "place", processor.AvailablePlaces(), fieldErrors)
	peer := resolveParam(r, "peer", processor.AvailablePeerCountries(), fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	opts, _ := api.renderOptions(r)
	api.sendRendered(w, r, &query.ParsedQuery{
		TemplateID:  query.TemplateGapAnalysis,
		Indicator:   indicator,
		Place:       place,
		PeerCountry: peer,
		Confidence:  query.ResolvedConfidence,
	}, opts)
}

// resolveParam validates a required name parameter and resolves it against options.
func resolveParam(r *http.Request, name string, options []string, fieldErrors map[string][]string) string {
	raw := utils.QueryParam(r, name)
	if err := utils.ValidateName(raw); err != nil {
		fieldErrors[name] = []string{err.Error()}
		return ""
	}
	if resolved, ok := query.FindBestMatch(raw, options); ok {
		return resolved
	}
	return raw
}

func (api *RestAPI) gapLensHandler(w http.ResponseWriter, r *http.Request) {
	indicator, ok := api.indicatorParam(w, r)
	if !ok {
		return
	}
	opts, fieldErrors := api.renderOptions(r)
	if errs, ok := fieldErrors["scenario"]; ok {
		api.validationErrorResponse(w, r, map[string][]string{"scenario": errs})
		return
	}
	api.sendRendered(w, r, &query.ParsedQuery{
		TemplateID: query.TemplateGapLens,
		Indicator:  indicator,
		Confidence: query.ResolvedConfidence,
	}, opts)
}

func (api *RestAPI) explainHandler(w http.ResponseWriter, r *http.Request) {
	opts, _ := api.renderOptions(r)
	opts.ChartContext = query.TemplateID(utils.PathParam(r, "chart"))
	api.sendRendered(w, r, &query.ParsedQuery{
		TemplateID: query.TemplateExplainChart,
		Confidence: query.ResolvedConfidence,
	}, opts)
}

type dashboardEntry struct {
	Headline        catalog.HeadlineKPIs      `json:"headline"`
	Education       []catalog.EducationPoint  `json:"education"`
	Provinces       []catalog.ProvinceRate    `json:"provinces"`
	Health          []catalog.HealthShare     `json:"health"`
	Population      []catalog.PopulationPoint `json:"population"`
	PeerComparisons []catalog.PeerComparison  `json:"peerComparisons"`
	Quality         catalog.QualityMetrics    `json:"quality"`
}

func (api *RestAPI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	entry := dashboardEntry{
		Headline:        catalog.Headline(),
		Education:       catalog.EducationTrend(),
		Provinces:       catalog.ProvinceUnemployment(),
		Health:          catalog.HealthCoverage(),
		Population:      catalog.PopulationSeries(),
		PeerComparisons: catalog.PeerComparisons(),
		Quality:         catalog.PlatformQuality(),
	}
	references := models.NewDatasetReferences(
		catalog.DatasetEducation,
		catalog.DatasetProvinces,
		catalog.DatasetHealth,
		catalog.DatasetPopulation,
	)
	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

func (api *RestAPI) wardsHandler(w http.ResponseWriter, r *http.Request) {
	province := utils.QueryParam(r, "province")
	if province != "" {
		if err := utils.ValidateName(province); err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"province": {err.Error()}})
			return
		}
	}

	list := catalog.Wards(province)
	if list == nil {
		list = []catalog.WardIndicator{}
	}
	api.sendResponse(w, r, models.NewListResponse(list, models.NewDatasetReferences(catalog.DatasetWards)))
}
