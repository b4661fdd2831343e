package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"askdata.insights.org/internal/catalog"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

var dataTypes = []string{
	"kpi", "gap-analysis", "gap-lens", "education", "provinces",
	"health", "population", "wards", "peers", "provenance", "quality",
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")

	dataStruct := debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: dataTypes,
	}

	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "kpi":
		data = kpiRecords()
		title = "Catalog - KPI Cards"
	case "gap-analysis":
		data = gapAnalysisRecords()
		title = "Catalog - Gap Analysis"
	case "gap-lens":
		data = gapLensRecords()
		title = "Catalog - Gap-Lens Projections"
	case "education":
		data = catalog.EducationTrend()
		title = "Catalog - Education Trend"
	case "provinces":
		data = catalog.ProvinceUnemployment()
		title = "Catalog - Provincial Unemployment"
	case "health":
		data = catalog.HealthCoverage()
		title = "Catalog - Healthcare Coverage"
	case "population":
		data = catalog.PopulationSeries()
		title = "Catalog - Population"
	case "wards":
		data = catalog.Wards(r.URL.Query().Get("province"))
		title = "Catalog - Wards"
	case "peers":
		data = catalog.PeerComparisons()
		title = "Catalog - Peer Comparisons"
	case "provenance":
		data = catalog.Provenances()
		title = "Catalog - Provenance"
	case "quality":
		data = qualityRecords()
		title = "Catalog - Data Quality"
	default:
		data = map[string]string{
			"error": "Please use one of the following: kpi, gap-analysis, gap-lens, education, provinces, health, population, wards, peers, provenance, quality.",
		}
		title = "Choose a data type"
	}

	webUI.Logger.Debug("debug page rendered", "dataType", dataType)
	writeDebugData(w, title, data)
}

func kpiRecords() []catalog.IndicatorData {
	var out []catalog.IndicatorData
	for _, indicator := range catalog.KPIIndicators() {
		if data, ok := catalog.IndicatorKPI(indicator); ok {
			out = append(out, data)
		}
	}
	return out
}

func gapAnalysisRecords() []catalog.GapAnalysisData {
	var out []catalog.GapAnalysisData
	for _, indicator := range catalog.GapAnalysisIndicators() {
		for _, pair := range catalog.GapAnalysisPairs(indicator) {
			if data, ok := catalog.GapAnalysis(indicator, pair[0], pair[1]); ok {
				out = append(out, data)
			}
		}
	}
	return out
}

func gapLensRecords() []catalog.GapLensData {
	var out []catalog.GapLensData
	for _, indicator := range catalog.GapLensIndicators() {
		if data, ok := catalog.GapLens(indicator); ok {
			out = append(out, data)
		}
	}
	return out
}

func qualityRecords() map[catalog.Dataset]catalog.DataQuality {
	datasets := []catalog.Dataset{
		catalog.DatasetKPI, catalog.DatasetGapAnalysis, catalog.DatasetGapLens,
		catalog.DatasetEducation, catalog.DatasetProvinces, catalog.DatasetPopulation,
		catalog.DatasetHealth, catalog.DatasetWards,
	}
	out := make(map[catalog.Dataset]catalog.DataQuality, len(datasets))
	for _, dataset := range datasets {
		if q, ok := catalog.Quality(dataset); ok {
			out[dataset] = q
		}
	}
	return out
}
