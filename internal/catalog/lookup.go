// Package catalog holds the read-only indicator tables behind the query
// service. Every exported accessor returns a copy, so callers can never
// mutate the shared fixtures.
package catalog

import (
	"slices"
	"sort"
	"strings"
)

// IndicatorKPI returns the KPI card record for an indicator.
func IndicatorKPI(indicator string) (IndicatorData, bool) {
	data, ok := indicatorKPIs[strings.ToLower(indicator)]
	if !ok {
		return IndicatorData{}, false
	}
	if data.Target != nil {
		target := *data.Target
		data.Target = &target
	}
	return data, true
}

// GapAnalysis returns the comparison between place and peerCountry for an indicator.
func GapAnalysis(indicator, place, peerCountry string) (GapAnalysisData, bool) {
	rows, ok := gapAnalysis[strings.ToLower(indicator)]
	if !ok {
		return GapAnalysisData{}, false
	}
	for _, row := range rows {
		if strings.EqualFold(row.Place, place) && strings.EqualFold(row.PeerCountry, peerCountry) {
			row.HistoricalData = slices.Clone(row.HistoricalData)
			return row, true
		}
	}
	return GapAnalysisData{}, false
}

// GapLens returns the scenario projections for an indicator.
func GapLens(indicator string) (GapLensData, bool) {
	data, ok := gapLens[strings.ToLower(indicator)]
	if !ok {
		return GapLensData{}, false
	}
	scenarios := make([]ScenarioPoint, len(data.Scenarios))
	for i, point := range data.Scenarios {
		point.BaselineBand = cloneBand(point.BaselineBand)
		point.ModerateBand = cloneBand(point.ModerateBand)
		point.AggressiveBand = cloneBand(point.AggressiveBand)
		scenarios[i] = point
	}
	data.Scenarios = scenarios
	data.Interventions = Interventions{
		Moderate:   slices.Clone(data.Interventions.Moderate),
		Aggressive: slices.Clone(data.Interventions.Aggressive),
	}
	return data, true
}

func cloneBand(b *Band) *Band {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// ChartExplanation returns the plain-language description of a chart type,
// falling back to a general description for unknown types.
func ChartExplanation(chartType string) string {
	if text, ok := chartExplanations[chartType]; ok {
		return text
	}
	return generalExplanation
}

// GapAnalysisPairs lists the place/peer pairs available for an indicator.
func GapAnalysisPairs(indicator string) [][2]string {
	rows := gapAnalysis[strings.ToLower(indicator)]
	pairs := make([][2]string, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, [2]string{row.Place, row.PeerCountry})
	}
	return pairs
}

// KPIIndicators lists indicator keys with a KPI record, sorted.
func KPIIndicators() []string {
	return sortedKeys(indicatorKPIs)
}

// GapAnalysisIndicators lists indicator keys with comparisons, sorted.
func GapAnalysisIndicators() []string {
	return sortedKeys(gapAnalysis)
}

// GapLensIndicators lists indicator keys with projections, sorted.
func GapLensIndicators() []string {
	return sortedKeys(gapLens)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func EducationTrend() []EducationPoint { return slices.Clone(educationTrend) }

func ProvinceUnemployment() []ProvinceRate { return slices.Clone(provinceUnemployment) }

func HealthCoverage() []HealthShare { return slices.Clone(healthCoverage) }

func PopulationSeries() []PopulationPoint { return slices.Clone(populationSeries) }

func Headline() HeadlineKPIs { return headline }

func PlatformQuality() QualityMetrics { return qualityMetrics }

// PeerComparisons returns the headline peer-country rows.
func PeerComparisons() []PeerComparison {
	rows := slices.Clone(peerComparisons)
	for i := range rows {
		if rows[i].Target2027 != nil {
			v := *rows[i].Target2027
			rows[i].Target2027 = &v
		}
	}
	return rows
}

// Wards returns ward rows, optionally restricted to one province (case-insensitive).
func Wards(province string) []WardIndicator {
	if province == "" {
		return slices.Clone(wards)
	}
	var out []WardIndicator
	for _, w := range wards {
		if strings.EqualFold(w.Province, province) {
			out = append(out, w)
		}
	}
	return out
}

// Ward looks a ward up by its id.
func Ward(id string) (WardIndicator, bool) {
	for _, w := range wards {
		if w.WardID == id {
			return w, true
		}
	}
	return WardIndicator{}, false
}

// Provenance returns a provenance record by id.
func Provenance(id string) (DataProvenance, bool) {
	p, ok := provenances[id]
	return p, ok
}

// Provenances returns every provenance record, ordered by id.
func Provenances() []DataProvenance {
	out := make([]DataProvenance, 0, len(provenances))
	for _, id := range sortedKeys(provenances) {
		out = append(out, provenances[id])
	}
	return out
}

// Quality returns the quality metadata of a dataset.
func Quality(dataset Dataset) (DataQuality, bool) {
	q, ok := datasetQuality[dataset]
	return q, ok
}
