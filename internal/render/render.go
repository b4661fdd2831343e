// Package render turns a parsed query into the structured result a client
// displays: KPI cards, gap comparisons, scenario projections and chart
// explanations, each with provenance and data-quality metadata attached.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"askdata.insights.org/internal/catalog"
	"askdata.insights.org/internal/query"
)

const unknownTemplateMessage = "Unknown query template. Please try a different query format."

// Options control rendering. The zero value renders the moderate scenario,
// explains charts generally and checks freshness against the wall clock.
type Options struct {
	Scenario Scenario
	// ChartContext is the chart an explain-chart query refers to.
	ChartContext  query.TemplateID
	OriginalQuery string
	Now           time.Time
	// FreshnessThreshold in days; non-positive uses the catalog default.
	FreshnessThreshold int
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Render builds the result for parsed. Missing data is reported through
// Result.Available and Result.Message, never as an error.
func Render(parsed *query.ParsedQuery, opts Options) *Result {
	if parsed == nil {
		return &Result{Message: unknownTemplateMessage, OriginalQuery: opts.OriginalQuery}
	}

	result := &Result{
		Template:        parsed.TemplateID,
		OriginalQuery:   opts.OriginalQuery,
		Confidence:      parsed.Confidence,
		ConfidenceLabel: ConfidenceLabel(parsed.Confidence),
	}

	switch parsed.TemplateID {
	case query.TemplateKPICard:
		renderKPI(result, parsed.Indicator)
	case query.TemplateGapAnalysis:
		renderGapAnalysis(result, parsed.Indicator, parsed.Place, parsed.PeerCountry)
	case query.TemplateGapLens:
		renderGapLens(result, parsed.Indicator, opts.Scenario)
	case query.TemplateExplainChart:
		renderExplanation(result, opts.ChartContext)
	default:
		result.Message = unknownTemplateMessage
	}

	dataset := DatasetFor(parsed.TemplateID)
	if result.Available && dataset != "" {
		attachMetadata(result, dataset, opts)
	}
	return result
}

// DatasetFor names the catalog table behind a template. Explanations have none.
func DatasetFor(id query.TemplateID) catalog.Dataset {
	switch id {
	case query.TemplateKPICard:
		return catalog.DatasetKPI
	case query.TemplateGapAnalysis:
		return catalog.DatasetGapAnalysis
	case query.TemplateGapLens:
		return catalog.DatasetGapLens
	default:
		return ""
	}
}

// ConfidenceLabel formats a 0..1 confidence as a whole percentage.
func ConfidenceLabel(confidence float64) string {
	return fmt.Sprintf("%.0f%% confidence", confidence*100)
}

func renderKPI(result *Result, indicator string) {
	data, ok := catalog.IndicatorKPI(indicator)
	if !ok {
		result.Message = fmt.Sprintf("No data available for %q. Try a different indicator.", indicator)
		return
	}

	card := &KPICard{
		Title:       data.Indicator,
		Value:       number(data.CurrentValue) + data.Unit,
		Change:      data.Change,
		Trend:       data.Trend,
		Description: data.Description,
	}
	if data.Target != nil {
		gap := math.Abs(data.CurrentValue - *data.Target)
		card.Target = &TargetAnalysis{
			Current: data.CurrentValue,
			Target:  *data.Target,
			Gap:     gap,
			Summary: fmt.Sprintf("Current: %s%% | Target: %s%% | Gap: %.1fpp",
				number(data.CurrentValue), number(*data.Target), gap),
		}
	}

	result.Available = true
	result.Badge = "KPI Card"
	result.Subtitle = "Current status and trend analysis"
	result.KPI = card
}

func renderGapAnalysis(result *Result, indicator, place, peer string) {
	data, ok := catalog.GapAnalysis(indicator, place, peer)
	if !ok {
		result.Message = fmt.Sprintf("No comparative data available for %q between %s and %s.", indicator, place, peer)
		return
	}

	diff := data.PlaceValue - data.PeerValue
	direction := "lower"
	if diff > 0 {
		direction = "higher"
	}
	gap := math.Abs(diff)

	placeSeries := ChartSeries{Name: data.Place, Color: "#ef4444"}
	peerSeries := ChartSeries{Name: data.PeerCountry, Color: "#3b82f6"}
	for _, point := range data.HistoricalData {
		label := strconv.Itoa(point.Year)
		placeSeries.Data = append(placeSeries.Data, ChartPoint{Label: label, Value: point.Place})
		peerSeries.Data = append(peerSeries.Data, ChartPoint{Label: label, Value: point.Peer})
	}

	title := fmt.Sprintf("%s: %s vs %s", data.Indicator, data.Place, data.PeerCountry)
	result.Available = true
	result.Badge = "Gap Analysis"
	result.Subtitle = "Comparative performance analysis"
	result.GapAnalysis = &GapAnalysisView{
		Title:       title,
		Indicator:   data.Indicator,
		Place:       data.Place,
		PeerCountry: data.PeerCountry,
		PlaceValue:  data.PlaceValue,
		PeerValue:   data.PeerValue,
		Gap:         gap,
		Direction:   direction,
		GapLabel:    fmt.Sprintf("%.1fpp gap", gap),
		Summary: fmt.Sprintf("%s currently has a %s rate of %s%%, which is %.1f percentage points %s than %s's rate of %s%%. "+
			"To close this gap, %s would need comprehensive policy interventions targeting the root causes of this disparity.",
			data.Place, strings.ToLower(data.Indicator), number(data.PlaceValue), gap, direction,
			data.PeerCountry, number(data.PeerValue), data.Place),
		Chart: ChartConfig{
			ChartType:  "line",
			Title:      title,
			XAxis:      "Year",
			YAxis:      "%",
			Series:     []ChartSeries{placeSeries, peerSeries},
			ShowLegend: true,
			ShowGrid:   true,
		},
	}
}

func renderGapLens(result *Result, indicator string, scenario Scenario) {
	data, ok := catalog.GapLens(indicator)
	if !ok || len(data.Scenarios) == 0 {
		result.Message = fmt.Sprintf("No projection data available for %q. Gap-Lens analysis requires scenario modeling data.", indicator)
		return
	}
	if scenario != ScenarioAggressive {
		scenario = ScenarioModerate
	}

	first, last := data.Scenarios[0], data.Scenarios[len(data.Scenarios)-1]
	current := first.Baseline
	target := scenarioValue(last, scenario)
	reduction := current - target

	view := &GapLensView{
		Indicator:      data.Indicator,
		Scenario:       scenario,
		CurrentValue:   current,
		TargetValue:    target,
		Reduction:      reduction,
		ReductionLabel: fmt.Sprintf("-%.1fpp reduction", reduction),
		Impact: fmt.Sprintf("With %s reform interventions, %s could be reduced from %s%% to %s%% by %d, "+
			"representing a %.1f percentage point improvement. "+
			"This scenario assumes sustained political commitment and adequate resource allocation across all intervention areas.",
			scenario, strings.ToLower(data.Indicator), number(current), number(target), last.Year, reduction),
		Interventions: data.Interventions.Moderate,
	}
	if scenario == ScenarioAggressive {
		view.Interventions = data.Interventions.Aggressive
	}

	baseline := ChartSeries{Name: "Baseline", Color: "#94a3b8"}
	moderate := ChartSeries{Name: "Moderate Reform", Color: "#f59e0b"}
	aggressive := ChartSeries{Name: "Aggressive Reform", Color: "#10b981"}
	for _, point := range data.Scenarios {
		label := strconv.Itoa(point.Year)
		baseline.Data = append(baseline.Data, ChartPoint{Label: label, Value: point.Baseline})
		moderate.Data = append(moderate.Data, ChartPoint{Label: label, Value: point.Moderate})
		aggressive.Data = append(aggressive.Data, ChartPoint{Label: label, Value: point.Aggressive})
		if band := scenarioBand(point, scenario); band != nil {
			view.Bands = append(view.Bands, ScenarioBand{Year: point.Year, Lower: band.Lower, Upper: band.Upper})
		}
	}
	view.Chart = ChartConfig{
		ChartType:  "area",
		Title:      data.Indicator + " Projections",
		XAxis:      "Year",
		YAxis:      "%",
		Series:     []ChartSeries{baseline, moderate, aggressive},
		ShowLegend: true,
		ShowGrid:   true,
	}

	result.Available = true
	result.Badge = "Gap-Lens Projection"
	result.Subtitle = "Multi-scenario policy impact analysis"
	result.GapLens = view
}

func scenarioValue(p catalog.ScenarioPoint, s Scenario) float64 {
	if s == ScenarioAggressive {
		return p.Aggressive
	}
	return p.Moderate
}

func scenarioBand(p catalog.ScenarioPoint, s Scenario) *catalog.Band {
	if s == ScenarioAggressive {
		return p.AggressiveBand
	}
	return p.ModerateBand
}

func renderExplanation(result *Result, chart query.TemplateID) {
	chartType := string(chart)
	if chart == "" || chart == query.TemplateExplainChart {
		chartType = "general"
	}
	result.Available = true
	result.Badge = "Chart Explanation"
	result.Subtitle = "Plain language interpretation"
	result.Explanation = &Explanation{ChartType: chartType, Text: catalog.ChartExplanation(chartType)}
}

func attachMetadata(result *Result, dataset catalog.Dataset, opts Options) {
	quality, ok := catalog.Quality(dataset)
	if !ok {
		return
	}
	now := opts.now()

	badge := &QualityBadge{DataQuality: quality, Label: quality.Level.Label()}
	if updated, err := time.Parse(time.DateOnly, quality.LastUpdated); err == nil {
		badge.Updated = catalog.RelativeAge(updated, now)
	}
	result.Quality = badge

	if provenance, ok := catalog.Provenance(quality.Source); ok {
		result.Provenance = &provenance
	}
	if warning, err := catalog.CheckFreshness(quality.LastUpdated, now, opts.FreshnessThreshold); err == nil {
		result.Freshness = warning
	}
}

// number formats v without trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
