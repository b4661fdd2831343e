package render

import (
	"askdata.insights.org/internal/catalog"
	"askdata.insights.org/internal/query"
)

// Scenario selects the reform path shown on a gap-lens result.
type Scenario string

const (
	ScenarioModerate   Scenario = "moderate"
	ScenarioAggressive Scenario = "aggressive"
)

// ParseScenario accepts "moderate" or "aggressive" and defaults to moderate.
func ParseScenario(s string) (Scenario, bool) {
	switch Scenario(s) {
	case "", ScenarioModerate:
		return ScenarioModerate, true
	case ScenarioAggressive:
		return ScenarioAggressive, true
	default:
		return ScenarioModerate, false
	}
}

// ChartContextError is the message for a chart context ParseChartContext rejects.
const ChartContextError = "context must be gap-analysis, kpi-card or gap-lens"

// ParseChartContext accepts the chart templates an explain-chart query can
// refer to. Empty input means no context.
func ParseChartContext(s string) (query.TemplateID, bool) {
	switch id := query.TemplateID(s); id {
	case "", query.TemplateGapAnalysis, query.TemplateKPICard, query.TemplateGapLens:
		return id, true
	default:
		return "", false
	}
}

// Result is the structured answer to a parsed query. When Available is false
// only Template, Confidence and Message are set.
type Result struct {
	Template        query.TemplateID `json:"template"`
	OriginalQuery   string           `json:"originalQuery,omitempty"`
	Confidence      float64          `json:"confidence"`
	ConfidenceLabel string           `json:"confidenceLabel"`
	Available       bool             `json:"available"`
	Message         string           `json:"message,omitempty"`
	Badge           string           `json:"badge,omitempty"`
	Subtitle        string           `json:"subtitle,omitempty"`

	KPI         *KPICard         `json:"kpi,omitempty"`
	GapAnalysis *GapAnalysisView `json:"gapAnalysis,omitempty"`
	GapLens     *GapLensView     `json:"gapLens,omitempty"`
	Explanation *Explanation     `json:"explanation,omitempty"`

	Provenance *catalog.DataProvenance   `json:"provenance,omitempty"`
	Quality    *QualityBadge             `json:"quality,omitempty"`
	Freshness  *catalog.FreshnessWarning `json:"freshness,omitempty"`
}

type KPICard struct {
	Title       string          `json:"title"`
	Value       string          `json:"value"`
	Change      string          `json:"change"`
	Trend       catalog.Trend   `json:"trend"`
	Description string          `json:"description"`
	Target      *TargetAnalysis `json:"target,omitempty"`
}

// TargetAnalysis compares the current value with the published target.
type TargetAnalysis struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Gap     float64 `json:"gap"`
	Summary string  `json:"summary"`
}

type GapAnalysisView struct {
	Title       string  `json:"title"`
	Indicator   string  `json:"indicator"`
	Place       string  `json:"place"`
	PeerCountry string  `json:"peerCountry"`
	PlaceValue  float64 `json:"placeValue"`
	PeerValue   float64 `json:"peerValue"`
	// Gap is the absolute difference in percentage points.
	Gap       float64     `json:"gap"`
	Direction string      `json:"direction"`
	GapLabel  string      `json:"gapLabel"`
	Summary   string      `json:"summary"`
	Chart     ChartConfig `json:"chart"`
}

type GapLensView struct {
	Indicator      string         `json:"indicator"`
	Scenario       Scenario       `json:"scenario"`
	CurrentValue   float64        `json:"currentValue"`
	TargetValue    float64        `json:"targetValue"`
	Reduction      float64        `json:"reduction"`
	ReductionLabel string         `json:"reductionLabel"`
	Impact         string         `json:"impact"`
	Bands          []ScenarioBand `json:"bands,omitempty"`
	Interventions  []string       `json:"interventions"`
	Chart          ChartConfig    `json:"chart"`
}

// ScenarioBand is the confidence interval of the selected scenario for one year.
type ScenarioBand struct {
	Year  int     `json:"year"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

type Explanation struct {
	ChartType string `json:"chartType"`
	Text      string `json:"text"`
}

// QualityBadge is the dataset quality metadata with its display labels.
type QualityBadge struct {
	catalog.DataQuality
	Label   string `json:"label"`
	Updated string `json:"updated"`
}

// ChartConfig is a frontend-agnostic chart description.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
