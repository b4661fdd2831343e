package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdata.insights.org/internal/catalog"
	"askdata.insights.org/internal/query"
)

var testNow = time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

func renderQuery(t *testing.T, q string, opts Options) *Result {
	t.Helper()
	parsed, err := query.Default.Process(q)
	require.NoError(t, err)
	if opts.Now.IsZero() {
		opts.Now = testNow
	}
	return Render(parsed, opts)
}

func TestRenderKPICard(t *testing.T) {
	result := renderQuery(t, "Generate KPI card for youth unemployment", Options{})

	require.True(t, result.Available)
	assert.Equal(t, "KPI Card", result.Badge)
	assert.Equal(t, "90% confidence", result.ConfidenceLabel)
	require.NotNil(t, result.KPI)
	assert.Equal(t, "Youth Unemployment (15-24)", result.KPI.Title)
	assert.Equal(t, "61%", result.KPI.Value)
	assert.Equal(t, catalog.TrendUp, result.KPI.Trend)
	require.NotNil(t, result.KPI.Target)
	assert.Equal(t, 46.0, result.KPI.Target.Gap)
	assert.Equal(t, "Current: 61% | Target: 15% | Gap: 46.0pp", result.KPI.Target.Summary)

	overall := renderQuery(t, "Generate KPI card for overall unemployment", Options{})
	assert.Equal(t, "32.9%", overall.KPI.Value)
	assert.Equal(t, "Current: 32.9% | Target: 10% | Gap: 22.9pp", overall.KPI.Target.Summary)
}

func TestRenderGapAnalysis(t *testing.T) {
	result := renderQuery(t, "Show youth unemployment in South Africa vs South Korea", Options{})

	require.True(t, result.Available)
	view := result.GapAnalysis
	require.NotNil(t, view)
	assert.Equal(t, "Youth Unemployment: South Africa vs South Korea", view.Title)
	assert.Equal(t, 54.0, view.Gap)
	assert.Equal(t, "higher", view.Direction)
	assert.Equal(t, "54.0pp gap", view.GapLabel)
	assert.Contains(t, view.Summary, "which is 54.0 percentage points higher than South Korea's rate of 7%")

	require.Len(t, view.Chart.Series, 2)
	assert.Equal(t, "South Africa", view.Chart.Series[0].Name)
	assert.Len(t, view.Chart.Series[0].Data, 6)
	assert.Equal(t, ChartPoint{Label: "2018", Value: 9.8}, view.Chart.Series[1].Data[0])
}

func TestRenderGapLens(t *testing.T) {
	t.Run("moderate by default", func(t *testing.T) {
		result := renderQuery(t, "Create Gap-Lens chart for youth unemployment", Options{})
		require.True(t, result.Available)
		view := result.GapLens
		require.NotNil(t, view)
		assert.Equal(t, ScenarioModerate, view.Scenario)
		assert.Equal(t, 61.0, view.CurrentValue)
		assert.Equal(t, 45.0, view.TargetValue)
		assert.Equal(t, "-16.0pp reduction", view.ReductionLabel)
		assert.Contains(t, view.Impact, "youth unemployment could be reduced from 61% to 45% by 2030")
		assert.Contains(t, view.Impact, "16.0 percentage point improvement")
		require.Len(t, view.Bands, 6)
		assert.Equal(t, ScenarioBand{Year: 2025, Lower: 56, Upper: 60}, view.Bands[0])
		assert.Len(t, view.Interventions, 4)
		assert.Len(t, view.Chart.Series, 3)
	})

	t.Run("aggressive", func(t *testing.T) {
		result := renderQuery(t, "Create Gap-Lens chart for youth unemployment", Options{Scenario: ScenarioAggressive})
		view := result.GapLens
		require.NotNil(t, view)
		assert.Equal(t, 28.0, view.TargetValue)
		assert.Equal(t, 33.0, view.Reduction)
		assert.Len(t, view.Interventions, 5)
	})

	t.Run("no bands", func(t *testing.T) {
		result := renderQuery(t, "Create Gap-Lens chart for overall unemployment", Options{})
		require.NotNil(t, result.GapLens)
		assert.Nil(t, result.GapLens.Bands)
	})
}

func TestRenderUnavailable(t *testing.T) {
	tests := []struct {
		query   string
		message string
	}{
		{"Generate KPI card for clinic density", `No data available for "clinic density". Try a different indicator.`},
		{"Show literacy rate in South Africa vs Brazil", `No comparative data available for "literacy rate" between South Africa and Brazil.`},
		{"Create gap-lens chart for poverty rate", `No projection data available for "poverty rate". Gap-Lens analysis requires scenario modeling data.`},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result := renderQuery(t, tt.query, Options{})
			assert.False(t, result.Available)
			assert.Equal(t, tt.message, result.Message)
			assert.Nil(t, result.Provenance)
			assert.Nil(t, result.Quality)
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	result := Render(&query.ParsedQuery{TemplateID: "bar-chart", Confidence: 0.9}, Options{})
	assert.False(t, result.Available)
	assert.Equal(t, "Unknown query template. Please try a different query format.", result.Message)

	assert.Equal(t, unknownTemplateMessage, Render(nil, Options{}).Message)
}

func TestRenderExplanation(t *testing.T) {
	general := renderQuery(t, "Explain this chart in plain language", Options{})
	require.True(t, general.Available)
	assert.Equal(t, "general", general.Explanation.ChartType)
	assert.Equal(t, catalog.ChartExplanation("general"), general.Explanation.Text)
	assert.Nil(t, general.Quality)

	lens := renderQuery(t, "Explain this chart in plain language", Options{ChartContext: query.TemplateGapLens})
	assert.Equal(t, "gap-lens", lens.Explanation.ChartType)
	assert.Contains(t, lens.Explanation.Text, "three possible future scenarios")
}

func TestRenderAttachesMetadata(t *testing.T) {
	result := renderQuery(t, "Generate KPI card for literacy rate", Options{})

	require.NotNil(t, result.Quality)
	assert.Equal(t, "High Quality", result.Quality.Label)
	assert.Equal(t, "2 weeks ago", result.Quality.Updated)

	require.NotNil(t, result.Provenance)
	assert.Equal(t, catalog.ProvenanceQLFS2024Q3, result.Provenance.ID)

	require.NotNil(t, result.Freshness)
	assert.Equal(t, catalog.WarningInfo, result.Freshness.Level)
	assert.Equal(t, "This data was last updated 10 days ago.", result.Freshness.Message)

	fresh := renderQuery(t, "Generate KPI card for literacy rate", Options{FreshnessThreshold: 30})
	assert.Nil(t, fresh.Freshness)
}

func TestParseScenario(t *testing.T) {
	s, ok := ParseScenario("")
	assert.True(t, ok)
	assert.Equal(t, ScenarioModerate, s)

	s, ok = ParseScenario("aggressive")
	assert.True(t, ok)
	assert.Equal(t, ScenarioAggressive, s)

	_, ok = ParseScenario("baseline")
	assert.False(t, ok)
}

func TestParseChartContext(t *testing.T) {
	for input, want := range map[string]query.TemplateID{
		"":             "",
		"gap-analysis": query.TemplateGapAnalysis,
		"kpi-card":     query.TemplateKPICard,
		"gap-lens":     query.TemplateGapLens,
	} {
		got, ok := ParseChartContext(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"explain-chart", "pie", "Gap-Lens"} {
		_, ok := ParseChartContext(input)
		assert.False(t, ok, input)
	}
}
