package query

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseCanonicalExamples(t *testing.T) {
	tests := []struct {
		query string
		want  *ParsedQuery
	}{
		{
			query: "Show youth unemployment in South Africa vs South Korea",
			want: &ParsedQuery{
				TemplateID:  TemplateGapAnalysis,
				Indicator:   "youth unemployment",
				Place:       "South Africa",
				PeerCountry: "South Korea",
				Confidence:  ResolvedConfidence,
			},
		},
		{
			query: "Generate KPI card for youth unemployment",
			want:  &ParsedQuery{TemplateID: TemplateKPICard, Indicator: "youth unemployment", Confidence: ResolvedConfidence},
		},
		{
			query: "Create Gap-Lens chart for youth unemployment",
			want:  &ParsedQuery{TemplateID: TemplateGapLens, Indicator: "youth unemployment", Confidence: ResolvedConfidence},
		},
		{
			query: "Explain this chart in plain language",
			want:  &ParsedQuery{TemplateID: TemplateExplainChart, Confidence: ResolvedConfidence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Default.Parse(tt.query)
			require.NotNil(t, got)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestParseRejectsUnrecognisedInput(t *testing.T) {
	for _, q := range []string{
		"what is the weather",
		"Show moon cheese in France vs Mars",
		"generate kpi card for moon cheese",
		"",
		"   ",
	} {
		t.Run(q, func(t *testing.T) {
			assert.Nil(t, Default.Parse(q))
		})
	}
}

func TestParseIgnoresCaseAndPadding(t *testing.T) {
	for _, example := range Default.SuggestedQueries() {
		t.Run(example, func(t *testing.T) {
			want := Default.Parse(example)
			require.NotNil(t, want)
			assert.Empty(t, cmp.Diff(want, Default.Parse(strings.ToUpper(example))))
			assert.Empty(t, cmp.Diff(want, Default.Parse("  "+example+"\t")))
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	for _, q := range []string{
		"Show overall unemployment in gauteng vs brazil",
		"create gap lens chart for overall unemployment",
		"what is the weather",
	} {
		assert.Empty(t, cmp.Diff(Default.Parse(q), Default.Parse(q)), q)
	}
}

func TestParseGapLensSpellings(t *testing.T) {
	for _, q := range []string{
		"create gap-lens chart for poverty rate",
		"create gap lens chart for poverty rate",
		"create gaplens chart for poverty rate",
	} {
		got := Default.Parse(q)
		require.NotNil(t, got, q)
		assert.Equal(t, TemplateGapLens, got.TemplateID)
		assert.Equal(t, "poverty rate", got.Indicator)
	}
}

func TestParseResolvesPartialNames(t *testing.T) {
	got := Default.Parse("show unemployment in the western cape vs oecd")
	require.NotNil(t, got)
	assert.Equal(t, "youth unemployment", got.Indicator, "list order decides overlapping names")
	assert.Equal(t, "Western Cape", got.Place)
	assert.Equal(t, "OECD Average", got.PeerCountry)
}

func TestFindBestMatch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		options []string
		want    string
		ok      bool
	}{
		{name: "exact ignores case", input: "oecd AVERAGE", options: PeerCountries, want: "OECD Average", ok: true},
		{name: "exact beats earlier substring", input: "cape", options: []string{"Western Cape", "cape"}, want: "cape", ok: true},
		{name: "option contains input", input: "south", options: Places, want: "South Africa", ok: true},
		{name: "input contains option", input: "the republic of china", options: PeerCountries, want: "China", ok: true},
		{name: "first in list order", input: "unemployment", options: Indicators, want: "youth unemployment", ok: true},
		{name: "no match", input: "mars", options: PeerCountries},
		{name: "blank input", input: "  ", options: PeerCountries},
		{name: "no options", input: "china"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindBestMatch(tt.input, tt.options)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestedQueries(t *testing.T) {
	assert.Equal(t, []string{
		"Show youth unemployment in South Africa vs South Korea",
		"Generate KPI card for youth unemployment",
		"Create Gap-Lens chart for youth unemployment",
		"Explain this chart in plain language",
	}, Default.SuggestedQueries())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default.Validate(&ParsedQuery{TemplateID: TemplateExplainChart}))
	assert.NoError(t, Default.Validate(&ParsedQuery{TemplateID: TemplateKPICard, Indicator: "poverty rate"}))

	err := Default.Validate(&ParsedQuery{TemplateID: TemplateGapAnalysis, Indicator: "poverty rate"})
	var unresolved *UnresolvedEntityError
	require.ErrorAs(t, err, &unresolved)
	assert.Len(t, unresolved.Unresolved, 2)
	assert.True(t, strings.HasPrefix(unresolved.Message(), "Missing required data. Available indicators: youth unemployment, overall unemployment"))

	err = Default.Validate(&ParsedQuery{TemplateID: TemplateGapLens})
	require.ErrorAs(t, err, &unresolved)
	assert.True(t, strings.HasPrefix(unresolved.Message(), "Indicator not found."))
}

func TestDiagnose(t *testing.T) {
	assert.Nil(t, Default.Diagnose("Generate KPI card for youth unemployment"))

	d := Default.Diagnose("what is the weather")
	require.NotNil(t, d)
	assert.Empty(t, d.Template)

	d = Default.Diagnose("Show moon cheese in France vs South Korea")
	require.NotNil(t, d)
	assert.Equal(t, TemplateGapAnalysis, d.Template)
	assert.Equal(t, []Entity{
		{Kind: EntityIndicator, Raw: "moon cheese"},
		{Kind: EntityPlace, Raw: "france"},
	}, d.Unresolved)
}

func TestProcess(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		parsed, err := Default.Process("Generate KPI card for literacy rate")
		require.NoError(t, err)
		assert.Equal(t, "literacy rate", parsed.Indicator)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Default.Process(" ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, "Please enter a query to analyze.", UserMessage(err))
	})

	t.Run("no template", func(t *testing.T) {
		_, err := Default.Process("what is the weather")
		var noMatch *NoMatchError
		require.ErrorAs(t, err, &noMatch)
		assert.Equal(t, Default.SuggestedQueries(), noMatch.Suggestions)
		assert.Equal(t, "Query format not recognized. Try one of these formats:\n"+
			strings.Join(Default.SuggestedQueries(), "\n"), UserMessage(err))
	})

	t.Run("unresolved indicator", func(t *testing.T) {
		_, err := Default.Process("Generate KPI card for unemploymnt")
		var unresolved *UnresolvedEntityError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, TemplateKPICard, unresolved.Template)
		assert.Equal(t, Indicators, unresolved.Available)
		assert.ElementsMatch(t, []string{"youth unemployment", "overall unemployment"}, unresolved.Closest)
		assert.Equal(t, "Indicator not found. Available indicators: "+strings.Join(Indicators, ", "), UserMessage(err))
	})

	t.Run("whitespace capture stays unresolved", func(t *testing.T) {
		_, err := Default.Process("show \t in south africa vs china")
		var unresolved *UnresolvedEntityError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, TemplateGapAnalysis, unresolved.Template)

		var kinds []EntityKind
		for _, e := range unresolved.Unresolved {
			kinds = append(kinds, e.Kind)
		}
		assert.Contains(t, kinds, EntityIndicator)
		assert.NotContains(t, kinds, EntityPlace)
	})
}

func TestCustomProcessorLists(t *testing.T) {
	p := NewProcessor([]string{"water access"}, []string{"Lesotho"}, []string{"Botswana"})
	got := p.Parse("show water access in lesotho vs botswana")
	require.NotNil(t, got)
	assert.Equal(t, "Lesotho", got.Place)
	assert.Nil(t, p.Parse(Default.SuggestedQueries()[0]))
}
