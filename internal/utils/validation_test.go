package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkErr asserts err is nil when want is empty, or mentions want otherwise.
func checkErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), want)
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"valid UUID", "7d444840-9dc0-11d1-b245-5ffdce74fad2", ""},
		{"empty", "", "id cannot be empty"},
		{"not a UUID", "session-1", "id must be a UUID"},
		{"path traversal", "../../../etc/passwd", "id must be a UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidateSessionID(tt.id), tt.want)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"indicator", "youth unemployment", ""},
		{"hyphenated place", "KwaZulu-Natal", ""},
		{"accented letters", "Côte d'Ivoire", ""},
		{"blank", "  ", "name cannot be empty"},
		{"too long", strings.Repeat("a", 101), "name too long (max 100 characters)"},
		{"100 multibyte letters", strings.Repeat("é", 100), ""},
		{"script tags", "<script>", "name contains invalid characters"},
		{"sql injection", "rate; DROP TABLE", "name contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidateName(tt.input), tt.want)
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"kpi query", "Generate KPI card for poverty rate", ""},
		{"gap analysis query", "Show matric pass rate in KwaZulu-Natal vs OECD Average", ""},
		{"parentheses and digits", "Generate KPI card for youth unemployment (15-24)", ""},
		{"empty is left to the processor", "", ""},
		{"exactly the limit", strings.Repeat("a", MaxQueryLength), ""},
		{"limit counts characters", strings.Repeat("ü", MaxQueryLength), ""},
		{"too long", strings.Repeat("a", MaxQueryLength+1), "query too long (max 200 characters)"},
		{"script tags", "<script>alert('xss')</script>", "query contains invalid characters"},
		{"sql comment", "'; DROP TABLE indicators; --", "query contains invalid characters"},
		{"block comment", "Generate KPI card for /* x */ rate", "query contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidateQuery(tt.query), tt.want)
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := map[string]string{
		"Explain this chart in plain language":   "Explain this chart in plain language",
		"<div>youth unemployment</div>":          "youth unemployment",
		"<p><strong>Gap-Lens</strong> chart</p>": "Gap-Lens chart",
		"  padded  ":                             "padded",
		"<script></script><div></div>":           "",
		"":                                       "",
	}

	for input, want := range tests {
		assert.Equal(t, want, SanitizeInput(input), "input %q", input)
	}
}

func TestValidateAndSanitizeQuery(t *testing.T) {
	cleaned, err := ValidateAndSanitizeQuery("  Explain this chart in plain language ")
	require.NoError(t, err)
	assert.Equal(t, "Explain this chart in plain language", cleaned)

	_, err = ValidateAndSanitizeQuery("<b>Explain</b>")
	assert.EqualError(t, err, "query contains invalid characters")
}
