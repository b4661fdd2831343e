package query

import "regexp"

// TemplateID identifies one of the fixed query templates.
type TemplateID string

const (
	TemplateGapAnalysis  TemplateID = "gap-analysis"
	TemplateKPICard      TemplateID = "kpi-card"
	TemplateGapLens      TemplateID = "gap-lens"
	TemplateExplainChart TemplateID = "explain-chart"
)

// Template is a recognised query shape. Patterns are tried in slice order.
type Template struct {
	ID          TemplateID
	Pattern     *regexp.Regexp
	Description string
	Example     string
}

var templates = []Template{
	{
		ID:          TemplateGapAnalysis,
		Pattern:     regexp.MustCompile(`(?i)show\s+(.+?)\s+in\s+(.+?)\s+vs\s+(.+?)$`),
		Description: "Show [indicator] in [place] vs [peer-country]",
		Example:     "Show youth unemployment in South Africa vs South Korea",
	},
	{
		ID:          TemplateKPICard,
		Pattern:     regexp.MustCompile(`(?i)generate\s+kpi\s+card\s+for\s+(.+?)$`),
		Description: "Generate KPI card for [indicator]",
		Example:     "Generate KPI card for youth unemployment",
	},
	{
		ID:          TemplateGapLens,
		Pattern:     regexp.MustCompile(`(?i)create\s+gap[-\s]?lens\s+chart\s+for\s+(.+?)$`),
		Description: "Create Gap-Lens chart for [indicator]",
		Example:     "Create Gap-Lens chart for youth unemployment",
	},
	{
		ID:          TemplateExplainChart,
		Pattern:     regexp.MustCompile(`(?i)explain\s+this\s+chart\s+in\s+plain\s+language$`),
		Description: "Explain this chart in plain language",
		Example:     "Explain this chart in plain language",
	},
}

// Templates returns the recognised templates in matching order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Indicators that can be queried.
var Indicators = []string{
	"youth unemployment",
	"overall unemployment",
	"literacy rate",
	"matric pass rate",
	"clinic density",
	"school enrollment",
	"population growth",
	"poverty rate",
}

// Places a query can be scoped to.
var Places = []string{
	"South Africa",
	"KwaZulu-Natal",
	"Western Cape",
	"Gauteng",
	"Eastern Cape",
	"Free State",
	"Limpopo",
	"Mpumalanga",
	"Northern Cape",
	"North West",
}

// PeerCountries a place can be compared against.
var PeerCountries = []string{
	"South Korea",
	"China",
	"Brazil",
	"India",
	"Turkey",
	"Mexico",
	"OECD Average",
}
