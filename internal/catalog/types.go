package catalog

// Trend is the direction an indicator moved since the previous period.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// IndicatorData backs a KPI card.
type IndicatorData struct {
	Indicator    string   `json:"indicator"`
	CurrentValue float64  `json:"currentValue"`
	Unit         string   `json:"unit"`
	Trend        Trend    `json:"trend"`
	Change       string   `json:"change"`
	Target       *float64 `json:"target,omitempty"`
	Description  string   `json:"description"`
}

// HistoricalPoint is one year of a place-vs-peer comparison.
type HistoricalPoint struct {
	Year  int     `json:"year"`
	Place float64 `json:"place"`
	Peer  float64 `json:"peer"`
}

// GapAnalysisData compares a place with a peer country for one indicator.
type GapAnalysisData struct {
	Indicator      string            `json:"indicator"`
	Place          string            `json:"place"`
	PeerCountry    string            `json:"peerCountry"`
	PlaceValue     float64           `json:"placeValue"`
	PeerValue      float64           `json:"peerValue"`
	Gap            float64           `json:"gap"`
	HistoricalData []HistoricalPoint `json:"historicalData"`
}

// Band is a confidence interval around a projected value.
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ScenarioPoint is one projected year under the three policy scenarios.
// Bands are optional; a nil band means no uncertainty estimate was published.
type ScenarioPoint struct {
	Year           int     `json:"year"`
	Baseline       float64 `json:"baseline"`
	Moderate       float64 `json:"moderate"`
	Aggressive     float64 `json:"aggressive"`
	BaselineBand   *Band   `json:"baselineBand,omitempty"`
	ModerateBand   *Band   `json:"moderateBand,omitempty"`
	AggressiveBand *Band   `json:"aggressiveBand,omitempty"`
}

// Interventions lists the policy levers assumed by each reform scenario.
type Interventions struct {
	Moderate   []string `json:"moderate"`
	Aggressive []string `json:"aggressive"`
}

// GapLensData holds scenario projections for one indicator.
type GapLensData struct {
	Indicator     string          `json:"indicator"`
	Scenarios     []ScenarioPoint `json:"scenarios"`
	Interventions Interventions   `json:"interventions"`
}

// DataProvenance attributes a dataset to its publisher. It is displayed, never validated.
type DataProvenance struct {
	ID                 string `json:"id"`
	SourceOrganization string `json:"sourceOrganization"`
	DatasetName        string `json:"datasetName"`
	CollectionDate     string `json:"collectionDate"`
	PublicationDate    string `json:"publicationDate"`
	MethodologyURL     string `json:"methodologyUrl,omitempty"`
	License            string `json:"license"`
	Citation           string `json:"citation"`
}

// EducationPoint is a yearly education trend observation.
type EducationPoint struct {
	Year       int     `json:"year"`
	Enrollment float64 `json:"enrollment"`
	Literacy   float64 `json:"literacy"`
}

// ProvinceRate is the unemployment rate of a province.
type ProvinceRate struct {
	Province string  `json:"province"`
	Rate     float64 `json:"rate"`
}

// HealthShare is one slice of healthcare coverage.
type HealthShare struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// PopulationPoint is the population in millions for a year.
type PopulationPoint struct {
	Year       int     `json:"year"`
	Population float64 `json:"population"`
}

// WardIndicator is a ward-level row for the map layer.
type WardIndicator struct {
	WardID       string  `json:"wardId"`
	WardName     string  `json:"wardName"`
	Municipality string  `json:"municipality"`
	Province     string  `json:"province"`
	Unemployment float64 `json:"unemployment"`
	Literacy     float64 `json:"literacy"`
	HealthAccess float64 `json:"healthAccess"`
	Population   int     `json:"population"`
}

// HeadlineKPIs are the dashboard header figures.
type HeadlineKPIs struct {
	TotalPopulation     int     `json:"totalPopulation"`
	OverallUnemployment float64 `json:"overallUnemployment"`
	LiteracyRate        float64 `json:"literacyRate"`
	HealthcareAccess    float64 `json:"healthcareAccess"`
	LastUpdated         string  `json:"lastUpdated"`
}

// PeerComparison is a headline comparison row for a country.
type PeerComparison struct {
	Country           string   `json:"country"`
	YouthUnemployment float64  `json:"youthUnemployment"`
	GDPGrowth         float64  `json:"gdpGrowth"`
	LiteracyRate      float64  `json:"literacyRate"`
	Target2027        *float64 `json:"target2027,omitempty"`
}

// QualityMetrics summarises platform-wide data quality scores.
type QualityMetrics struct {
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
	Timeliness   float64 `json:"timeliness"`
	Consistency  float64 `json:"consistency"`
}
