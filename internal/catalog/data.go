package catalog

// Static tables. Keys are lower-cased indicator names, matching the names the
// query matcher resolves to.

func ptr(v float64) *float64 { return &v }

var indicatorKPIs = map[string]IndicatorData{
	"youth unemployment": {
		Indicator:    "Youth Unemployment (15-24)",
		CurrentValue: 61.0,
		Unit:         "%",
		Trend:        TrendUp,
		Change:       "+2.1% vs last quarter",
		Target:       ptr(15.0),
		Description:  "Percentage of youth (15-24) who are unemployed and actively seeking work",
	},
	"overall unemployment": {
		Indicator:    "Overall Unemployment Rate",
		CurrentValue: 32.9,
		Unit:         "%",
		Trend:        TrendUp,
		Change:       "+1.2% vs last year",
		Target:       ptr(10.0),
		Description:  "Percentage of economically active population that is unemployed",
	},
	"literacy rate": {
		Indicator:    "Adult Literacy Rate",
		CurrentValue: 87.0,
		Unit:         "%",
		Trend:        TrendUp,
		Change:       "+0.8% vs last year",
		Target:       ptr(95.0),
		Description:  "Percentage of population aged 20+ that can read and write",
	},
	"matric pass rate": {
		Indicator:    "Matric Pass Rate",
		CurrentValue: 80.1,
		Unit:         "%",
		Trend:        TrendDown,
		Change:       "-1.5% vs last year",
		Target:       ptr(90.0),
		Description:  "Percentage of Grade 12 learners who passed matric exams",
	},
}

var gapAnalysis = map[string][]GapAnalysisData{
	"youth unemployment": {
		{
			Indicator:   "Youth Unemployment",
			Place:       "South Africa",
			PeerCountry: "South Korea",
			PlaceValue:  61.0,
			PeerValue:   7.0,
			Gap:         54.0,
			HistoricalData: []HistoricalPoint{
				{Year: 2018, Place: 58.2, Peer: 9.8},
				{Year: 2019, Place: 58.5, Peer: 8.9},
				{Year: 2020, Place: 63.2, Peer: 9.0},
				{Year: 2021, Place: 66.5, Peer: 7.8},
				{Year: 2022, Place: 60.7, Peer: 7.2},
				{Year: 2023, Place: 61.0, Peer: 7.0},
			},
		},
		{
			Indicator:   "Youth Unemployment",
			Place:       "South Africa",
			PeerCountry: "China",
			PlaceValue:  61.0,
			PeerValue:   10.0,
			Gap:         51.0,
			HistoricalData: []HistoricalPoint{
				{Year: 2018, Place: 58.2, Peer: 12.1},
				{Year: 2019, Place: 58.5, Peer: 11.8},
				{Year: 2020, Place: 63.2, Peer: 13.2},
				{Year: 2021, Place: 66.5, Peer: 11.1},
				{Year: 2022, Place: 60.7, Peer: 10.5},
				{Year: 2023, Place: 61.0, Peer: 10.0},
			},
		},
	},
	"overall unemployment": {
		{
			Indicator:   "Overall Unemployment",
			Place:       "South Africa",
			PeerCountry: "South Korea",
			PlaceValue:  32.9,
			PeerValue:   3.1,
			Gap:         29.8,
			HistoricalData: []HistoricalPoint{
				{Year: 2018, Place: 27.1, Peer: 3.8},
				{Year: 2019, Place: 28.2, Peer: 3.8},
				{Year: 2020, Place: 29.2, Peer: 4.0},
				{Year: 2021, Place: 30.8, Peer: 3.6},
				{Year: 2022, Place: 32.1, Peer: 3.3},
				{Year: 2023, Place: 32.9, Peer: 3.1},
			},
		},
	},
}

var gapLens = map[string]GapLensData{
	"youth unemployment": {
		Indicator: "Youth Unemployment",
		Scenarios: []ScenarioPoint{
			{Year: 2024, Baseline: 61, Moderate: 61, Aggressive: 61},
			{Year: 2025, Baseline: 62, Moderate: 58, Aggressive: 55,
				BaselineBand: &Band{60.5, 63.5}, ModerateBand: &Band{56, 60}, AggressiveBand: &Band{52.5, 57.5}},
			{Year: 2026, Baseline: 62, Moderate: 55, Aggressive: 48,
				BaselineBand: &Band{60, 64}, ModerateBand: &Band{52.5, 57.5}, AggressiveBand: &Band{45, 51}},
			{Year: 2027, Baseline: 63, Moderate: 52, Aggressive: 42,
				BaselineBand: &Band{60.5, 65.5}, ModerateBand: &Band{49, 55}, AggressiveBand: &Band{38.5, 45.5}},
			{Year: 2028, Baseline: 63, Moderate: 50, Aggressive: 38,
				BaselineBand: &Band{60, 66}, ModerateBand: &Band{46.5, 53.5}, AggressiveBand: &Band{34, 42}},
			{Year: 2029, Baseline: 64, Moderate: 47, Aggressive: 32,
				BaselineBand: &Band{60.5, 67.5}, ModerateBand: &Band{43, 51}, AggressiveBand: &Band{27.5, 36.5}},
			{Year: 2030, Baseline: 64, Moderate: 45, Aggressive: 28,
				BaselineBand: &Band{60, 68}, ModerateBand: &Band{40.5, 49.5}, AggressiveBand: &Band{23, 33}},
		},
		Interventions: Interventions{
			Moderate: []string{
				"Expand vocational training to 300k learners/year",
				"SME hiring incentives for youth",
				"Infrastructure jobs program",
				"Digital skills bootcamps",
			},
			Aggressive: []string{
				"Industrial policy transformation",
				"Skills revolution - STEM focus",
				"Manufacturing hub development",
				"Export-oriented job creation",
				"Education system overhaul",
			},
		},
	},
	"overall unemployment": {
		Indicator: "Overall Unemployment",
		Scenarios: []ScenarioPoint{
			{Year: 2024, Baseline: 33, Moderate: 33, Aggressive: 33},
			{Year: 2025, Baseline: 34, Moderate: 31, Aggressive: 29},
			{Year: 2026, Baseline: 34, Moderate: 29, Aggressive: 26},
			{Year: 2027, Baseline: 35, Moderate: 27, Aggressive: 23},
			{Year: 2028, Baseline: 35, Moderate: 25, Aggressive: 20},
			{Year: 2029, Baseline: 36, Moderate: 23, Aggressive: 17},
			{Year: 2030, Baseline: 36, Moderate: 22, Aggressive: 15},
		},
		Interventions: Interventions{
			Moderate: []string{
				"Job creation programs",
				"Skills development initiatives",
				"Small business support",
				"Public works expansion",
			},
			Aggressive: []string{
				"Economic transformation",
				"Industrial diversification",
				"Mass skills retraining",
				"Innovation economy development",
				"Infrastructure investment surge",
			},
		},
	},
}

const generalExplanation = "This chart displays data trends and patterns to help with analysis and decision-making."

var chartExplanations = map[string]string{
	"gap-analysis": "This gap analysis chart compares South Africa's performance with a peer country over time. " +
		"The red line shows South Africa's trajectory, while the blue line represents the peer country. " +
		"The gap between these lines illustrates the performance difference we need to close. " +
		"The larger the gap, the more urgent the need for targeted interventions.",
	"kpi-card": "This KPI card shows the current status of a key indicator. The large number is the current value, " +
		"with the trend arrow indicating whether it's improving or worsening. The percentage change shows the rate of change " +
		"compared to the previous period. The target line indicates where we want to be.",
	"gap-lens": "This Gap-Lens projection shows three possible future scenarios based on different policy interventions. " +
		"The gray area represents the status quo (baseline), orange shows moderate reform impacts, " +
		"and green displays aggressive transformation results. This helps policymakers understand the potential " +
		"impact of different intervention strategies over time.",
}

var educationTrend = []EducationPoint{
	{Year: 2018, Enrollment: 78.2, Literacy: 79.1},
	{Year: 2019, Enrollment: 79.8, Literacy: 80.3},
	{Year: 2020, Enrollment: 76.5, Literacy: 81.2},
	{Year: 2021, Enrollment: 77.9, Literacy: 82.1},
	{Year: 2022, Enrollment: 81.4, Literacy: 83.5},
	{Year: 2023, Enrollment: 83.7, Literacy: 84.2},
}

var provinceUnemployment = []ProvinceRate{
	{Province: "Eastern Cape", Rate: 43.2},
	{Province: "Free State", Rate: 34.8},
	{Province: "Gauteng", Rate: 28.9},
	{Province: "KwaZulu-Natal", Rate: 31.5},
	{Province: "Limpopo", Rate: 23.1},
	{Province: "Mpumalanga", Rate: 35.7},
	{Province: "Northern Cape", Rate: 29.3},
	{Province: "North West", Rate: 38.4},
	{Province: "Western Cape", Rate: 21.8},
}

var healthCoverage = []HealthShare{
	{Category: "Public Healthcare", Value: 84.2},
	{Category: "Private Healthcare", Value: 15.8},
}

var populationSeries = []PopulationPoint{
	{Year: 2018, Population: 57.8},
	{Year: 2019, Population: 58.4},
	{Year: 2020, Population: 59.0},
	{Year: 2021, Population: 59.6},
	{Year: 2022, Population: 60.1},
	{Year: 2023, Population: 60.4},
}

var wards = []WardIndicator{
	{WardID: "79900001", WardName: "Ward 1", Municipality: "Buffalo City", Province: "Eastern Cape",
		Unemployment: 45.2, Literacy: 76.8, HealthAccess: 67.3, Population: 8421},
	{WardID: "79900002", WardName: "Ward 2", Municipality: "Buffalo City", Province: "Eastern Cape",
		Unemployment: 41.7, Literacy: 79.2, HealthAccess: 71.5, Population: 9156},
	{WardID: "52300001", WardName: "Ward 1", Municipality: "City of Cape Town", Province: "Western Cape",
		Unemployment: 18.9, Literacy: 91.3, HealthAccess: 89.7, Population: 12845},
	{WardID: "52300002", WardName: "Ward 2", Municipality: "City of Cape Town", Province: "Western Cape",
		Unemployment: 21.4, Literacy: 88.6, HealthAccess: 87.2, Population: 11234},
	{WardID: "79800001", WardName: "Ward 1", Municipality: "City of Johannesburg", Province: "Gauteng",
		Unemployment: 26.3, Literacy: 87.9, HealthAccess: 81.4, Population: 15678},
}

var headline = HeadlineKPIs{
	TotalPopulation:     60400000,
	OverallUnemployment: 32.9,
	LiteracyRate:        84.2,
	HealthcareAccess:    73.1,
	LastUpdated:         "2024-01-15",
}

var peerComparisons = []PeerComparison{
	{Country: "South Africa", YouthUnemployment: 59.7, GDPGrowth: 0.7, LiteracyRate: 84.2},
	{Country: "South Korea", YouthUnemployment: 9.8, GDPGrowth: 3.1, LiteracyRate: 97.9, Target2027: ptr(8.5)},
	{Country: "Brazil", YouthUnemployment: 17.9, GDPGrowth: 2.9, LiteracyRate: 93.2},
	{Country: "Turkey", YouthUnemployment: 19.6, GDPGrowth: 5.6, LiteracyRate: 96.2},
}

var qualityMetrics = QualityMetrics{
	Completeness: 94.7,
	Accuracy:     91.3,
	Timeliness:   87.9,
	Consistency:  96.2,
}

const (
	ProvenanceQLFS2023Q4 = "statssa-qlfs-2023q4"
	ProvenanceQLFS2024Q3 = "statssa-qlfs-2024q3"
)

var provenances = map[string]DataProvenance{
	ProvenanceQLFS2023Q4: {
		ID:                 ProvenanceQLFS2023Q4,
		SourceOrganization: "Statistics South Africa",
		DatasetName:        "Quarterly Labour Force Survey Q4 2023",
		CollectionDate:     "2023-12-31",
		PublicationDate:    "2024-01-15",
		MethodologyURL:     "https://www.statssa.gov.za/publications/P0211/P02114thQuarter2023.pdf",
		License:            "CC BY 4.0",
		Citation:           "Statistics South Africa. (2024). Quarterly Labour Force Survey Q4 2023. Pretoria: Stats SA.",
	},
	ProvenanceQLFS2024Q3: {
		ID:                 ProvenanceQLFS2024Q3,
		SourceOrganization: "Statistics South Africa (Stats SA)",
		DatasetName:        "Quarterly Labour Force Survey Q3 2024",
		CollectionDate:     "2024-07-01",
		PublicationDate:    "2024-11-30",
		MethodologyURL:     "https://www.statssa.gov.za/publications/P0211/P02113rdQuarter2024.pdf",
		License:            "CC BY 4.0",
		Citation:           "Statistics South Africa. Quarterly Labour Force Survey, Q3 2024. Pretoria: Stats SA, 2024.",
	},
}

// datasetQuality maps a dataset to the quality metadata shown next to it.
var datasetQuality = map[Dataset]DataQuality{
	DatasetKPI:         {Level: QualityHigh, Completeness: 100, LastUpdated: "2024-11-30", Source: ProvenanceQLFS2024Q3, Frequency: FrequencyQuarterly},
	DatasetGapAnalysis: {Level: QualityHigh, Completeness: 96, LastUpdated: "2024-11-30", Source: ProvenanceQLFS2024Q3, Frequency: FrequencyAnnually},
	DatasetGapLens:     {Level: QualityMedium, Completeness: 88, LastUpdated: "2024-11-30", Source: ProvenanceQLFS2024Q3, Frequency: FrequencyAnnually},
	DatasetEducation:   {Level: QualityHigh, Completeness: 100, LastUpdated: "2024-01-15", Source: ProvenanceQLFS2023Q4, Frequency: FrequencyAnnually},
	DatasetProvinces:   {Level: QualityHigh, Completeness: 100, LastUpdated: "2024-01-15", Source: ProvenanceQLFS2023Q4, Frequency: FrequencyQuarterly},
	DatasetPopulation:  {Level: QualityMedium, Completeness: 92, LastUpdated: "2024-01-15", Source: ProvenanceQLFS2023Q4, Frequency: FrequencyAnnually},
	DatasetHealth:      {Level: QualityMedium, Completeness: 85, LastUpdated: "2024-01-15", Source: ProvenanceQLFS2023Q4, Frequency: FrequencyAnnually},
	DatasetWards:       {Level: QualityLow, Completeness: 62, LastUpdated: "2024-01-15", Source: ProvenanceQLFS2023Q4, Frequency: FrequencyAnnually},
}
