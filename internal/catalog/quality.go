package catalog

import (
	"fmt"
	"math"
	"time"
)

// Dataset names a fixture table for quality and provenance lookups.
type Dataset string

const (
	DatasetKPI         Dataset = "kpi"
	DatasetGapAnalysis Dataset = "gap-analysis"
	DatasetGapLens     Dataset = "gap-lens"
	DatasetEducation   Dataset = "education"
	DatasetProvinces   Dataset = "provinces"
	DatasetPopulation  Dataset = "population"
	DatasetHealth      Dataset = "health"
	DatasetWards       Dataset = "wards"
)

type QualityLevel string

const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// Label is the badge text for the level.
func (q QualityLevel) Label() string {
	switch q {
	case QualityHigh:
		return "High Quality"
	case QualityMedium:
		return "Medium Quality"
	case QualityLow:
		return "Low Quality"
	default:
		return "Unknown Quality"
	}
}

type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// DataQuality is the badge metadata shown next to a dataset.
type DataQuality struct {
	Level        QualityLevel `json:"level"`
	Completeness float64      `json:"completeness"`
	LastUpdated  string       `json:"lastUpdated"`
	Source       string       `json:"source"`
	Frequency    Frequency    `json:"frequency"`
}

// WarningLevel grades how stale a dataset is.
type WarningLevel string

const (
	WarningInfo     WarningLevel = "info"
	WarningWarning  WarningLevel = "warning"
	WarningCritical WarningLevel = "critical"
)

// DefaultFreshnessThreshold is the age in days below which no warning is raised.
const DefaultFreshnessThreshold = 7

// FreshnessWarning describes a stale dataset.
type FreshnessWarning struct {
	Level           WarningLevel `json:"level"`
	DaysSinceUpdate int          `json:"daysSinceUpdate"`
	Message         string       `json:"message"`
	LastUpdated     string       `json:"lastUpdated"`
}

const dateLayout = "2006-01-02"

// CheckFreshness returns nil when the data is younger than threshold days.
// A non-positive threshold uses DefaultFreshnessThreshold.
func CheckFreshness(lastUpdated string, now time.Time, threshold int) (*FreshnessWarning, error) {
	updated, err := time.Parse(dateLayout, lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("parse last updated date %q: %w", lastUpdated, err)
	}
	if threshold <= 0 {
		threshold = DefaultFreshnessThreshold
	}

	days := int(math.Floor(now.Sub(updated).Hours() / 24))
	if days < threshold {
		return nil, nil
	}

	warning := &FreshnessWarning{DaysSinceUpdate: days, LastUpdated: lastUpdated}
	switch {
	case days >= 30:
		warning.Level = WarningCritical
		warning.Message = fmt.Sprintf("This data is %d days old and may be significantly outdated.", days)
	case days >= 14:
		warning.Level = WarningWarning
		warning.Message = fmt.Sprintf("This data is %d days old. Consider the age when interpreting results.", days)
	default:
		warning.Level = WarningInfo
		warning.Message = fmt.Sprintf("This data was last updated %d days ago.", days)
	}
	return warning, nil
}

// RelativeAge formats the distance between then and now the way the quality badge does.
func RelativeAge(then, now time.Time) string {
	days := int(math.Ceil(math.Abs(now.Sub(then).Hours()) / 24))
	switch {
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", ceilDiv(days, 7))
	case days < 365:
		return fmt.Sprintf("%d months ago", ceilDiv(days, 30))
	default:
		return fmt.Sprintf("%d years ago", ceilDiv(days, 365))
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
