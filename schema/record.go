package schema

import (
	"math"
	"time"
)

// Missing marks a value that is undefined, either blank in the feed or
// outside of a complete rolling window.
var Missing = math.NaN()

// DailyRecord is one row of the daily feed. Counts are float64 so a
// blank cell can be kept as Missing.
type DailyRecord struct {
	Date             time.Time `json:"date"`
	Positive         float64   `json:"positive"`
	Negative         float64   `json:"negative"`
	PositiveIncrease float64   `json:"positiveIncrease"`
	DeathIncrease    float64   `json:"deathIncrease"`
	Death            float64   `json:"death"`
}

// DerivedSeries holds the per-record values computed from a filtered
// slice of records. Every slice has the same length as Dates.
type DerivedSeries struct {
	Dates []time.Time `json:"dates"`

	NewCases      []float64 `json:"new_cases"`
	NewDeaths     []float64 `json:"new_deaths"`
	InfectionRate []float64 `json:"infection_rate"`
	DeathRate     []float64 `json:"death_rate"`

	NewCasesAvg      []float64 `json:"new_cases_avg"`
	NewDeathsAvg     []float64 `json:"new_deaths_avg"`
	InfectionRateAvg []float64 `json:"infection_rate_avg"`
	DeathRateAvg     []float64 `json:"death_rate_avg"`
}

// Len returns the number of records in the series.
func (s DerivedSeries) Len() int {
	return len(s.Dates)
}

// IsDefined reports whether v is a finite value that can be drawn.
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
