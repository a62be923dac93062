package series

import (
	"math"

	"github.com/bitmark-inc/covid-chart/schema"
)

// Filter keeps the records whose cumulative positive count is strictly above
// threshold. The result may be empty.
func Filter(records []schema.DailyRecord, threshold int) []schema.DailyRecord {
	t := float64(threshold)
	kept := make([]schema.DailyRecord, 0, len(records))
	for _, r := range records {
		if r.Positive > t {
			kept = append(kept, r)
		}
	}
	return kept
}

// InfectionRate is positive tests as a percentage of all tests. A zero
// denominator is not guarded and yields Inf or NaN.
func InfectionRate(r schema.DailyRecord) float64 {
	return r.Positive / (r.Positive + r.Negative) * 100
}

// DeathRate is cumulative deaths as a percentage of cumulative positives.
func DeathRate(r schema.DailyRecord) float64 {
	return r.Death / r.Positive * 100
}

// Rolling returns the mean of each full window of size w, aligned with the
// start of the window: out[i] = mean(values[i:i+w]). Positions without a
// full window are schema.Missing, as is everything when w <= 0.
func Rolling(values []float64, w int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = schema.Missing
	}
	if w <= 0 {
		return out
	}

	for i := 0; i+w <= len(values); i++ {
		out[i] = Mean(values[i : i+w])
	}
	return out
}

// Mean of all values, NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
