package series

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-chart/schema"
)

const logPrefix = "series"

// Derive computes the rates and rolling averages for already filtered
// records, using a window of w days.
func Derive(records []schema.DailyRecord, w int) schema.DerivedSeries {
	n := len(records)
	s := schema.DerivedSeries{
		Dates:         make([]time.Time, n),
		NewCases:      make([]float64, n),
		NewDeaths:     make([]float64, n),
		InfectionRate: make([]float64, n),
		DeathRate:     make([]float64, n),
	}

	for i, r := range records {
		s.Dates[i] = r.Date
		s.NewCases[i] = r.PositiveIncrease
		s.NewDeaths[i] = r.DeathIncrease
		s.InfectionRate[i] = InfectionRate(r)
		s.DeathRate[i] = DeathRate(r)
	}

	s.NewCasesAvg = Rolling(s.NewCases, w)
	s.NewDeathsAvg = Rolling(s.NewDeaths, w)
	s.InfectionRateAvg = Rolling(s.InfectionRate, w)
	s.DeathRateAvg = Rolling(s.DeathRate, w)

	if w <= 0 || w > n {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"window":  w,
			"records": n,
		}).Warn("no complete averaging window")
	}

	return s
}
