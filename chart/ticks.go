package chart

import (
	"time"

	"github.com/bitmark-inc/covid-chart/utils"
)

// Ticks are the x-axis positions of a panel. Major holds one tick per week,
// the first one being the Monday on or before the most recent date and the
// following ones walking backwards. Minor holds one tick per day, ascending.
type Ticks struct {
	Major []time.Time
	Minor []time.Time
}

// WeeklyTicks builds the ticks covering dates, which must be ascending.
// For a span of N calendar days there are ceil(N/7)+1 major ticks.
func WeeklyTicks(dates []time.Time) Ticks {
	if len(dates) == 0 {
		return Ticks{}
	}

	first, last := dates[0], dates[len(dates)-1]
	span := utils.DaySpan(first, last)
	weeks := (span+6)/7 + 1

	anchor := utils.MondayOnOrBefore(last)

	major := make([]time.Time, weeks)
	for i := range major {
		major[i] = anchor.AddDate(0, 0, -7*i)
	}

	earliest := major[weeks-1]
	minor := make([]time.Time, 7*weeks)
	for i := range minor {
		minor[i] = earliest.AddDate(0, 0, i)
	}

	return Ticks{
		Major: major,
		Minor: minor,
	}
}

// Start is the earliest tick.
func (t Ticks) Start() time.Time {
	if len(t.Minor) == 0 {
		return time.Time{}
	}
	return t.Minor[0]
}

// End is the day after the last minor tick.
func (t Ticks) End() time.Time {
	if len(t.Minor) == 0 {
		return time.Time{}
	}
	return t.Minor[len(t.Minor)-1].AddDate(0, 0, 1)
}
