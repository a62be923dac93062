package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/covid-chart/consts"
)

// Sources overrides the feed URLs. Empty fields fall back to the
// covidtracking.com endpoints.
type Sources struct {
	USURL    string `json:"us_url"`
	StateURL string `json:"state_url"` // fmt pattern taking the lower-cased state code
}

// ChartConfig is everything a single run needs to fetch and draw one region.
type ChartConfig struct {
	Region        string `json:"region"`
	State         string `json:"state"`
	URL           string `json:"url"`
	OutFile       string `json:"out_file"`
	Average       int    `json:"average"`
	PositiveStart int    `json:"positive_start"`
}

// IsNational reports whether the chart covers the whole country.
func (c ChartConfig) IsNational() bool {
	return c.State == ""
}

// NewChartConfig resolves the region dependent fields. No validation is done
// on average or positiveStart.
func NewChartConfig(state string, average, positiveStart int, src Sources) ChartConfig {
	state = strings.TrimSpace(state)

	c := ChartConfig{
		State:         state,
		Average:       average,
		PositiveStart: positiveStart,
	}

	if state == "" {
		c.Region = consts.NationalRegion
		c.URL = src.USURL
		if c.URL == "" {
			c.URL = consts.CovidTrackingUSURL
		}
		c.OutFile = consts.NationalOutFile
		return c
	}

	pattern := src.StateURL
	if pattern == "" {
		pattern = consts.CovidTrackingStateURL
	}

	c.Region = cases.Upper(language.Und).String(state)
	c.URL = fmt.Sprintf(pattern, cases.Lower(language.Und).String(state))
	c.OutFile = fmt.Sprintf(consts.RegionOutFileFmt, state)
	return c
}
