package consts

const (
	// CovidTrackingUSURL is the national daily feed.
	CovidTrackingUSURL = "https://covidtracking.com/api/v1/us/daily.csv"
	// CovidTrackingStateURL takes the lower-cased state code.
	CovidTrackingStateURL = "https://covidtracking.com/api/v1/states/%s/daily.csv"

	NationalRegion   = "US"
	NationalOutFile  = "covid_us.pdf"
	RegionOutFileFmt = "covid_%s.pdf"

	DefaultAverage       = 7
	DefaultPositiveStart = 1000
)
