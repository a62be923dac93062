package mocks

//go:generate mockgen -destination=tracking.go -package=mocks github.com/bitmark-inc/covid-chart/external/tracking Source
//go:generate mockgen -destination=chart.go -package=mocks github.com/bitmark-inc/covid-chart/chart Renderer
