package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bitmark-inc/covid-chart/schema"
	"github.com/bitmark-inc/covid-chart/utils"
)

const (
	PanelWidth  = 960
	PanelHeight = 540
)

var (
	barColor       = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	majorGridColor = drawing.Color{R: 176, G: 176, B: 176, A: 255}
	minorGridColor = drawing.Color{R: 242, G: 242, B: 242, A: 255}
)

// Panel is one of the four charts of the figure.
type Panel struct {
	Title   string
	YLabel  string
	BarName string
	AvgName string
	Values  []float64
	Average []float64
}

// Panels returns the panels in figure order: new cases, new deaths,
// infection rate, death rate.
func Panels(cfg schema.ChartConfig, s schema.DerivedSeries) [4]Panel {
	title := func(metric string) string {
		return fmt.Sprintf("%s COVID-19 %s | %s", cfg.Region, metric, cfg.URL)
	}
	avg := func(name string) string {
		return fmt.Sprintf("%s (%d-day avg.)", name, cfg.Average)
	}

	return [4]Panel{
		{
			Title:   title("New Positive Cases"),
			YLabel:  "New Positive Cases",
			BarName: "New Cases",
			AvgName: avg("New Cases"),
			Values:  s.NewCases,
			Average: s.NewCasesAvg,
		},
		{
			Title:   title("New Deaths"),
			YLabel:  "New Deaths",
			BarName: "New Deaths",
			AvgName: avg("New Deaths"),
			Values:  s.NewDeaths,
			Average: s.NewDeathsAvg,
		},
		{
			Title:   title("Positive Test Rate"),
			YLabel:  "Infection Rate in % (Positive Tests : Total Tests)",
			BarName: "Infection Rate",
			AvgName: avg("Infection Rate"),
			Values:  s.InfectionRate,
			Average: s.InfectionRateAvg,
		},
		{
			Title:   title("Death Rate"),
			YLabel:  "Death Rate in % (Deaths : Positive Tests)",
			BarName: "Death Rate",
			AvgName: avg("Death Rate"),
			Values:  s.DeathRate,
			Average: s.DeathRateAvg,
		},
	}
}

// defined keeps the points whose value can be drawn; the rest become gaps.
func defined(dates []time.Time, values []float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if i < len(dates) && schema.IsDefined(v) {
			xs = append(xs, dates[i])
			ys = append(ys, v)
		}
	}
	return xs, ys
}

func valueRange(columns ...[]float64) (float64, float64) {
	min, max := 0.0, 0.0
	for _, col := range columns {
		for _, v := range col {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if max == min {
		max = min + 1
	}
	return min, max + (max-min)*0.05
}

func formatValue(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if math.Abs(f) >= 100 || f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.2f", f)
}

func xAxis(ticks Ticks) gochart.XAxis {
	major := make([]time.Time, len(ticks.Major))
	copy(major, ticks.Major)
	sort.Slice(major, func(i, j int) bool { return major[i].Before(major[j]) })

	labels := make([]gochart.Tick, 0, len(major))
	grid := make([]gochart.GridLine, 0, len(major)+len(ticks.Minor))
	for _, t := range ticks.Minor {
		grid = append(grid, gochart.GridLine{IsMinor: true, Value: gochart.TimeToFloat64(t)})
	}
	for _, t := range major {
		v := gochart.TimeToFloat64(t)
		labels = append(labels, gochart.Tick{Value: v, Label: t.Format(utils.DayDateLayout)})
		grid = append(grid, gochart.GridLine{Value: v})
	}
	// go-chart takes the x range from the outermost ticks, so the days
	// after the last Monday need an unlabeled closing tick.
	labels = append(labels, gochart.Tick{Value: gochart.TimeToFloat64(ticks.End())})

	return gochart.XAxis{
		Ticks:          labels,
		GridLines:      grid,
		TickStyle:      gochart.Style{TextRotationDegrees: 90},
		GridMajorStyle: gochart.Style{StrokeColor: majorGridColor, StrokeWidth: 1},
		GridMinorStyle: gochart.Style{StrokeColor: minorGridColor, StrokeWidth: 1},
	}
}

// newPanelChart builds the chart of p, nil when p has no drawable value.
func newPanelChart(p Panel, dates []time.Time, ticks Ticks) *gochart.Chart {
	barX, barY := defined(dates, p.Values)
	if len(barX) == 0 {
		return nil
	}
	avgX, avgY := defined(dates, p.Average)

	series := []gochart.Series{
		barSeries{
			Name:    p.BarName,
			YAxis:   gochart.YAxisSecondary,
			Style:   gochart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1},
			XValues: barX,
			YValues: barY,
		},
	}
	if len(avgX) > 0 {
		series = append(series, gochart.TimeSeries{
			Name:    p.AvgName,
			YAxis:   gochart.YAxisSecondary,
			Style:   gochart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 2},
			XValues: avgX,
			YValues: avgY,
		})
	}

	min, max := valueRange(barY, avgY)

	c := &gochart.Chart{
		Title:      p.Title,
		TitleStyle: gochart.Style{FontSize: 11},
		Width:      PanelWidth,
		Height:     PanelHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      xAxis(ticks),
		YAxisSecondary: gochart.YAxis{
			Name:           p.YLabel,
			NameStyle:      gochart.Style{FontSize: 9},
			ValueFormatter: formatValue,
			Range:          &gochart.ContinuousRange{Min: min, Max: max},
			GridMajorStyle: gochart.Style{StrokeColor: majorGridColor, StrokeWidth: 1},
		},
		Series: series,
	}
	// the secondary y-axis is the left hand one
	c.YAxis.Style.Hidden = true
	c.Elements = []gochart.Renderable{gochart.Legend(c)}

	return c
}

// renderPanel draws p as a PNG decoded image. A panel without a single
// drawable value comes back blank.
func renderPanel(p Panel, dates []time.Time, ticks Ticks) (image.Image, error) {
	c := newPanelChart(p, dates, ticks)
	if c == nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"panel":  p.Title,
		}).Warn("no values to draw, blank panel")
		return imaging.New(PanelWidth, PanelHeight, color.White), nil
	}

	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", p.Title, err)
	}

	return imaging.Decode(&buf)
}
