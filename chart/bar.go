package chart

import (
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// barSeries draws one vertical bar per day on a time x-axis. go-chart's own
// BarChart only has a categorical axis, so this plugs into a regular Chart
// next to a TimeSeries.
type barSeries struct {
	Name    string
	Style   gochart.Style
	YAxis   gochart.YAxisType
	XValues []time.Time
	YValues []float64
	// Width is the share of a day each bar covers.
	Width float64
}

func (bs barSeries) GetName() string {
	return bs.Name
}

func (bs barSeries) GetStyle() gochart.Style {
	return bs.Style
}

func (bs barSeries) GetYAxis() gochart.YAxisType {
	return bs.YAxis
}

func (bs barSeries) Len() int {
	return len(bs.XValues)
}

func (bs barSeries) GetValues(index int) (float64, float64) {
	return gochart.TimeToFloat64(bs.XValues[index]), bs.YValues[index]
}

func (bs barSeries) Validate() error {
	if len(bs.XValues) == 0 {
		return fmt.Errorf("bar series must have xvalues set")
	}
	if len(bs.XValues) != len(bs.YValues) {
		return fmt.Errorf("bar series must have the same number of x and y values")
	}
	return nil
}

func (bs barSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := bs.Style.InheritFrom(defaults)

	width := bs.Width
	if width <= 0 {
		width = 0.8
	}

	day := gochart.TimeToFloat64(time.Unix(0, 0).Add(24*time.Hour)) - gochart.TimeToFloat64(time.Unix(0, 0))
	half := int(float64(xrange.Translate(xrange.GetMin()+day)-xrange.Translate(xrange.GetMin())) * width / 2)
	if half < 1 {
		half = 1
	}

	base := canvasBox.Bottom - yrange.Translate(clamp(0, yrange.GetMin(), yrange.GetMax()))

	r.SetFillColor(style.GetFillColor())
	r.SetStrokeColor(style.GetStrokeColor())
	r.SetStrokeWidth(style.GetStrokeWidth())

	for i := 0; i < bs.Len(); i++ {
		x, y := bs.GetValues(i)
		cx := canvasBox.Left + xrange.Translate(x)
		top := canvasBox.Bottom - yrange.Translate(clamp(y, yrange.GetMin(), yrange.GetMax()))

		r.MoveTo(cx-half, base)
		r.LineTo(cx-half, top)
		r.LineTo(cx+half, top)
		r.LineTo(cx+half, base)
		r.Close()
		r.FillStroke()
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
