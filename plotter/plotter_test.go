package plotter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/covid-chart/chart"
	"github.com/bitmark-inc/covid-chart/external/tracking"
	"github.com/bitmark-inc/covid-chart/mocks"
	"github.com/bitmark-inc/covid-chart/schema"
	"github.com/bitmark-inc/covid-chart/series"
)

type PlotterTestSuite struct {
	suite.Suite
	ctl      *gomock.Controller
	source   *mocks.MockSource
	renderer *mocks.MockRenderer
	outDir   string
}

func (s *PlotterTestSuite) SetupTest() {
	s.ctl = gomock.NewController(s.T())
	s.source = mocks.NewMockSource(s.ctl)
	s.renderer = mocks.NewMockRenderer(s.ctl)
	s.outDir = s.T().TempDir()
}

func (s *PlotterTestSuite) TearDownTest() {
	s.ctl.Finish()
}

// syntheticRecords has positive = 10*(i+1), crossing 100 after index 9.
func syntheticRecords(n int) []schema.DailyRecord {
	first := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	records := make([]schema.DailyRecord, n)
	for i := range records {
		records[i] = schema.DailyRecord{
			Date:             first.AddDate(0, 0, i),
			Positive:         float64(10 * (i + 1)),
			Negative:         float64(90 * (i + 1)),
			PositiveIncrease: float64(10 + i%3),
			DeathIncrease:    float64(i % 2),
			Death:            float64(i),
		}
	}
	return records
}

// syntheticCSV renders 30 rows newest first, the way the live feed does.
func syntheticCSV() (string, []float64) {
	first := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	increases := make([]float64, 30)
	lines := make([]string, 30)
	positive := 10
	for i := 0; i < 30; i++ {
		inc := 5 + (i*7)%11
		positive += inc
		increases[i] = float64(inc)
		lines[29-i] = fmt.Sprintf("%s,XX,%d,%d,%d,%d,%d",
			first.AddDate(0, 0, i).Format("20060102"), positive, 20*positive, inc, i%3, i)
	}
	return "date,state,positive,negative,positiveIncrease,deathIncrease,death\n" + strings.Join(lines, "\n") + "\n", increases
}

func (s *PlotterTestSuite) TestRunWritesChartFile() {
	cfg := schema.NewChartConfig("", 7, 100, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), cfg.URL).Return(syntheticRecords(40), nil).Times(1)

	p := New(s.source, chart.NewPDFRenderer(), s.outDir)
	result, err := p.Run(context.Background(), cfg)
	s.Require().NoError(err)

	s.Equal(filepath.Join(s.outDir, "covid_us.pdf"), result.Path)
	info, err := os.Stat(result.Path)
	s.Require().NoError(err)
	s.True(info.Size() > 0, "empty chart file")
}

func (s *PlotterTestSuite) TestRunOverwritesExistingFile() {
	cfg := schema.NewChartConfig("id", 7, 100, schema.Sources{})
	path := filepath.Join(s.outDir, "covid_id.pdf")
	s.Require().NoError(os.WriteFile(path, []byte(strings.Repeat("stale", 1000)), 0644))

	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(syntheticRecords(20), nil)
	s.renderer.EXPECT().Render(gomock.Any(), cfg, gomock.Any()).DoAndReturn(
		func(w io.Writer, _ schema.ChartConfig, _ schema.DerivedSeries) error {
			_, err := w.Write([]byte("%PDF-"))
			return err
		})

	_, err := New(s.source, s.renderer, s.outDir).Run(context.Background(), cfg)
	s.Require().NoError(err)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal("%PDF-", string(data))
}

func (s *PlotterTestSuite) TestRunFiltersFromThresholdCrossing() {
	records := syntheticRecords(30)
	cfg := schema.NewChartConfig("", 3, 100, schema.Sources{})

	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(records, nil)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ io.Writer, _ schema.ChartConfig, d schema.DerivedSeries) error {
			s.Require().Equal(20, d.Len())
			s.Equal(records[10].Date, d.Dates[0])
			return nil
		})

	result, err := New(s.source, s.renderer, s.outDir).Run(context.Background(), cfg)
	s.Require().NoError(err)
	s.Equal(30, result.Fetched)
	s.Equal(20, result.Series.Len())
}

func (s *PlotterTestSuite) TestRunNothingAboveThreshold() {
	cfg := schema.NewChartConfig("", 7, 1000000, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(syntheticRecords(10), nil)

	result, err := New(s.source, chart.NewPDFRenderer(), s.outDir).Run(context.Background(), cfg)
	s.Require().NoError(err)
	s.Equal(0, result.Series.Len())

	info, err := os.Stat(result.Path)
	s.Require().NoError(err)
	s.True(info.Size() > 0)
}

func (s *PlotterTestSuite) TestRunFetchError() {
	cfg := schema.NewChartConfig("id", 7, 1000, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(nil, tracking.ErrEmptyResponse)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := New(s.source, s.renderer, s.outDir).Run(context.Background(), cfg)
	s.ErrorIs(err, tracking.ErrEmptyResponse)

	_, statErr := os.Stat(filepath.Join(s.outDir, cfg.OutFile))
	s.True(os.IsNotExist(statErr), "no file expected on fetch failure")
}

func (s *PlotterTestSuite) TestRunFetchErrorNotLoggedAsError() {
	hook := logtest.NewGlobal()
	cfg := schema.NewChartConfig("", 7, 1000, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(nil, tracking.ErrEmptyResponse)

	_, err := New(s.source, s.renderer, s.outDir).Run(context.Background(), cfg)
	s.Require().Error(err)

	for _, entry := range hook.AllEntries() {
		s.NotEqual(log.ErrorLevel, entry.Level, entry.Message)
	}
}

func (s *PlotterTestSuite) TestRunRenderError() {
	cfg := schema.NewChartConfig("", 7, 100, schema.Sources{})
	renderErr := fmt.Errorf("no fonts")
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(syntheticRecords(20), nil)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(renderErr)

	_, err := New(s.source, s.renderer, s.outDir).Run(context.Background(), cfg)
	s.ErrorIs(err, renderErr)
}

func (s *PlotterTestSuite) TestRunMissingOutputDir() {
	cfg := schema.NewChartConfig("", 7, 100, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(syntheticRecords(20), nil)

	_, err := New(s.source, s.renderer, filepath.Join(s.outDir, "missing")).Run(context.Background(), cfg)
	s.Error(err)
}

func (s *PlotterTestSuite) TestMetrics() {
	cfg := schema.NewChartConfig("", 7, 100, schema.Sources{})
	s.source.EXPECT().Daily(gomock.Any(), gomock.Any()).Return(syntheticRecords(30), nil)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	p := New(s.source, s.renderer, s.outDir)
	_, err := p.Run(context.Background(), cfg)
	s.Require().NoError(err)

	m := p.Metrics()
	s.Equal(int64(30), m["covidchart.records.fetched"])
	s.Equal(int64(20), m["covidchart.records.retained"])
	p.LogMetrics()
}

func (s *PlotterTestSuite) TestEndToEndAgainstCSVServer() {
	body, increases := syntheticCSV()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/states/xx/daily.csv", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	cfg := schema.NewChartConfig("xx", 7, 5, schema.Sources{StateURL: ts.URL + "/states/%s/daily.csv"})
	p := New(tracking.New(ts.Client()), chart.NewPDFRenderer(), s.outDir)

	result, err := p.Run(context.Background(), cfg)
	s.Require().NoError(err)
	s.Require().Equal(30, result.Series.Len())

	s.InDelta(series.Mean(increases[0:7]), result.Series.NewCasesAvg[0], 1e-9)
	s.InDelta(series.Mean(increases[23:30]), result.Series.NewCasesAvg[23], 1e-9)

	info, err := os.Stat(filepath.Join(s.outDir, "covid_xx.pdf"))
	s.Require().NoError(err)
	s.True(info.Size() > 0)
}

func TestPlotter(t *testing.T) {
	suite.Run(t, new(PlotterTestSuite))
}
