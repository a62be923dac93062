package plotter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-chart/chart"
	"github.com/bitmark-inc/covid-chart/consts"
	"github.com/bitmark-inc/covid-chart/external/tracking"
	"github.com/bitmark-inc/covid-chart/schema"
	"github.com/bitmark-inc/covid-chart/series"
)

const (
	logPrefix  = "plotter"
	scopeName  = "covidchart"
	metricsTag = "region"
)

// Result describes a finished run.
type Result struct {
	Config  schema.ChartConfig
	Fetched int
	Series  schema.DerivedSeries
	Path    string
}

// Plotter runs fetch, filter, derive, plot and save for one region.
type Plotter struct {
	source   tracking.Source
	renderer chart.Renderer
	outDir   string
	scope    tally.TestScope
}

// New creates a Plotter writing into outDir, the working directory when empty.
func New(source tracking.Source, renderer chart.Renderer, outDir string) *Plotter {
	if outDir == "" {
		outDir = "."
	}

	return &Plotter{
		source:   source,
		renderer: renderer,
		outDir:   outDir,
		scope:    tally.NewTestScope(scopeName, map[string]string{}),
	}
}

// Run produces the chart file of cfg. Any error is fatal for the run.
func (p *Plotter) Run(ctx context.Context, cfg schema.ChartConfig) (*Result, error) {
	logger := log.WithFields(log.Fields{
		"prefix": logPrefix,
		"run":    uuid.New().String(),
		"region": cfg.Region,
	})
	scope := p.scope.Tagged(map[string]string{metricsTag: cfg.Region})

	if !cfg.IsNational() {
		if name, err := consts.StateName(cfg.State); err == nil {
			logger = logger.WithField("state", name)
		} else {
			logger.WithField("state", cfg.State).Warn("unknown state code")
		}
	}

	logger.WithField("url", cfg.URL).Info("fetch daily records")
	sw := scope.Timer("fetch").Start()
	records, err := p.source.Daily(ctx, cfg.URL)
	sw.Stop()
	if nil != err {
		logger.WithField("error", err).Debug("fetch daily records")
		return nil, fmt.Errorf("fetch %s: %w", cfg.URL, err)
	}
	scope.Counter("records.fetched").Inc(int64(len(records)))

	kept := series.Filter(records, cfg.PositiveStart)
	scope.Counter("records.retained").Inc(int64(len(kept)))
	logger.WithFields(log.Fields{
		"fetched":        len(records),
		"retained":       len(kept),
		"positive_start": cfg.PositiveStart,
	}).Info("filter daily records")
	if len(kept) == 0 {
		logger.Warn("no record above the positive threshold, the chart will be empty")
	}

	derived := series.Derive(kept, cfg.Average)

	path := filepath.Join(p.outDir, cfg.OutFile)
	f, err := os.Create(path)
	if nil != err {
		logger.WithField("error", err).Error("create output file")
		return nil, err
	}

	sw = scope.Timer("render").Start()
	err = p.renderer.Render(f, cfg, derived)
	sw.Stop()
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if nil != err {
		logger.WithFields(log.Fields{"path": path, "error": err}).Error("render chart")
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	logger.WithField("path", path).Info("chart saved")

	return &Result{
		Config:  cfg,
		Fetched: len(records),
		Series:  derived,
		Path:    path,
	}, nil
}

// Metrics returns the counters recorded so far, keyed by name.
func (p *Plotter) Metrics() map[string]int64 {
	counters := map[string]int64{}
	for _, c := range p.scope.Snapshot().Counters() {
		counters[c.Name()] += c.Value()
	}
	return counters
}

// LogMetrics writes the recorded counters and timers at debug level.
func (p *Plotter) LogMetrics() {
	snapshot := p.scope.Snapshot()

	fields := log.Fields{"prefix": logPrefix}
	for _, c := range snapshot.Counters() {
		fields[c.Name()] = c.Value()
	}
	for _, t := range snapshot.Timers() {
		var total int64
		for _, d := range t.Values() {
			total += int64(d)
		}
		fields[t.Name()] = fmt.Sprintf("%dms", total/1e6)
	}

	log.WithFields(fields).Debug("metrics")
}
