package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-chart/schema"
)

const (
	logPrefix = "chart"

	figureImageName = "figure"
	// figure size in inches; the panels are drawn at 100 dpi
	figureWidth  = 19.2
	figureHeight = 10.8
)

// Renderer - interface to draw the four panel figure of a region
type Renderer interface {
	Render(w io.Writer, cfg schema.ChartConfig, s schema.DerivedSeries) error
}

type pdfRenderer struct{}

// NewPDFRenderer returns a Renderer writing a single page PDF.
func NewPDFRenderer() Renderer {
	return &pdfRenderer{}
}

func (pdfRenderer) Render(w io.Writer, cfg schema.ChartConfig, s schema.DerivedSeries) error {
	figure, err := Compose(cfg, s)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, figure, imaging.PNG); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: figureWidth, Ht: figureHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("%s COVID-19", cfg.Region), true)
	pdf.SetCreator("covid-chart", true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(figureImageName, opts, &buf)
	pdf.ImageOptions(figureImageName, 0, 0, figureWidth, figureHeight, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"region": cfg.Region,
		"points": s.Len(),
	}).Debug("figure rendered")

	return nil
}

// Compose draws the four panels into a 2x2 grid.
func Compose(cfg schema.ChartConfig, s schema.DerivedSeries) (image.Image, error) {
	ticks := WeeklyTicks(s.Dates)
	figure := imaging.New(2*PanelWidth, 2*PanelHeight, color.White)

	for i, p := range Panels(cfg, s) {
		img, err := renderPanel(p, s.Dates, ticks)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"panel":  p.Title,
				"error":  err,
			}).Error("render panel")
			return nil, err
		}

		at := image.Pt((i%2)*PanelWidth, (i/2)*PanelHeight)
		figure = imaging.Paste(figure, img, at)
	}

	return figure, nil
}
