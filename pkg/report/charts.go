package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

// ErrEmpty means there is nothing to draw.
var ErrEmpty = errors.New("no groups to plot")

// histogramBins is the bin count of the age distribution plots.
const histogramBins = 20

// Chart carries the labels of one panel.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
}

// CountPlot draws the number of records per group.
func CountPlot(s stats.Summary, c Chart) (*plot.Plot, error) {
	return barPlot(s, c, func(g stats.Group) float64 { return float64(g.Count) }, false)
}

// RatePlot draws the survival rate per group on a [0,1] axis.
func RatePlot(s stats.Summary, c Chart) (*plot.Plot, error) {
	return barPlot(s, c, func(g stats.Group) float64 { return g.SurvivalRate }, true)
}

func barPlot(s stats.Summary, c Chart, value func(stats.Group) float64, rate bool) (*plot.Plot, error) {
	if len(s.Groups) == 0 || len(s.Levels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, s.Grouping.Name)
	}
	p := newPlot(c)

	xs := s.Levels[0]
	hues := []string{""}
	if len(s.Levels) > 1 {
		hues = s.Levels[1]
	}
	width := vg.Points(40) / vg.Length(len(hues))

	for i, hue := range hues {
		vals := make(plotter.Values, len(xs))
		for j, x := range xs {
			keys := []string{x}
			if len(s.Levels) > 1 {
				keys = append(keys, hue)
			}
			// Combinations without records stay at zero height.
			if g, ok := s.Lookup(keys...); ok {
				vals[j] = value(g)
			}
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, fmt.Errorf("bar chart %s: %w", s.Grouping.Name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = (vg.Length(i) - vg.Length(len(hues)-1)/2) * width
		p.Add(bars)
		if len(s.Levels) > 1 {
			p.Legend.Add(fmt.Sprintf("%s %s", s.Grouping.Keys[1], hue), bars)
		}
	}

	p.Legend.Top = true
	p.NominalX(xs...)
	p.Y.Min = 0
	if rate {
		p.Y.Max = 1
	}
	return p, nil
}

// AgeDistribution draws the normalized age histograms of the observed and
// the imputed column.
func AgeDistribution(observed, imputed []float64) (*plot.Plot, *plot.Plot, error) {
	left, err := histogram(observed, Chart{
		Title:  "Passenger Distribution of Age in %",
		XLabel: "Age",
		YLabel: "% of all passengers",
	})
	if err != nil {
		return nil, nil, err
	}
	right, err := histogram(imputed, Chart{
		Title:  "Passenger Distribution of Imputed Age in %",
		XLabel: "Imputed Age",
		YLabel: "% of all passengers",
	})
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func histogram(values []float64, c Chart) (*plot.Plot, error) {
	obs := stats.DropNaN(values)
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, c.Title)
	}
	h, err := plotter.NewHist(plotter.Values(obs), histogramBins)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", c.Title, err)
	}
	h.Normalize(1)
	h.FillColor = plotutil.Color(0)

	p := newPlot(c)
	p.Add(h)
	p.Y.Min = 0
	return p, nil
}

func newPlot(c Chart) *plot.Plot {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())
	return p
}

// WritePair renders two plots side by side as one PNG.
func WritePair(w io.Writer, left, right *plot.Plot, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePair writes the side-by-side PNG to path, creating its directory.
func SavePair(path string, left, right *plot.Plot, width, height vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := WritePair(f, left, right, width, height); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
