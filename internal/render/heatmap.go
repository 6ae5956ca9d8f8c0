// Package render draws DP tables for people: a gonum/plot heat map with the
// chosen traceback path on top, and a tab-aligned text dump.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aria-lang/nwalign/internal/alignment"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptyTable is returned when a table has no inner cells to draw.
var ErrEmptyTable = errors.New("render: table needs both sequences non-empty")

// HeatMapOptions controls the rendered image.
type HeatMapOptions struct {
	Width, Height vg.Length
	Title         string
	// Path is drawn over the cells when non-empty.
	Path alignment.Path
	// Colors is the number of palette steps.
	Colors int
}

// DefaultHeatMapOptions returns an 8x8 inch plot with a 32 step palette.
func DefaultHeatMapOptions() HeatMapOptions {
	return HeatMapOptions{
		Width:  8 * vg.Inch,
		Height: 8 * vg.Inch,
		Title:  "Needleman-Wunsch score table",
		Colors: 32,
	}
}

// scoreGrid adapts a ScoreTable to plotter.GridXYZ. Columns follow sequence 2
// and rows follow sequence 1, so the picture reads like the printed table.
type scoreGrid struct {
	scores alignment.ScoreTable
}

func (g scoreGrid) Dims() (c, r int) {
	return len(g.scores[0]), len(g.scores)
}

func (g scoreGrid) Z(c, r int) float64 { return float64(g.scores[r][c]) }
func (g scoreGrid) X(c int) float64    { return float64(c) }
func (g scoreGrid) Y(r int) float64    { return float64(r) }

// HeatMap builds the plot for t without writing it anywhere.
func HeatMap(t *alignment.Table, opts HeatMapOptions) (*plot.Plot, error) {
	if t == nil || t.Rows() == 0 || t.Cols() == 0 {
		return nil, ErrEmptyTable
	}
	if opts.Colors <= 0 {
		opts.Colors = DefaultHeatMapOptions().Colors
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "sequence 2: " + t.Seq2
	p.Y.Label.Text = "sequence 1: " + t.Seq1
	// row 0 on top
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.X.Tick.Marker = symbolTicks("-" + t.Seq2)
	p.Y.Tick.Marker = symbolTicks("-" + t.Seq1)

	hm := plotter.NewHeatMap(scoreGrid{scores: t.Scores}, palette.Heat(opts.Colors, 1))
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	if len(opts.Path) > 0 {
		xys := make(plotter.XYs, len(opts.Path))
		for k, c := range opts.Path {
			xys[k].X = float64(c.Col)
			xys[k].Y = float64(c.Row)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("path overlay: %w", err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.Black
		p.Add(line)
	}

	return p, nil
}

// WriteHeatMap renders t as an image. format is any gonum/plot output format
// such as "png" or "svg".
func WriteHeatMap(w io.Writer, t *alignment.Table, format string, opts HeatMapOptions) error {
	p, err := HeatMap(t, opts)
	if err != nil {
		return err
	}
	if opts.Width == 0 || opts.Height == 0 {
		def := DefaultHeatMapOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveHeatMap writes the heat map to filename, choosing the format from its
// extension.
func SaveHeatMap(filename string, t *alignment.Table, opts HeatMapOptions) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format == "" {
		format = "png"
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteHeatMap(f, t, format, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// symbolTicks labels every integer position with the matching symbol, the
// leading "-" standing for the empty prefix.
func symbolTicks(labels string) plot.TickerFunc {
	return func(min, max float64) []plot.Tick {
		ticks := make([]plot.Tick, 0, len(labels))
		for i := 0; i < len(labels); i++ {
			v := float64(i)
			if v < min || v > max {
				continue
			}
			ticks = append(ticks, plot.Tick{Value: v, Label: string(labels[i])})
		}
		return ticks
	}
}
