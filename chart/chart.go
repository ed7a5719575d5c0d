// Package chart renders a tick series as a PNG: mid price on top, running
// profit below, sharing one time axis.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/rustyeddy/pnlchart/series"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 900
	DefaultTitle  = "strategy pnl"

	// pixels == points at this resolution
	dpi = 72
)

var (
	background = color.RGBA{R: 24, G: 27, B: 31, A: 255}
	foreground = color.RGBA{R: 167, G: 168, B: 181, A: 255}
	gridColor  = color.RGBA{R: 41, G: 45, B: 48, A: 255}
	midColor   = color.RGBA{R: 230, G: 230, B: 0, A: 255}
	pnlColor   = color.RGBA{R: 0, G: 153, B: 0, A: 255}
)

// Options controls the rendered image. Zero values select the defaults.
type Options struct {
	Title  string
	Width  int // pixels
	Height int // pixels
	Mode   series.ProfitMode
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Mode == "" {
		o.Mode = series.PerMinute
	}
	return o
}

// Symmetric returns a range centred on first that covers both max and min.
func Symmetric(first, max, min float64) (lo, hi float64) {
	d := math.Max(math.Abs(max-first), math.Abs(min-first))
	return first - d, first + d
}

// Render writes the chart for ticks to a PNG file at path.
func Render(path string, ticks []series.Tick, opts Options) error {
	if len(ticks) == 0 {
		return series.ErrEmptyInput
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := Write(fh, ticks, opts); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// Write encodes the chart for ticks as PNG to w.
func Write(w io.Writer, ticks []series.Tick, opts Options) error {
	if len(ticks) == 0 {
		return series.ErrEmptyInput
	}
	opts = opts.withDefaults()

	mids := make(plotter.XYs, len(ticks))
	profits := make(plotter.XYs, len(ticks))
	for i, v := range series.Running(ticks, opts.Mode) {
		x := unixSeconds(ticks[i].Time)
		mids[i] = plotter.XY{X: x, Y: ticks[i].Mid}
		profits[i] = plotter.XY{X: x, Y: v}
	}

	top, err := panel(opts.Title, "mid price", mids, midColor)
	if err != nil {
		return err
	}
	bottom, err := panel("", "profit", profits, pnlColor)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width), vg.Length(opts.Height)),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(background),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Points(5),
		PadY:      vg.Points(5),
		PadTop:    vg.Points(5),
		PadBottom: vg.Points(5),
		PadLeft:   vg.Points(5),
		PadRight:  vg.Points(5),
	}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

func panel(title, label string, xys plotter.XYs, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	style(p)
	p.Title.Text = title
	p.Y.Label.Text = label

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("%s line: %w", label, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	first, low, high := xys[0].Y, xys[0].Y, xys[0].Y
	for _, xy := range xys {
		low = math.Min(low, xy.Y)
		high = math.Max(high, xy.Y)
	}
	p.Y.Min, p.Y.Max = Symmetric(first, high, low)
	if p.Y.Min == p.Y.Max {
		p.Y.Min, p.Y.Max = first-1, first+1
	}

	p.X.Min, p.X.Max = xys[0].X, xys[len(xys)-1].X
	if p.X.Min == p.X.Max {
		p.X.Max = p.X.Min + 60
	}
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04", Time: plot.UnixTimeIn(time.UTC)}
	return p, nil
}

func style(p *plot.Plot) {
	p.BackgroundColor = background
	p.Title.TextStyle.Color = foreground
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = foreground
		ax.LineStyle.Color = foreground
		ax.Tick.Label.Color = foreground
		ax.Tick.LineStyle.Color = foreground
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}
