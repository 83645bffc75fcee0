// Package chart rasterizes labelled numeric series into PNG bar charts.
//
// Every render goes through a Canvas, an explicit rendering context that owns
// its parsed font and output buffer. Nothing is shared between canvases, so
// concurrent renders cannot interfere with each other.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/wcharczuk/go-chart/v2/roboto"
)

const (
	// HeadroomFactor scales the tallest bar to leave room above it.
	HeadroomFactor = 1.25

	// EmbedWidth and EmbedHeight are the on-page footprint in points
	// (6.5in x 3.25in).
	EmbedWidth  = 468.0
	EmbedHeight = 234.0
)

var ErrReleased = errors.New("chart canvas released")

type Options struct {
	Width  int
	Height int
	DPI    float64
}

// DefaultOptions renders the embed footprint at 200 DPI.
func DefaultOptions() Options {
	return Options{Width: 1300, Height: 650, DPI: 200}
}

// Spec describes one bar chart. Labels and Values are parallel and keep
// input order.
type Spec struct {
	Title  string
	YLabel string
	Labels []string
	Values []float64
}

// YMax is the top of the value axis: HeadroomFactor times the largest value,
// or 1 when there is nothing positive to scale against.
func (s Spec) YMax() float64 {
	if len(s.Values) == 0 {
		return 1
	}
	top := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > top {
			top = v
		}
	}
	if top <= 0 {
		return 1
	}
	return HeadroomFactor * top
}

// Canvas is a single-owner rendering context. It is not safe for concurrent
// use; create one per goroutine and Release it when done.
type Canvas struct {
	opts     Options
	font     *truetype.Font
	buf      bytes.Buffer
	released bool
}

func NewCanvas(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		return nil, fmt.Errorf("invalid canvas options %+v", opts)
	}
	font, err := truetype.Parse(roboto.Roboto)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}
	return &Canvas{opts: opts, font: font}, nil
}

// Release drops the canvas resources. It is safe to call more than once.
func (c *Canvas) Release() {
	if c == nil {
		return
	}
	c.font = nil
	c.buf = bytes.Buffer{}
	c.released = true
}

// RenderBar draws spec on canvas and returns a PNG owned by the caller.
func RenderBar(c *Canvas, spec Spec) ([]byte, error) {
	if c == nil || c.released {
		return nil, ErrReleased
	}
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart %q has %d labels and %d values", spec.Title, len(spec.Labels), len(spec.Values))
	}

	bars := make([]gochart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		bars = append(bars, gochart.Value{
			Label: spec.Labels[i],
			Value: v,
			Style: gochart.Style{
				FillColor:   gochart.ColorBlue,
				StrokeColor: gochart.ColorBlue,
				StrokeWidth: 1,
			},
		})
	}
	if len(bars) == 0 {
		// BarChart refuses to render without bars.
		bars = append(bars, gochart.Value{
			Style: gochart.Style{
				FillColor:   drawing.ColorTransparent,
				StrokeColor: drawing.ColorTransparent,
			},
		})
	}

	bc := gochart.BarChart{
		Title:      spec.Title,
		Width:      c.opts.Width,
		Height:     c.opts.Height,
		DPI:        c.opts.DPI,
		Font:       c.font,
		BarWidth:   c.opts.Width / 8,
		BarSpacing: c.opts.Width / 16,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: spec.YMax()},
		},
		Bars: bars,
	}

	c.buf.Reset()
	if err := bc.Render(gochart.PNG, &c.buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %q: %w", spec.Title, err)
	}

	out := make([]byte, c.buf.Len())
	copy(out, c.buf.Bytes())
	return out, nil
}

// Render acquires a default canvas, renders spec and releases the canvas on
// every path.
func Render(spec Spec) ([]byte, error) {
	c, err := NewCanvas(DefaultOptions())
	if err != nil {
		return nil, err
	}
	defer c.Release()

	return RenderBar(c, spec)
}
