package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ImageFormat selects the go-chart renderer.
type ImageFormat string

const (
	PNG ImageFormat = "png"
	SVG ImageFormat = "svg"
)

// ParseImageFormat accepts "png" or "svg" in any case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(s)); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// Default image sizes per preset, in pixels.
const (
	compactImageWidth   = 640
	compactImageHeight  = 320
	expandedImageWidth  = 1280
	expandedImageHeight = 720
)

// ImageSize returns the default pixel size for the preset of c.
func (c Config) ImageSize() (int, int) {
	if c.Preset.ShowLegend {
		return expandedImageWidth, expandedImageHeight
	}
	return compactImageWidth, compactImageHeight
}

// RenderImage writes c as a PNG or SVG image to w.
func RenderImage(c Config, format ImageFormat, w io.Writer) error {
	if len(c.Values) == 0 {
		return ErrEmptySeries
	}

	var provider gochart.RendererProvider
	switch format {
	case PNG:
		provider = gochart.PNG
	case SVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	width, height := c.ImageSize()
	points := c.Points()
	xs := make([]float64, len(points))
	for i := range xs {
		xs[i] = float64(i)
	}
	xs, ys, every := smooth(xs, points, c.Dataset.Tension, c.Y.Min, c.Y.Max)

	// Dots go on the data points only, never on curve samples.
	dot := toDrawing(c.Dataset.Line)
	series := gochart.ContinuousSeries{
		Name:    c.Dataset.Label,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: dot,
			StrokeWidth: 2,
			DotColor:    dot,
			DotWidth:    c.Preset.PointRadius,
			DotColorProvider: func(_, _ gochart.Range, i int, _, _ float64) drawing.Color {
				if i%every != 0 {
					return drawing.ColorTransparent
				}
				return dot
			},
			DotWidthProvider: func(_, _ gochart.Range, i int, _, _ float64) float64 {
				if i%every != 0 {
					return 0
				}
				return c.Preset.PointRadius
			},
		},
	}
	if c.Dataset.FillArea {
		series.Style.FillColor = toDrawing(c.Dataset.Fill)
	}

	tickStyle := gochart.Style{
		FontSize:  c.Preset.TickFontSize,
		FontColor: toDrawing(c.Preset.TickColor),
	}
	gridStyle := gochart.Style{
		StrokeColor: toDrawing(c.Y.GridColor),
		StrokeWidth: 1,
	}

	ch := gochart.Chart{
		Title: c.Title,
		TitleStyle: gochart.Style{
			FontSize:  c.Preset.TickFontSize + 4,
			FontColor: toDrawing(c.Preset.TickColor),
		},
		Width:  width,
		Height: height,
		Background: gochart.Style{
			FillColor: toDrawing(Background),
			Padding:   gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16},
		},
		Canvas: gochart.Style{
			FillColor: toDrawing(Background),
		},
		XAxis: gochart.XAxis{
			Style:          tickStyle,
			Range:          &gochart.ContinuousRange{Min: 0, Max: c.xMax()},
			Ticks:          c.imageXTicks(),
			GridMajorStyle: gridStyle,
		},
		YAxis: gochart.YAxis{
			Style:          tickStyle,
			Range:          &gochart.ContinuousRange{Min: c.Y.Min, Max: c.Y.Max},
			Ticks:          c.imageYTicks(),
			GridMajorStyle: gridStyle,
		},
		Series: []gochart.Series{series},
	}
	if c.Preset.ShowLegend {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch, gochart.Style{
			FontSize:    c.Preset.LegendFontSize,
			FontColor:   toDrawing(c.Preset.LegendColor),
			FillColor:   toDrawing(Background),
			StrokeColor: toDrawing(c.Y.GridColor),
		})}
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

// curveSamples is the number of samples per segment of a smoothed line.
const curveSamples = 8

// smooth samples a Bezier curve through the points with the control points
// of a tension-t spline, clamping samples to [lo, hi]. Input point i is
// sample i*every. With no tension, or fewer than three points, the input
// comes back unchanged with every = 1.
func smooth(xs, ys []float64, t, lo, hi float64) (_, _ []float64, every int) {
	n := len(xs)
	if t <= 0 || n < 3 {
		return xs, ys, 1
	}

	type point struct{ x, y float64 }
	before := make([]point, n)
	after := make([]point, n)
	for i := range n {
		prev, next := max(i-1, 0), min(i+1, n-1)
		d01 := math.Hypot(xs[i]-xs[prev], ys[i]-ys[prev])
		d12 := math.Hypot(xs[next]-xs[i], ys[next]-ys[i])
		var fa, fb float64
		if d := d01 + d12; d > 0 {
			fa, fb = t*d01/d, t*d12/d
		}
		dx, dy := xs[next]-xs[prev], ys[next]-ys[prev]
		before[i] = point{xs[i] - fa*dx, ys[i] - fa*dy}
		after[i] = point{xs[i] + fb*dx, ys[i] + fb*dy}
	}

	bezier := func(p0, p1, p2, p3, u float64) float64 {
		v := 1 - u
		return v*v*v*p0 + 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u*p3
	}
	outX := make([]float64, 0, (n-1)*curveSamples+1)
	outY := make([]float64, 0, (n-1)*curveSamples+1)
	for i := 0; i < n-1; i++ {
		for k := range curveSamples {
			u := float64(k) / curveSamples
			outX = append(outX, bezier(xs[i], after[i].x, before[i+1].x, xs[i+1], u))
			y := bezier(ys[i], after[i].y, before[i+1].y, ys[i+1], u)
			outY = append(outY, min(max(y, lo), hi))
		}
	}
	outX = append(outX, xs[n-1])
	outY = append(outY, ys[n-1])
	return outX, outY, curveSamples
}

func (c Config) imageXTicks() []gochart.Tick {
	ticks := make([]gochart.Tick, len(c.Labels))
	for i, l := range c.Labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	if len(ticks) == 1 {
		// keep the single-point range [0,1] labelled at both ends
		ticks = append(ticks, gochart.Tick{Value: 1})
	}
	return ticks
}

func (c Config) imageYTicks() []gochart.Tick {
	var ticks []gochart.Tick
	for _, v := range c.YTicks() {
		ticks = append(ticks, gochart.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
	}
	return ticks
}

func toDrawing(c RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}
