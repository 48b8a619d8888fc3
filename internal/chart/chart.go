// Package chart turns a daily.Series into a line chart. One Config carries
// the axis and dataset settings shared by every chart; a Preset adds the
// per-mode visual scale. The terminal and image backends both render from a
// Config, so compact and expanded charts cannot drift apart.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/studytrackr/internal/daily"
)

// ErrEmptySeries is returned by backends that cannot draw zero points.
var ErrEmptySeries = errors.New("series has no points")

// RGBA is a colour with a fractional alpha channel.
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// Over composites c onto an opaque background and returns the result as a
// #rrggbb string usable by terminal styles.
func (c RGBA) Over(bg RGBA) string {
	mix := func(fg, bg uint8) uint8 {
		return uint8(float64(fg)*c.A + float64(bg)*(1-c.A) + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

// Palette
var (
	Background = RGBA{14, 14, 14, 1}
	LineColor  = RGBA{34, 197, 94, 1}
	FillColor  = RGBA{34, 197, 94, 0.2}
	GridColor  = RGBA{255, 255, 255, 0.05}
)

// Axis is the configuration both chart modes share.
type Axis struct {
	Min, Max    float64
	Step        float64
	BeginAtZero bool
	GridColor   RGBA
	DrawTicks   bool
	ShowBorder  bool
}

// YAxis is fixed at 0–12 hours in steps of 2.
var YAxis = Axis{
	Min:         0,
	Max:         12,
	Step:        2,
	BeginAtZero: true,
	GridColor:   GridColor,
}

// XAxis shows the day-of-month labels of the series.
var XAxis = Axis{
	GridColor: GridColor,
}

// Dataset styles the single line of a chart.
//
// Tension curves the image line; the terminal draws straight segments.
// FillArea is honoured by the image backend only. PointBorder and
// PointBorderWidth describe the point ring and are not drawn by either
// backend.
type Dataset struct {
	Label            string
	Line             RGBA
	Fill             RGBA
	FillArea         bool
	Tension          float64
	PointBorder      RGBA
	PointBorderWidth float64
}

// Preset is the visual scale of one display mode.
//
// PointHoverRadius and the Tooltip fields describe pointer interaction.
// Both backends produce static output, so they are descriptive only.
type Preset struct {
	Name               string
	PointRadius        float64
	PointHoverRadius   float64
	ShowLegend         bool
	LegendFontSize     float64
	LegendColor        RGBA
	TooltipPadding     float64
	TooltipBorderWidth float64
	TooltipTitleFont   float64
	TooltipBodyFont    float64
	TickFontSize       float64
	TickColor          RGBA
}

var (
	// Compact is the embedded dashboard card.
	Compact = Preset{
		Name:               "compact",
		PointRadius:        4,
		PointHoverRadius:   6,
		ShowLegend:         false,
		TooltipPadding:     12,
		TooltipBorderWidth: 1,
		TooltipTitleFont:   12,
		TooltipBodyFont:    12,
		TickFontSize:       11,
		TickColor:          RGBA{255, 255, 255, 0.6},
	}

	// Expanded is the full-screen view.
	Expanded = Preset{
		Name:               "expanded",
		PointRadius:        6,
		PointHoverRadius:   8,
		ShowLegend:         true,
		LegendFontSize:     16,
		LegendColor:        RGBA{255, 255, 255, 0.8},
		TooltipPadding:     16,
		TooltipBorderWidth: 2,
		TooltipTitleFont:   16,
		TooltipBodyFont:    14,
		TickFontSize:       14,
		TickColor:          RGBA{255, 255, 255, 0.7},
	}
)

// ParsePreset looks a preset up by name.
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Compact.Name:
		return Compact, nil
	case Expanded.Name:
		return Expanded, nil
	}
	return Preset{}, fmt.Errorf("unknown chart preset %q", name)
}

// Config is everything a backend needs to draw one chart.
type Config struct {
	Title   string
	Labels  []string
	Values  []float64
	Dataset Dataset
	X       Axis
	Y       Axis
	Preset  Preset
}

// Build assembles the chart of s under preset p.
func Build(title, label string, s daily.Series, p Preset) Config {
	return Config{
		Title:  title,
		Labels: s.Labels,
		Values: s.Values,
		Dataset: Dataset{
			Label:            label,
			Line:             LineColor,
			Fill:             FillColor,
			FillArea:         true,
			Tension:          0.4,
			PointBorder:      Background,
			PointBorderWidth: 2,
		},
		X:      XAxis,
		Y:      YAxis,
		Preset: p,
	}
}

// Points returns the plotted values, clamped to the Y axis range. The
// underlying series is left untouched.
func (c Config) Points() []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		out[i] = min(max(v, c.Y.Min), c.Y.Max)
	}
	return out
}

// YTicks returns the labelled Y values from Min to Max by Step.
func (c Config) YTicks() []float64 {
	if c.Y.Step <= 0 {
		return []float64{c.Y.Min, c.Y.Max}
	}
	var ticks []float64
	for v := c.Y.Min; v <= c.Y.Max; v += c.Y.Step {
		ticks = append(ticks, v)
	}
	return ticks
}

// xMax is the right edge of the X range; a single point still gets a
// non-empty range.
func (c Config) xMax() float64 {
	return max(float64(len(c.Values)-1), 1)
}
