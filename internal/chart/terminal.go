package chart

import (
	"math"
	"strconv"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth  = 12
	minTerminalHeight = 5

	// PointMarker marks each day of the series on a terminal chart.
	PointMarker = '●'
)

// RenderTerminal draws c into a width x height block of terminal cells.
// Each point sits in its own column slot with its label directly below it,
// and consecutive points are joined by straight segments. Values outside
// the Y range are clamped; an empty series draws bare axes.
func RenderTerminal(c Config, width, height int) string {
	width = max(width, minTerminalWidth)
	height = max(height, minTerminalHeight)

	var legend string
	if c.Preset.ShowLegend {
		legend = terminalLegend(c)
		height = max(height-lipgloss.Height(legend), minTerminalHeight)
	}

	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dataset.Line.Over(Background)))
	axisStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Y.GridColor.Over(Background)))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Preset.TickColor.Over(Background)))
	if c.Preset.TickFontSize > Compact.TickFontSize {
		labelStyle = labelStyle.Bold(true)
	}

	// Two rows go to the X axis and its labels.
	yStep := max(1, (height-2)/max(len(c.YTicks())-1, 1))

	// Slot i spans [i-0.5, i+0.5], so no point lands on the Y axis.
	n := len(c.Values)
	lc := linechart.New(width, height, -0.5, max(float64(n)-0.5, 0.5), c.Y.Min, c.Y.Max,
		linechart.WithXYSteps(1, yStep),
		linechart.WithStyles(axisStyle, labelStyle, lineStyle),
		linechart.WithXLabelFormatter(func(int, float64) string { return "" }),
		linechart.WithYLabelFormatter(func(_ int, v float64) string {
			if c.Y.Step > 0 {
				v = math.Round(v/c.Y.Step) * c.Y.Step
			}
			return strconv.FormatFloat(v, 'f', 0, 64)
		}),
	)
	lc.DrawXYAxisAndLabel()

	points := make([]canvas.Float64Point, n)
	for i, v := range c.Points() {
		points[i] = canvas.Float64Point{X: float64(i), Y: v}
	}
	for i := 1; i < n; i++ {
		lc.DrawLine(points[i-1], points[i], runes.ArcLineStyle)
	}
	for _, p := range points {
		lc.Canvas.SetCell(cellOf(&lc, p), canvas.NewCellWithStyle(PointMarker, lineStyle))
	}
	drawXLabels(&lc, c.Labels, points, width, labelStyle)

	if legend == "" {
		return lc.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, legend, lc.View())
}

// cellOf maps a data point to the canvas cell DrawLine would use for it.
func cellOf(lc *linechart.Model, p canvas.Float64Point) canvas.Point {
	return canvas.CanvasPointFromFloat64Point(lc.Origin(), lc.ScaleFloat64PointForLine(p))
}

// drawXLabels centres each label under its point. A label that would
// touch the previous one is skipped.
func drawXLabels(lc *linechart.Model, labels []string, points []canvas.Float64Point, width int, style lipgloss.Style) {
	row := lc.Origin().Y + 1
	next := lc.Origin().X
	for i, p := range points {
		if i >= len(labels) {
			return
		}
		s := labels[i]
		start := cellOf(lc, p).X - len(s)/2
		start = max(min(start, width-len(s)), lc.Origin().X)
		if start < next {
			continue
		}
		lc.Canvas.SetStringWithStyle(canvas.Point{X: start, Y: row}, s, style)
		next = start + len(s) + 1
	}
}

func terminalLegend(c Config) string {
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Dataset.Line.Over(Background))).
		Render("━━")
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Preset.LegendColor.Over(Background))).
		Bold(true).
		Render(c.Dataset.Label)
	return swatch + " " + label
}
