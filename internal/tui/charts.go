package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studytrackr/internal/chart"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

const compactChartHeight = 10

// renderChartCard draws one dashboard chart in its panel. The series is
// normalised from the raw record on every call.
func renderChartCard(m store.Metric, rec store.DateValueRecord, focused bool, w int) string {
	inner := w - 4

	title := titleStyle.Render(m.Title())
	hint := mutedStyle.Render("c focus")
	style := panelStyle
	if focused {
		hint = accentStyle.Render("f expand")
		style = activePanelStyle
	}
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(hint))
	header := title + strings.Repeat(" ", gap) + hint

	cfg := chart.Build(m.Title(), m.Label(), daily.Normalize(rec), chart.Compact)
	body := chart.RenderTerminal(cfg, inner, compactChartHeight)

	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}
