package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studytrackr/internal/chart"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/export"
	"github.com/sadopc/studytrackr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	exportDir string
	width     int
	height    int

	activeView    viewState
	standalone    bool
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	study     expandedModel
	sleep     expandedModel

	help      help.Model
	status    string
	statusErr bool
	statusID  int
}

// NewApp builds the tabbed dashboard. Exports are written to exportDir.
func NewApp(ctx context.Context, s *store.Store, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		exportDir:  exportDir,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(ctx, s),
		study:      newExpandedModel(ctx, s, store.MetricStudy),
		sleep:      newExpandedModel(ctx, s, store.MetricSleep),
		help:       h,
	}
}

// NewGraphApp opens the expanded view of m on its own, without the
// dashboard or its tabs.
func NewGraphApp(ctx context.Context, s *store.Store, exportDir string, m store.Metric) App {
	a := NewApp(ctx, s, exportDir)
	a.standalone = true
	a.activeView = metricView(m)
	if m == store.MetricSleep {
		a.sleep.loading = true
	} else {
		a.study.loading = true
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.standalone {
		e := a.expandedFor(a.activeView)
		return tea.Batch(e.spinner.Tick, e.loadData())
	}
	return a.dashboard.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.study.setSize(a.width, contentHeight)
		a.sleep.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		}

		if !a.standalone {
			switch {
			case key.Matches(msg, keys.Tab1):
				a.activeView = viewDashboard
				return a, nil
			case key.Matches(msg, keys.Tab2):
				return a.openExpanded(store.MetricStudy)
			case key.Matches(msg, keys.Tab3):
				return a.openExpanded(store.MetricSleep)
			case key.Matches(msg, keys.Back):
				a.activeView = viewDashboard
				return a, nil
			case key.Matches(msg, keys.Tab):
				next := (a.activeView + 1) % viewState(len(viewNames))
				if next == viewDashboard {
					a.activeView = viewDashboard
					return a, nil
				}
				return a.openExpanded(a.expandedFor(next).metric)
			}
		}

	case expandMsg:
		return a.openExpanded(msg.metric)

	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case metricDataMsg:
		var cmd tea.Cmd
		if msg.metric == store.MetricSleep {
			a.sleep, cmd = a.sleep.update(msg)
		} else {
			a.study, cmd = a.study.update(msg)
		}
		return a, cmd

	case spinner.TickMsg:
		// Each spinner only answers its own ticks.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		cmds = append(cmds, cmd)
		a.study, cmd = a.study.update(msg)
		cmds = append(cmds, cmd)
		a.sleep, cmd = a.sleep.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		return a.setStatus(msg.text, msg.isError)

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.status = ""
			a.statusErr = false
		}
		return a, nil

	case exportDoneMsg:
		a.exportPicking = false
		return a.setStatus("Exported to "+msg.path, false)
	}

	return a.updateActiveView(msg)
}

// setStatus shows text in the footer until a newer status replaces it or
// statusTTL passes.
func (a App) setStatus(text string, isError bool) (App, tea.Cmd) {
	a.statusID++
	a.status = text
	a.statusErr = isError
	id := a.statusID
	return a, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (a App) openExpanded(m store.Metric) (App, tea.Cmd) {
	a.activeView = metricView(m)
	var cmd tea.Cmd
	if m == store.MetricSleep {
		a.sleep, cmd = a.sleep.open()
	} else {
		a.study, cmd = a.study.open()
	}
	return a, cmd
}

func (a App) expandedFor(v viewState) expandedModel {
	if v == viewSleep {
		return a.sleep
	}
	return a.study
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewStudy:
		a.study, cmd = a.study.update(msg)
	case viewSleep:
		a.sleep, cmd = a.sleep.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewDashboard && a.dashboard.date.active()
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewStudy:
		content = a.study.view()
	case viewSleep:
		content = a.sleep.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var right string
	if a.standalone {
		right = mutedStyle.Render(a.expandedFor(a.activeView).metric.Route())
	} else {
		var tabs []string
		for i, name := range viewNames {
			if viewState(i) == a.activeView {
				tabs = append(tabs, activeTabStyle.Render(name))
			} else {
				tabs = append(tabs, inactiveTabStyle.Render(name))
			}
		}
		right = lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	}

	title := brandStyle.Render("My study tracker") + mutedStyle.Render("  study, sleep and tasks")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, right),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

// exportTarget is the series the export picker writes: the focused chart on
// the dashboard, or the open expanded view.
func (a App) exportTarget() (store.Metric, daily.Series, chart.Preset) {
	switch a.activeView {
	case viewStudy, viewSleep:
		e := a.expandedFor(a.activeView)
		return e.metric, daily.Normalize(e.record), chart.Expanded
	}
	m := a.dashboard.focus
	return m, daily.Normalize(a.dashboard.snapshot.Record(m)), chart.Compact
}

func (a App) renderExportPicker() string {
	m, _, _ := a.exportTarget()
	title := titleStyle.Render("Export " + m.Label())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(string(f))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))
	rows = append(rows, mutedStyle.Render("  to "+a.exportDir))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	m, s, p := a.exportTarget()
	path := filepath.Join(a.exportDir, export.FileName(m, f, today()))
	return func() tea.Msg {
		if err := export.Write(f, m, s, p, path); err != nil {
			return statusMsg{text: fmt.Sprintf("%s export error: %v", strings.ToUpper(string(f)), err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
