package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

const loadErrorText = "Error Loading Data: could not load the JSON data files, see the log"

// dashboardModel owns the selected date and the last loaded snapshot. Every
// panel is rendered from these on each view call.
type dashboardModel struct {
	ctx    context.Context
	store  *store.Store
	width  int
	height int

	selectedDate string
	snapshot     store.Snapshot
	loading      bool
	focus        store.Metric
	showGuide    bool
	guide        string

	spinner spinner.Model
	date    datePicker
}

func newDashboardModel(ctx context.Context, s *store.Store) dashboardModel {
	return dashboardModel{
		ctx:          ctx,
		store:        s,
		selectedDate: today(),
		loading:      true,
		focus:        store.MetricStudy,
		showGuide:    true,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		date:         newDatePicker(),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return tea.Batch(d.spinner.Tick, d.loadData())
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.guide = renderGuide(d.store.Source().String(), max(20, w-8))
}

type dashboardDataMsg struct {
	snapshot store.Snapshot
	err      error
}

// loadData runs the three concurrent loads; the message arrives once all
// of them have finished.
func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		snap, err := d.store.LoadAll(d.ctx)
		return dashboardDataMsg{snapshot: snap, err: err}
	}
}

func (d dashboardModel) reload() (dashboardModel, tea.Cmd) {
	if d.loading {
		return d, nil
	}
	d.loading = true
	return d, tea.Batch(d.spinner.Tick, d.loadData())
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.snapshot = msg.snapshot
		if msg.err != nil {
			return d, statusCmd(loadErrorText, true)
		}
		return d, nil

	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	}

	if d.date.active() {
		var (
			picked string
			cmd    tea.Cmd
		)
		d.date, picked, cmd = d.date.update(msg)
		if picked != "" {
			d.selectedDate = picked
		}
		return d, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch {
	case key.Matches(km, keys.PrevDay):
		d.selectedDate = shiftDate(d.selectedDate, -1)
	case key.Matches(km, keys.NextDay):
		d.selectedDate = shiftDate(d.selectedDate, 1)
	case key.Matches(km, keys.Today):
		d.selectedDate = today()
	case key.Matches(km, keys.Date):
		var cmd tea.Cmd
		d.date, cmd = d.date.open(d.selectedDate)
		return d, cmd
	case key.Matches(km, keys.Focus):
		if d.focus == store.MetricStudy {
			d.focus = store.MetricSleep
		} else {
			d.focus = store.MetricStudy
		}
	case key.Matches(km, keys.Expand):
		m := d.focus
		return d, func() tea.Msg { return expandMsg{metric: m} }
	case key.Matches(km, keys.Reload):
		return d.reload()
	case key.Matches(km, keys.Guide):
		d.showGuide = !d.showGuide
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.date.active() {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Select Date"),
			"",
			d.date.view(),
		)
		return activePanelStyle.Width(contentWidth).Render(content)
	}

	if d.loading {
		return panelStyle.Width(contentWidth).Render(d.spinner.View() + " Loading...")
	}

	panels := []string{
		d.renderDatePanel(contentWidth),
		renderTaskList(d.selectedDate, daily.ForDate(d.snapshot.Tasks, d.selectedDate), contentWidth),
		sectionStyle.Render(" Performance Analytics"),
		d.renderCharts(contentWidth),
	}
	if d.showGuide && d.guide != "" {
		panels = append(panels, panelStyle.Width(contentWidth).Render(d.guide))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (d dashboardModel) renderDatePanel(w int) string {
	date := highlightStyle.Render(d.selectedDate)
	if wd := weekday(d.selectedDate); wd != "" {
		date += mutedStyle.Render(" (" + wd + ")")
	}
	line := fmt.Sprintf("%s %s", titleStyle.Render("Select Date:"), date)
	if d.selectedDate == today() {
		line += successStyle.Render("  today")
	}
	return barPanelStyle.Width(w).Render(line)
}

func (d dashboardModel) renderCharts(w int) string {
	if w < 96 {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderChartCard(store.MetricStudy, d.snapshot.Study, d.focus == store.MetricStudy, w),
			renderChartCard(store.MetricSleep, d.snapshot.Sleep, d.focus == store.MetricSleep, w),
		)
	}

	half := (w - 2) / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderChartCard(store.MetricStudy, d.snapshot.Study, d.focus == store.MetricStudy, half),
		renderChartCard(store.MetricSleep, d.snapshot.Sleep, d.focus == store.MetricSleep, half),
	)
}
