package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studytrackr/internal/chart"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

// expandedModel shows one metric full size. It fetches its own copy of the
// record each time it is opened and shares nothing with the dashboard.
type expandedModel struct {
	ctx    context.Context
	store  *store.Store
	metric store.Metric
	width  int
	height int

	loading bool
	record  store.DateValueRecord
	err     error

	spinner spinner.Model
}

func newExpandedModel(ctx context.Context, s *store.Store, m store.Metric) expandedModel {
	return expandedModel{
		ctx:     ctx,
		store:   s,
		metric:  m,
		record:  store.DateValueRecord{},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
}

func (e *expandedModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type metricDataMsg struct {
	metric store.Metric
	record store.DateValueRecord
	err    error
}

func (e expandedModel) open() (expandedModel, tea.Cmd) {
	if e.loading {
		return e, nil
	}
	e.loading = true
	return e, tea.Batch(e.spinner.Tick, e.loadData())
}

func (e expandedModel) loadData() tea.Cmd {
	return func() tea.Msg {
		rec, err := e.store.LoadMetric(e.ctx, e.metric)
		return metricDataMsg{metric: e.metric, record: rec, err: err}
	}
}

func (e expandedModel) update(msg tea.Msg) (expandedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case metricDataMsg:
		if msg.metric != e.metric {
			return e, nil
		}
		e.loading = false
		e.record = msg.record
		e.err = msg.err
		if msg.err != nil {
			return e, statusCmd("Could not load "+e.metric.File(), true)
		}
		return e, nil

	case spinner.TickMsg:
		if !e.loading {
			return e, nil
		}
		var cmd tea.Cmd
		e.spinner, cmd = e.spinner.Update(msg)
		return e, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Reload) {
			return e.open()
		}
	}
	return e, nil
}

func (e expandedModel) view() string {
	if e.width < 20 {
		return "Terminal too small"
	}

	w := e.width - 4
	title := titleStyle.Render(e.metric.Title() + " - Expanded View")

	if e.loading {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", e.spinner.View()+" Loading..."),
		)
	}

	series := daily.Normalize(e.record)
	rows := []string{title, renderStats(daily.Summary(series))}
	if e.err != nil {
		rows = append(rows, errorStyle.Render("Could not load "+e.metric.File()+"; press r to retry"))
	}

	// title rows, blank and panel chrome
	chartHeight := max(5, e.height-len(rows)-5)
	cfg := chart.Build(e.metric.Title(), e.metric.Label(), series, chart.Expanded)
	rows = append(rows, "", chart.RenderTerminal(cfg, w-4, chartHeight))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderStats(st daily.Stats) string {
	if st.Days == 0 {
		return mutedStyle.Render("No data")
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		mutedStyle.Render("days"), highlightStyle.Render(strconv.Itoa(st.Days)),
		mutedStyle.Render("avg"), highlightStyle.Render(formatHours(st.Average)),
		mutedStyle.Render("min"), highlightStyle.Render(formatHours(st.Min)),
		mutedStyle.Render("max"), highlightStyle.Render(formatHours(st.Max)),
	)
}
