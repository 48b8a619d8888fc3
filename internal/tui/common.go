package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studytrackr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewStudy
	viewSleep
)

var viewNames = []string{"Dashboard", "Study", "Sleep"}

// metricView maps a chart metric to the tab that shows it expanded.
func metricView(m store.Metric) viewState {
	if m == store.MetricSleep {
		return viewSleep
	}
	return viewStudy
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type clearStatusMsg struct {
	id int
}

type exportDoneMsg struct {
	path string
}

// expandMsg asks the App to open the expanded view of a metric.
type expandMsg struct {
	metric store.Metric
}

const statusTTL = 5 * time.Second

// --- Helpers ---

func today() string {
	return time.Now().Format(store.DateLayout)
}

// shiftDate moves a YYYY-MM-DD date by days. An unparsable date shifts from today.
func shiftDate(date string, days int) string {
	t, err := time.ParseInLocation(store.DateLayout, date, time.Local)
	if err != nil {
		t = time.Now()
	}
	return t.AddDate(0, 0, days).Format(store.DateLayout)
}

func weekday(date string) string {
	t, err := time.ParseInLocation(store.DateLayout, date, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}
