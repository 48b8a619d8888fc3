package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

const emptyTasksText = "No tasks added for this day."

// renderTaskList draws the checklist panel for one day. w is the panel width.
func renderTaskList(date string, s daily.TaskSummary, w int) string {
	return panelStyle.Width(w).Render(taskListBody(date, s, w-4))
}

func taskListBody(date string, s daily.TaskSummary, w int) string {
	if s.Empty() {
		return mutedStyle.Width(w).Align(lipgloss.Center).Render(emptyTasksText)
	}

	title := titleStyle.Render("Tasks for " + date)
	count := mutedStyle.Render(fmt.Sprintf("%d/%d completed", s.Completed, s.Total))
	gap := max(1, w-lipgloss.Width(title)-lipgloss.Width(count))
	header := title + strings.Repeat(" ", gap) + count

	rows := []string{header, newTaskBar(w).ViewAs(float64(s.Percent) / 100), ""}
	for _, t := range s.Tasks {
		rows = append(rows, renderTaskRow(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTaskRow(t store.TaskEntry) string {
	marker := mutedStyle.Render("○")
	if t.Done {
		marker = successStyle.Render("✓")
	}
	return marker + " " + taskRowStyle(t.Done).Render(t.Task)
}

func taskRowStyle(done bool) lipgloss.Style {
	if done {
		return doneTaskStyle
	}
	return openTaskStyle
}

// newTaskBar is the completion bar: solid green on a dark track.
func newTaskBar(w int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(colorPrimary)),
		progress.WithoutPercentage(),
		progress.WithWidth(w),
	)
	bar.EmptyColor = string(colorTrack)
	return bar
}
