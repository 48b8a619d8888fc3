package daily

import (
	"math"
	"slices"

	"github.com/sadopc/studytrackr/internal/store"
)

// TaskSummary is the completion state of one day's checklist. Tasks keeps the
// input order.
type TaskSummary struct {
	Completed int
	Total     int
	Percent   int
	Tasks     []store.TaskEntry
}

// Empty reports whether the day has no tasks. An empty summary renders the
// empty-state message rather than a progress bar.
func (s TaskSummary) Empty() bool { return s.Total == 0 }

// Summarize counts completed tasks and the rounded completion percentage.
func Summarize(tasks []store.TaskEntry) TaskSummary {
	s := TaskSummary{
		Total: len(tasks),
		Tasks: slices.Clone(tasks),
	}
	for _, t := range tasks {
		if t.Done {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// ForDate summarises the checklist of date on board.
func ForDate(board store.TaskBoard, date string) TaskSummary {
	return Summarize(board.ForDate(date))
}
