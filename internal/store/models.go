package store

import (
	"errors"
	"fmt"
	"strings"
)

// DateLayout is the key format of every data file.
const DateLayout = "2006-01-02"

// TaskEntry is one checklist item of a day.
type TaskEntry struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// TaskBoard maps a date to its ordered checklist.
type TaskBoard map[string][]TaskEntry

// ForDate returns the checklist of date. A missing date has no tasks.
func (b TaskBoard) ForDate(date string) []TaskEntry {
	return b[date]
}

// DateValueRecord maps a date to an hour measurement.
type DateValueRecord map[string]float64

// Snapshot is the in-memory copy of the three data files from one load cycle.
type Snapshot struct {
	Tasks TaskBoard
	Study DateValueRecord
	Sleep DateValueRecord
}

// Record returns the record backing metric m.
func (s Snapshot) Record(m Metric) DateValueRecord {
	switch m {
	case MetricStudy:
		return s.Study
	case MetricSleep:
		return s.Sleep
	}
	return nil
}

func (s Snapshot) withDefaults() Snapshot {
	if s.Tasks == nil {
		s.Tasks = TaskBoard{}
	}
	if s.Study == nil {
		s.Study = DateValueRecord{}
	}
	if s.Sleep == nil {
		s.Sleep = DateValueRecord{}
	}
	return s
}

// Metric identifies one of the charted measurements.
type Metric string

const (
	MetricStudy Metric = "study"
	MetricSleep Metric = "sleep"
)

// Metrics lists the charted metrics in display order.
var Metrics = []Metric{MetricStudy, MetricSleep}

// ErrUnknownMetric is returned by ParseMetric for anything but study or sleep.
var ErrUnknownMetric = errors.New("unknown metric")

// ParseMetric accepts a metric name or its view path ("/graph/sleep").
func ParseMetric(s string) (Metric, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, "graph/")
	for _, m := range Metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMetric, s)
}

// File is the data file path relative to the hosting root.
func (m Metric) File() string {
	return "data/" + string(m) + ".json"
}

// Route is the path of the standalone expanded view.
func (m Metric) Route() string {
	return "/graph/" + string(m)
}

// Title is the human readable chart heading.
func (m Metric) Title() string {
	switch m {
	case MetricStudy:
		return "Study Time (Hours)"
	case MetricSleep:
		return "Sleep Time (Hours)"
	}
	return string(m)
}

// Label is the dataset name shown in chart legends.
func (m Metric) Label() string {
	switch m {
	case MetricStudy:
		return "Study Hours"
	case MetricSleep:
		return "Sleep Hours"
	}
	return string(m)
}

// TasksFile is the task board path relative to the hosting root.
const TasksFile = "data/tasks.json"
