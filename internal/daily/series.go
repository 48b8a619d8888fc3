// Package daily derives display values from the raw date-keyed records:
// ordered chart series and per-day task summaries. Everything here is a pure
// function of its input.
package daily

import (
	"slices"
	"strconv"
	"time"

	"github.com/sadopc/studytrackr/internal/store"
)

// Series is a chart-ready sequence. Dates, Labels and Values are index
// aligned and have the same length.
type Series struct {
	Dates  []string
	Labels []string
	Values []float64
}

func (s Series) Len() int { return len(s.Values) }

// Normalize orders rec by its date keys and labels every point with its day
// of month. ISO dates sort chronologically as plain strings, so no parsing is
// needed for ordering. Missing dates are not interpolated.
func Normalize(rec store.DateValueRecord) Series {
	dates := make([]string, 0, len(rec))
	for d := range rec {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	s := Series{
		Dates:  dates,
		Labels: make([]string, len(dates)),
		Values: make([]float64, len(dates)),
	}
	for i, d := range dates {
		s.Labels[i] = DayLabel(d)
		s.Values[i] = rec[d]
	}
	return s
}

// DayLabel returns the day of month of an ISO date, or "?" when date is not
// a calendar date.
func DayLabel(date string) string {
	t, err := time.Parse(store.DateLayout, date)
	if err != nil {
		return "?"
	}
	return strconv.Itoa(t.Day())
}
