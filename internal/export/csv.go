package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

// ToCSV writes one row per point of s: date, day label and hours.
func ToCSV(m store.Metric, s daily.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Date", "Day", m.Label()}); err != nil {
		return err
	}

	for i := range s.Values {
		row := []string{
			s.Dates[i],
			s.Labels[i],
			strconv.FormatFloat(s.Values[i], 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
