package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Metric     string      `json:"metric"`
	Count      int         `json:"count"`
	Points     []jsonPoint `json:"points"`
}

type jsonPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

func ToJSON(m store.Metric, s daily.Series, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Metric:     string(m),
		Count:      s.Len(),
		Points:     make([]jsonPoint, 0, s.Len()),
	}

	for i := range s.Values {
		export.Points = append(export.Points, jsonPoint{
			Date:  s.Dates[i],
			Label: s.Labels[i],
			Hours: s.Values[i],
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
