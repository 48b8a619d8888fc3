// Package export writes a metric's normalised series to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sadopc/studytrackr/internal/chart"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
	PNG  Format = "png"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

// Formats lists the export formats in picker order.
var Formats = []Format{CSV, JSON, XLSX, PNG, SVG, PDF}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FileName is the default export file name, e.g. studytrackr-sleep-2024-01-31.png.
func FileName(m store.Metric, f Format, date string) string {
	return fmt.Sprintf("studytrackr-%s-%s.%s", m, date, f)
}

// Write exports s in format f, creating the parent directory of path as
// needed. Image formats render the chart with preset p.
func Write(f Format, m store.Metric, s daily.Series, p chart.Preset, path string) error {
	if !slices.Contains(Formats, f) {
		return fmt.Errorf("unsupported export format %q", f)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	switch f {
	case CSV:
		return ToCSV(m, s, path)
	case JSON:
		return ToJSON(m, s, path)
	case XLSX:
		return ToXLSX(m, s, path)
	case PDF:
		return ToPDF(m, s, path)
	case PNG, SVG:
		return ToImage(chart.Build(m.Title(), m.Label(), s, p), chart.ImageFormat(f), path)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// ToImage renders c to an image file. Nothing is written for an empty chart.
func ToImage(c chart.Config, format chart.ImageFormat, path string) error {
	if len(c.Values) == 0 {
		return chart.ErrEmptySeries
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := chart.RenderImage(c, format, out); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
