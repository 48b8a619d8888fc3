package export

import (
	"fmt"

	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/xuri/excelize/v2"
)

// ToXLSX writes s to a single-sheet workbook named after the metric.
func ToXLSX(m store.Metric, s daily.Series, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := m.Label()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"22C55E"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, title := range []string{"Date", "Day", m.Label()} {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, header); err != nil {
			return err
		}
	}

	for i := range s.Values {
		row := i + 2
		values := []any{s.Dates[i], s.Labels[i], s.Values[i]}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}
