package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/store"
)

var (
	pdfHeaderColor = props.Color{Red: 20, Green: 83, Blue: 45}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// ToPDF writes a report of s: a row per day and a summary footer. Long
// histories continue onto further pages.
func ToPDF(m store.Metric, s daily.Series, path string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	doc := maroto.New(cfg)

	doc.AddRow(14,
		text.NewCol(12, m.Title(), props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	if s.Len() > 0 {
		doc.AddRow(8,
			text.NewCol(12, fmt.Sprintf("%s to %s", s.Dates[0], s.Dates[s.Len()-1]), props.Text{
				Size:  11,
				Color: &pdfMutedColor,
			}),
		)
	}
	doc.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	doc.AddRow(7,
		text.NewCol(6, "Date", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(3, "Day", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center}),
		text.NewCol(3, "Hours", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	for i, v := range s.Values {
		doc.AddRow(6,
			text.NewCol(6, s.Dates[i], props.Text{Size: 9}),
			text.NewCol(3, s.Labels[i], props.Text{Size: 9, Align: align.Center}),
			text.NewCol(3, fmt.Sprintf("%.1f", v), props.Text{Size: 9, Align: align.Right}),
		)
	}

	st := daily.Summary(s)
	doc.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	doc.AddRow(10,
		text.NewCol(9, fmt.Sprintf("Average over %d days", st.Days), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, fmt.Sprintf("%.1f h", st.Average), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	pdf, err := doc.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	return pdf.Save(path)
}
