package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/sadopc/studytrackr/internal/store"
)

const guideMarkdown = `### How to update data

The dashboard reads three files from **%s**:

- ` + "`%s`" + ` tasks per day, a list of ` + "`{\"task\": ..., \"done\": ...}`" + `
- ` + "`%s`" + ` study hours per day
- ` + "`%s`" + ` sleep hours per day

Dates are ` + "`YYYY-MM-DD`" + `. Edit a file, then press **r** to reload.
`

func guideText(source string) string {
	return fmt.Sprintf(guideMarkdown, source, store.TasksFile, store.MetricStudy.File(), store.MetricSleep.File())
}

// renderGuide renders the update instructions as markdown wrapped to width.
// It falls back to the raw markdown when glamour fails.
func renderGuide(source string, width int) string {
	md := guideText(source)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
