package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/studytrackr/internal/chart"
	"github.com/sadopc/studytrackr/internal/daily"
	"github.com/sadopc/studytrackr/internal/export"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = LeafCommand{
	Use:   "export <study|sleep>",
	Short: "Write one metric's series to a file",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), metricArg),
	StrFlags: []StringFlag{
		{Name: "format", Usage: "output format: " + formatList(), Default: string(export.CSV)},
		{Name: "out", Usage: "output path (default <export dir>/studytrackr-<metric>-<date>.<format>)"},
		{Name: "preset", Usage: "chart preset for png/svg: compact or expanded", Default: chart.Expanded.Name},
	},
	RunE: runExport,
}.Build()

func runExport(cmd *cobra.Command, args []string) error {
	m, _ := store.ParseMetric(args[0])

	formatFlag, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	presetFlag, _ := cmd.Flags().GetString("preset")
	preset, err := chart.ParsePreset(presetFlag)
	if err != nil {
		return err
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	rec, err := env.store.LoadMetric(cmd.Context(), m)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		path = filepath.Join(env.cfg.ExportDir, export.FileName(m, f, time.Now().Format(store.DateLayout)))
	}

	if err := export.Write(f, m, daily.Normalize(rec), preset, path); err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days of %s to %s\n", len(rec), m, path)
	return nil
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
