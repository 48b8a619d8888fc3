package cli

import (
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/tui"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:       "graph <study|sleep>",
	Short:     "Open the expanded chart of one metric",
	Long:      "Open the expanded chart of one metric. The path form /graph/sleep is accepted too.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), metricArg),
	ValidArgs: []string{string(store.MetricStudy), string(store.MetricSleep)},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _ := store.ParseMetric(args[0])

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runProgram(cmd.Context(), tui.NewGraphApp(cmd.Context(), env.store, env.cfg.ExportDir, m))
	},
}

// metricArg rejects a first argument that does not name a metric.
func metricArg(cmd *cobra.Command, args []string) error {
	_, err := store.ParseMetric(args[0])
	return err
}
