package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/sadopc/studytrackr/internal/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "studytrackr",
	Short:        "A terminal dashboard for study hours, sleep and daily tasks",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return runProgram(cmd.Context(), tui.NewApp(cmd.Context(), env.store, env.cfg.ExportDir))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(flagSource, "", "data source: a directory or an http(s) origin (env STUDYTRACKR_SOURCE)")
	pf.String(flagLogLevel, "", "log level: debug, info, warn or error (env STUDYTRACKR_LOG_LEVEL)")
	pf.String(flagLogFile, "", "log file path, empty to disable (env STUDYTRACKR_LOG_FILE)")

	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
