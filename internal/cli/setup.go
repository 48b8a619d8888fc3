package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sadopc/studytrackr/internal/config"
	"github.com/sadopc/studytrackr/internal/logger"
	"github.com/sadopc/studytrackr/internal/store"
	"github.com/spf13/cobra"
)

var errNoTerminal = errors.New("the dashboard needs a terminal; use the export command to write data to a file")

const (
	flagSource   = "source"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"
)

// env is what every command needs: the effective configuration, the data
// store and the open log file.
type env struct {
	cfg   *config.Config
	store *store.Store
	log   io.Closer
}

func (e *env) Close() error { return e.log.Close() }

// setup loads the configuration, applies flag overrides, starts logging and
// opens the data source.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)

	closer, err := logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	src, err := store.Open(cfg.Source, cfg.HTTPTimeout)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open data source: %w", err)
	}

	logger.Global().Debug().
		Str("source", src.String()).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("command", cmd.Name()).
		Msg("starting")

	return &env{cfg: cfg, store: store.New(src, logger.Component("store")), log: closer}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(flagSource) {
		cfg.Source, _ = flags.GetString(flagSource)
	}
	if flags.Changed(flagLogLevel) {
		cfg.LogLevel, _ = flags.GetString(flagLogLevel)
	}
	if flags.Changed(flagLogFile) {
		cfg.LogFile, _ = flags.GetString(flagLogFile)
	}
}

func runProgram(ctx context.Context, m tea.Model) error {
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errNoTerminal
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
