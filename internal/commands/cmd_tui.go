package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/tui"
	"github.com/colonyops/toast/pkg/logutils"
)

var errNoTerminal = errors.New("stdout is not a terminal")

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the interactive toast playground",
		UsageText:   "toast tui [options]",
		Description: "Raise, dismiss and clear toasts from the keyboard. This is the default command.",
		Action:      cmd.Run,
	})
	return app
}

// Flags returns the TUI-specific flags for registration on the root command.
// Subcommands see them as well, so replay shares --metrics-port.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "metrics-port",
			Usage:       "serve Prometheus metrics on 127.0.0.1:<port> (overrides metrics.port)",
			Sources:     cli.EnvVars("TOAST_METRICS_PORT"),
			Destination: &cmd.flags.MetricsPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui: %w; try 'toast replay' instead", errNoTerminal)
	}

	cfg, err := cmd.flags.LoadConfig()
	if err != nil {
		return err
	}

	// Warnings logged while the TUI owns the screen are repeated on stderr
	// after it exits.
	notices := &logutils.Notices{}
	log.Logger = notices.Attach(log.Logger, zerolog.WarnLevel)
	defer func() { _ = notices.Flush(os.Stderr) }()

	a := newApp(cfg, nil)
	defer a.Close()

	if err := a.serveMetrics(ctx, cmd.flags.metricsPort()); err != nil {
		return err
	}

	watcher, err := config.NewWatcher(cmd.flags.ConfigPath, cmd.flags.DataDir, logging.Component("config"), a.apply)
	if err != nil {
		log.Warn().Err(err).Str("path", cmd.flags.ConfigPath).Msg("config hot reload disabled")
	} else {
		defer func() { _ = watcher.Close() }()
	}

	m := tui.New(tui.Deps{
		Store:    a.Store,
		Registry: a.Registry,
		Logger:   logging.Component("tui"),
		Width:    cfg.TUI.Width,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
