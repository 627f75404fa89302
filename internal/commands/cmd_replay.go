package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/toast"
	"github.com/colonyops/toast/internal/toast/replay"
	"github.com/colonyops/toast/pkg/iojson"
	"github.com/colonyops/toast/pkg/logutils"
)

type ReplayCmd struct {
	flags *Flags

	realtime bool
	detached bool
	format   string
}

// NewReplayCmd creates a new replay command.
func NewReplayCmd(flags *Flags) *ReplayCmd {
	return &ReplayCmd{flags: flags}
}

// Register adds the replay command to the application.
func (cmd *ReplayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "replay",
		Usage:     "Run a toast script and print every change",
		UsageText: "toast replay [options] <script.yaml | ->",
		Description: `Replays a YAML script of notify, dismiss and clear steps against a fresh store.

By default the run is simulated: delays and timeouts advance a virtual clock and
the command returns immediately. Pass --realtime to wait for real.

Examples:
  toast replay demo.yaml
  cat demo.yaml | toast replay -
  toast replay --detached demo.yaml   # no notifier registered`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "realtime",
				Usage:       "wait in real time instead of simulating the clock",
				Destination: &cmd.realtime,
			},
			&cli.BoolFlag{
				Name:        "detached",
				Usage:       "do not register a notifier, so notify steps are dropped",
				Destination: &cmd.detached,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "summary format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ReplayCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("replay takes one script, got %d", c.Args().Len())
	}

	script, err := readScript(c.Args().First(), os.Stdin)
	if err != nil {
		return err
	}

	// Replay owns no terminal UI, so diagnostics go to stderr beside the output.
	errOut := c.Root().ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	logger, err := logutils.NewConsole(cmd.flags.LogLevel, errOut)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	log.Logger = logger

	var clock toast.Clock = toast.NewManualClock(toast.RealClock{}.Now())
	if cmd.realtime {
		clock = toast.RealClock{}
	}

	cfg, err := cmd.flags.LoadConfig()
	if err != nil {
		return err
	}

	a := newApp(cfg, clock)
	defer a.Close()

	if err := a.serveMetrics(ctx, cmd.flags.metricsPort()); err != nil {
		return err
	}

	out := c.Root().Writer
	eventsOut := out
	if cmd.format == "json" {
		eventsOut = io.Discard
	}

	runner := replay.NewRunner(replay.Options{
		Registry: a.Registry,
		Store:    a.Store,
		Clock:    clock,
		Out:      eventsOut,
		Logger:   logging.Component("replay"),
		Detached: cmd.detached,
	})

	res, err := runner.Run(ctx, script)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	return writeSummary(out, cmd.format, res)
}

// readScript loads path, or stdin when path is empty or "-".
func readScript(path string, stdin *os.File) (*replay.Script, error) {
	if path != "" && path != "-" {
		return replay.Load(path)
	}

	if term.IsTerminal(int(stdin.Fd())) {
		return nil, fmt.Errorf("no script provided (stdin is a terminal); pass a path or pipe YAML input")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return replay.Parse(data)
}

type summaryJSON struct {
	Added   int           `json:"added"`
	Removed int           `json:"removed"`
	Live    []messageJSON `json:"live"`
}

type messageJSON struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Severity  string `json:"severity"`
	TimeoutMs int64  `json:"timeout_ms"`
}

func writeSummary(w io.Writer, format string, res replay.Result) error {
	if format == "json" {
		out := summaryJSON{
			Added:   res.Added,
			Removed: res.Removed,
			Live:    make([]messageJSON, 0, len(res.Live)),
		}
		for _, m := range res.Live {
			out.Live = append(out.Live, messageJSON{
				ID:        int64(m.ID),
				Text:      m.Text,
				Severity:  m.Severity.String(),
				TimeoutMs: m.TimeoutMs(),
			})
		}
		return iojson.WriteWith(w, os.Stderr, out)
	}

	_, _ = fmt.Fprintf(w, "\n%d added, %d removed, %d live\n", res.Added, res.Removed, len(res.Live))
	for _, m := range res.Live {
		_, _ = fmt.Fprintf(w, "  #%d %s %q\n", m.ID, m.Severity, m.Text)
	}
	return nil
}
