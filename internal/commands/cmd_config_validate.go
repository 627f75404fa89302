package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "toast config validate [options]",
				Description: "Loads the configuration file over the defaults and reports every invalid field.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// ValidationIssue is one problem found in the config file.
type ValidationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationReport is the outcome of validating a config file.
type ValidationReport struct {
	Path   string            `json:"path"`
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	_, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)
	report := newValidationReport(cmd.flags.ConfigPath, err)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, report); err != nil {
			return err
		}
	} else {
		writeValidationText(c.Root().Writer, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func newValidationReport(path string, err error) ValidationReport {
	report := ValidationReport{Path: path, Valid: err == nil}
	if err == nil {
		return report
	}

	var fe criterio.FieldErrors
	if errors.As(err, &fe) {
		for _, e := range fe {
			report.Issues = append(report.Issues, ValidationIssue{Field: e.Field, Message: e.Err.Error()})
		}
		return report
	}

	report.Issues = append(report.Issues, ValidationIssue{Message: err.Error()})
	return report
}

func writeValidationText(w io.Writer, report ValidationReport) {
	if report.Valid {
		_, _ = fmt.Fprintf(w, "Configuration is valid (%s)\n", report.Path)
		return
	}

	for _, issue := range report.Issues {
		if issue.Field == "" {
			_, _ = fmt.Fprintf(w, "error: %s\n", issue.Message)
			continue
		}
		_, _ = fmt.Fprintf(w, "error: %s: %s\n", issue.Field, issue.Message)
	}
	_, _ = fmt.Fprintf(w, "\n%d error(s) found in %s\n", len(report.Issues), report.Path)
}
