package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/erikmannerfelt/manus/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Streams bundles the process streams so commands are testable without
// touching the real stdin/stdout.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// root holds the state shared by all subcommands for one invocation.
type root struct {
	streams   Streams
	logFormat string
	logLevel  string
}

// Execute parses arguments and runs the selected subcommand.
func Execute(ctx context.Context, streams Streams, args []string) error {
	r := &root{streams: streams}

	cmd := &cobra.Command{
		Use:           "manus",
		Short:         "Handle tex manuscripts.",
		Long:          "manus separates manuscript data from prose: data files (TOML/JSON) are resolved and rendered into TeX templates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.validateLogFlags()
		},
	}
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	cmd.PersistentFlags().StringVar(&r.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	cmd.AddCommand(r.buildCommand(), r.convertCommand(), r.mergeCommand())
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

func (r *root) validateLogFlags() error {
	r.logFormat = strings.ToLower(r.logFormat)
	if r.logFormat != "text" && r.logFormat != "json" {
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	r.logLevel = strings.ToLower(r.logLevel)
	switch r.logLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
}

// newApp builds the pipeline App with logs on stderr, keeping stdout free
// for rendered output.
func (r *root) newApp() *app.App {
	return app.New(r.streams.Err, app.Config{
		LogFormat: r.logFormat,
		LogLevel:  r.logLevel,
	})
}

// checkStdinConflict rejects reading both the template and the data from
// the same pipe.
func checkStdinConflict(inputArg, dataArg string) error {
	if strings.TrimSpace(inputArg) == "-" && strings.TrimSpace(dataArg) == "-" {
		return &ExitError{Code: 2, Message: "input tex and data cannot both be from stdin"}
	}
	return nil
}

func fail(err error) error {
	if _, ok := err.(*ExitError); ok {
		return err
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

func writeLines(w io.Writer, lines []string) error {
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
