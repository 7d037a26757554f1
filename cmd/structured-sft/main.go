// Package main provides the CLI entrypoint for structured-sft.
//
// structured-sft generates synthetic supervised fine-tuning records that teach
// a model to convert between JSON, YAML, CSV, XML, TOML and plain text:
//   - generate builds random objects, renders and validates them, and writes JSONL
//   - focus samples the TOML subcategories of existing files into one file
//   - smoke re-validates every answer of a written file
//   - sample prints a single record for inspection
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"structured-sft/internal/diagnostic"
	"structured-sft/internal/logging"
)

// app carries the state shared by all subcommands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

// newRootCmd builds the command tree. A non-nil logger is used as is instead
// of building one from the --verbose flag.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "structured-sft",
		Short: "Synthetic structured-format SFT data generator",
		Long: `structured-sft generates JSONL fine-tuning records for format conversion
tasks (JSON, YAML, CSV, XML, TOML and plain text). Every answer is validated
with a real parser for its target format before it is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}

			l, err := logging.New(a.verbose)
			if err != nil {
				return err
			}

			a.logger = l

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newFocusCmd(a))
	root.AddCommand(newSmokeCmd(a))
	root.AddCommand(newSampleCmd(a))

	return root
}

// logDiagnostics writes every diagnostic at its own level.
func (a *app) logDiagnostics(d *diagnostic.Diagnostics) {
	for _, item := range d.All() {
		fields := []zap.Field{zap.String("code", item.Code)}
		if item.Subcategory != "" {
			fields = append(fields, zap.String("subcategory", item.Subcategory))
		}

		if item.Detail != "" {
			fields = append(fields, zap.String("detail", item.Detail))
		}

		switch item.Severity {
		case diagnostic.DiagnosticError:
			a.logger.Error(item.Message, fields...)
		case diagnostic.DiagnosticWarning:
			a.logger.Warn(item.Message, fields...)
		default:
			a.logger.Debug(item.Message, fields...)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(nil).ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
