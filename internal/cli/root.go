// Package cli implements the timepal command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aelexs/timepal/internal/config"
	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/internal/errmap"
	"github.com/aelexs/timepal/internal/observability"
	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

// Result formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// absentArg stands for a missing value on the command line.
const absentArg = "null"

// app is the state shared by every subcommand of one root command.
type app struct {
	options []timepal.Option
	facade  *timepal.Facade

	flagJSON    bool
	flagVerbose bool
	flagOutput  string
}

// NewRootCmd builds the timepal command tree. Options are applied to the
// facade built from the environment, so tests can inject a clock.
func NewRootCmd(opts ...timepal.Option) *cobra.Command {
	a := &app{options: opts}

	rootCmd := &cobra.Command{
		Use:   "timepal",
		Short: "Format, parse, convert and compare time values",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "enable JSON log output")
	rootCmd.PersistentFlags().BoolVarP(&a.flagVerbose, "verbose", "v", false, "enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVarP(&a.flagOutput, "output", "o", outputText, "result format: text, json or yaml")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	})

	rootCmd.AddCommand(
		newNowCmd(a),
		newFormatCmd(a),
		newParseCmd(a),
		newConvertCmd(a),
		newCompareCmd(a),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "timepal:", err)
		return errmap.ToExitCode(err)
	}
	return errmap.ExitOK
}

func (a *app) setup(cmd *cobra.Command) error {
	switch a.flagOutput {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, a.flagOutput)
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	facade, err := cfg.Facade(a.options...)
	if err != nil {
		return err
	}
	a.facade = facade

	format := "text"
	if a.flagJSON {
		format = "json"
	}
	observability.InitLogger(observability.LogConfig{
		Level:       chooseLevel(a.flagVerbose),
		Format:      format,
		ServiceName: "timepal",
		Environment: cfg.Environment,
		Output:      cmd.ErrOrStderr(),
		Timestamps:  facade,
	})
	slog.Debug("facade configured",
		slog.String("offset", facade.Config().Offset.String()),
		slog.String("pattern", facade.Config().Pattern.String()),
	)
	return nil
}

func chooseLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	return "warn"
}

// print writes text, or v when a structured output format was chosen.
func (a *app) print(w io.Writer, text string, v any) error {
	switch a.flagOutput {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// kindArg validates a representation name given on the command line.
func kindArg(s string) (domain.Representation, error) {
	kind := domain.Representation(s)
	if !domain.IsValidRepresentation(kind) {
		return "", fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, s)
	}
	return kind, nil
}

// valueArg turns a command-line argument into a wire value. Integers are
// epoch milliseconds for absolute kinds and "null" is an absent value.
func valueArg(kind domain.Representation, s string) protocol.Value {
	v := protocol.Value{Kind: string(kind)}
	if s == absentArg || s == "" {
		return v
	}
	if domain.IsAbsolute(kind) {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			v.EpochMillis = protocol.Millis(ms)
			return v
		}
	}
	v.Text = s
	return v
}

// valueText renders a wire value for text output.
func valueText(v protocol.Value) string {
	switch {
	case v.EpochMillis != nil:
		return strconv.FormatInt(*v.EpochMillis, 10)
	case v.Text != "":
		return v.Text
	}
	return absentArg
}

// exactArgs is cobra.ExactArgs with errors the exit-code mapping treats as
// bad input.
func exactArgs(n int) cobra.PositionalArgs {
	return badInput(cobra.ExactArgs(n))
}

func minimumArgs(n int) cobra.PositionalArgs {
	return badInput(cobra.MinimumNArgs(n))
}

func badInput(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return nil
	}
}
