package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/satcalc/internal/config"
)

// RootOptions holds global flags and state shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is populated in PersistentPreRunE from defaults and --config.
	Config config.Config

	// Logger is set up in PersistentPreRunE and writes to stderr.
	Logger *slog.Logger

	// Now and NewID override the identifier sources (for testing).
	// Nil means time.Now and uuid.New.
	Now   func() time.Time
	NewID func() uuid.UUID
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the satcalc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satcalc",
		Short: "satcalc - saturating int32 arithmetic",
		Long: `Saturating int32 addition and small text helpers.

Run without a subcommand to add the configured operands (3 and 5 by
default) and print the result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(opts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, opts.Config.A, opts.Config.B, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML or CUE config file")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewWordsCommand(opts))
	cmd.AddCommand(NewIDCommand(opts))
	cmd.AddCommand(NewTallyCommand(opts))

	return cmd
}

// prepare validates global flags, installs the logger and loads config.
func prepare(opts *RootOptions, cmd *cobra.Command) error {
	if !isValidFormat(opts.Format) {
		// The formatter falls back to text for anything but "json".
		return newFormatter(opts, cmd).Fail(ErrCodeInvalidFlags,
			fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
	}

	opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)

	opts.Config = config.Default()
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return newFormatter(opts, cmd).Fail(ErrCodeConfig, "failed to load config", err)
		}
		opts.Config = cfg
		opts.Logger.Debug("config loaded", "path", opts.ConfigPath, "a", cfg.A, "b", cfg.B)
	}

	return nil
}

// newLogger returns a tint-backed slog logger.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(w),
	}))
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
// See https://no-color.org.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// logger returns opts.Logger, or a discarding logger when prepare has not run.
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
