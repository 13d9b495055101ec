package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/satcalc/internal/store"
)

// TallyOptions holds flags for the tally commands.
type TallyOptions struct {
	*RootOptions
	Database string
}

// TallyReport is the payload of tally add and tally show.
type TallyReport struct {
	Entries []store.Entry `json:"entries"`
	Total   int32         `json:"total"`
}

func (r TallyReport) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%d\t%d\t%d\t%s\n", e.Seq, e.Value, e.Total, e.Stamp)
	}
	fmt.Fprintf(&b, "total: %d", r.Total)
	return b.String()
}

// NewTallyCommand creates the tally command group.
func NewTallyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TallyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Keep a saturating running total in a SQLite ledger",
		Long: `Append int32 values to a ledger and report the saturated running total.

The database path comes from --db, or from "database" in the config file.

Example:
  satcalc tally add --db ./tally.db 3 5 -2
  satcalc tally show --db ./tally.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (default from config)")

	cmd.AddCommand(newTallyAddCommand(opts))
	cmd.AddCommand(newTallyShowCommand(opts))

	return cmd
}

func newTallyAddCommand(opts *TallyOptions) *cobra.Command {
	return &cobra.Command{
		Use:                "add <n>...",
		Short:              "Append values to the ledger",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, helped, err := splitOperands(opts.RootOptions, cmd, args)
			if helped || err != nil {
				return err
			}
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}

			formatter := newFormatter(opts.RootOptions, cmd)

			// Parse everything first so a bad literal appends nothing.
			values := make([]int32, len(args))
			for i, arg := range args {
				v, err := parseOperand(arg)
				if err != nil {
					return formatter.Fail(ErrCodeBadOperand, fmt.Sprintf("invalid value %q", arg), err)
				}
				values[i] = v
			}

			st, err := openLedger(opts, formatter)
			if err != nil {
				return err
			}
			defer closeLedger(opts, st)

			report := TallyReport{Entries: make([]store.Entry, 0, len(values))}
			for _, v := range values {
				e, err := st.Append(cmd.Context(), v)
				if err != nil {
					return formatter.Fail(ErrCodeStoreFailed, "failed to append value", err)
				}
				report.Entries = append(report.Entries, e)
				report.Total = e.Total
			}

			if err := formatter.Success(report); err != nil {
				return WrapExitError(ExitFailure, "failed to write output", err)
			}
			return nil
		},
	}
}

func newTallyShowCommand(opts *TallyOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "List ledger entries and the running total",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			st, err := openLedger(opts, formatter)
			if err != nil {
				return err
			}
			defer closeLedger(opts, st)

			entries, err := st.Entries(cmd.Context())
			if err != nil {
				return formatter.Fail(ErrCodeStoreFailed, "failed to read ledger", err)
			}
			report := TallyReport{Entries: entries}
			if n := len(entries); n > 0 {
				report.Total = entries[n-1].Total
			}

			if err := formatter.Success(report); err != nil {
				return WrapExitError(ExitFailure, "failed to write output", err)
			}
			return nil
		},
	}
}

func openLedger(opts *TallyOptions, formatter *OutputFormatter) (*store.Store, error) {
	path := opts.Database
	if path == "" {
		path = opts.Config.Database
	}
	if path == "" {
		return nil, formatter.Fail(ErrCodeNoDatabase, "no database: pass --db or set database in the config file", nil)
	}

	opts.logger().Debug("opening ledger", "path", path)
	st, err := store.Open(path,
		store.WithClock(opts.Now),
		store.WithUUIDs(opts.NewID),
		store.WithLogger(opts.logger()),
	)
	if err != nil {
		return nil, formatter.Fail(ErrCodeStoreFailed, "failed to open database", err)
	}
	return st, nil
}

func closeLedger(opts *TallyOptions, st *store.Store) {
	if err := st.Close(); err != nil {
		opts.logger().Error("error closing database", "error", err)
	}
}
