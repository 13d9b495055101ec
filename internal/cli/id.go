package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/satcalc/internal/ident"
)

// NewIDCommand creates the id command.
func NewIDCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Print a timestamped random identifier",
		Long: `Print an identifier of the form

  timestamp YYYY-MM-DD HH:MM:SS id xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx

using local time and a random (v4) UUID.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ident.NewWithSources(rootOpts.Now, rootOpts.NewID).Generate()
			if err := newFormatter(rootOpts, cmd).Success(id); err != nil {
				return WrapExitError(ExitFailure, "failed to write output", err)
			}
			return nil
		},
	}

	return cmd
}
