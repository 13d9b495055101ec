package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/satcalc/internal/words"
)

// tokenList prints one token per line in text mode and as an array in JSON.
type tokenList []string

func (l tokenList) String() string {
	return strings.Join(l, "\n")
}

// NewWordsCommand creates the words command.
func NewWordsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words <text>...",
		Short: "Split text into lowercase whitespace-delimited tokens",
		Long: `Split text into lowercase tokens. Arguments are joined with a
single space first. Only whitespace separates tokens; punctuation is kept.

Example:
  satcalc words "Mary had a little lamb, she also had a bear."`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := words.Split(strings.Join(args, " "))
			rootOpts.logger().Debug("split text", "tokens", len(tokens))

			if err := newFormatter(rootOpts, cmd).Success(tokenList(tokens)); err != nil {
				return WrapExitError(ExitFailure, "failed to write output", err)
			}
			return nil
		},
	}

	return cmd
}
