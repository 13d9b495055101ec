package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/satcalc/internal/satmath"
)

// AddResult is the payload of the add command and the root demo.
type AddResult struct {
	A        int32  `json:"a"`
	B        int32  `json:"b"`
	Result   int32  `json:"result"`
	Overflow string `json:"overflow"`
}

func (r AddResult) String() string {
	return fmt.Sprintf("a: %d + b: %d => result: %d", r.A, r.B, r.Result)
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Add two int32 values with saturation",
		Long: `Add two int32 values, clamping to [-2147483648, 2147483647]
instead of wrapping on overflow.

Negative operands are accepted anywhere; "--" still ends flag parsing.

Example:
  satcalc add 3 5
  satcalc add 2147483647 1
  satcalc add -2147483648 -1`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, helped, err := splitOperands(rootOpts, cmd, args)
			if helped || err != nil {
				return err
			}
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}

			formatter := newFormatter(rootOpts, cmd)

			a, err := parseOperand(args[0])
			if err != nil {
				return formatter.Fail(ErrCodeBadOperand, fmt.Sprintf("invalid operand a %q", args[0]), err)
			}
			b, err := parseOperand(args[1])
			if err != nil {
				return formatter.Fail(ErrCodeBadOperand, fmt.Sprintf("invalid operand b %q", args[1]), err)
			}

			return runAdd(rootOpts, a, b, cmd)
		},
	}

	return cmd
}

func runAdd(opts *RootOptions, a, b int32, cmd *cobra.Command) error {
	result := AddResult{
		A:        a,
		B:        b,
		Result:   satmath.Add(a, b),
		Overflow: satmath.Overflowed(a, b).String(),
	}
	opts.logger().Debug("added", "a", a, "b", b, "result", result.Result, "overflow", result.Overflow)

	if err := newFormatter(opts, cmd).Success(result); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}

// parseOperand parses a base-10 int32 literal.
func parseOperand(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
