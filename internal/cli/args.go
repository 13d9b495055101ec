package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var intLiteral = regexp.MustCompile(`^[+-]?[0-9]+$`)

// splitOperands parses the flags in args and returns the remaining operands.
//
// Commands that take integer operands set DisableFlagParsing so that "-1" is
// not mistaken for a shorthand flag; this does the parsing cobra skipped.
// Integer literals are always operands, everything after "--" is an operand,
// and any other "-"-prefixed token is handed to pflag together with its value.
// Global flags are applied again through prepare once parsed.
//
// helped reports that --help was given and the help text has been written.
func splitOperands(opts *RootOptions, cmd *cobra.Command, args []string) (operands []string, helped bool, err error) {
	// InheritedFlags merges the parents' persistent flags into cmd.Flags().
	cmd.InheritedFlags()
	fs := cmd.Flags()

	operands = []string{}
	var flagArgs []string
scan:
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			operands = append(operands, args[i+1:]...)
			break scan
		case arg == "-" || !strings.HasPrefix(arg, "-") || intLiteral.MatchString(arg):
			operands = append(operands, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if takesValue(fs, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		}
	}

	if err := fs.Parse(flagArgs); err != nil {
		return nil, false, cmd.FlagErrorFunc()(cmd, err)
	}
	if help, _ := fs.GetBool("help"); help {
		return nil, true, cmd.Help()
	}
	if err := prepare(opts, cmd); err != nil {
		return nil, false, err
	}
	return operands, false, nil
}

// takesValue reports whether the flag token arg expects its value in the next argument.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f = fs.Lookup(name)
	} else if short := arg[1:]; len(short) > 0 {
		// In a group like -vx only the last shorthand can take a value.
		f = fs.ShorthandLookup(short[len(short)-1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
