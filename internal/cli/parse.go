package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/measure/pkg/units"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	kinds []string // restrict matching to these kinds
	to    string   // convert the result to this unit
	base  bool     // convert the result to the base unit of its kind
}

// parseCommand creates the parse command, which decodes a quantity and
// prints its value, unit, power and kind.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a written quantity",
		Long: `Parse a written quantity such as 5'6", "5 sq cm" or "2 m 20 cm".

Arguments are joined with spaces, so quoting is only needed for shell
metacharacters.`,
		Example: `  measure parse 5 sq cm
  measure parse "5'6\"" --to cm
  measure parse 5\' --kind angle`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := c.kindsFlag(opts.kinds)
			if err != nil {
				return err
			}
			u, err := c.parse(cmd.Context(), joinArgs(args), kinds...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case opts.to != "":
				v, err := c.convert(u, opts.to, 0)
				if err != nil {
					return err
				}
				printResult(out, u.String(), v.String())
			case opts.base:
				v, err := u.ToBase()
				if err != nil {
					return err
				}
				printResult(out, u.String(), v.String())
			default:
				printUnit(out, u)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.kinds, "kind", "k", nil, "restrict matching to a kind (repeatable)")
	cmd.Flags().StringVar(&opts.to, "to", "", "convert the result to this unit")
	cmd.Flags().BoolVar(&opts.base, "base", false, "convert the result to the base unit")
	cmd.MarkFlagsMutuallyExclusive("to", "base")
	_ = cmd.RegisterFlagCompletionFunc("kind", c.completeKinds)

	return cmd
}

// printUnit prints the fields of u as key-value lines.
func printUnit(w io.Writer, u units.Unit) {
	def := u.Def()
	unit := def.Name()
	if def.Symbol() != "" {
		unit += " (" + def.Symbol() + ")"
	}
	printKeyValue(w, "value", strconv.FormatFloat(u.Value(), 'g', -1, 64))
	printKeyValue(w, "unit", unit)
	printKeyValue(w, "power", strconv.Itoa(int(u.Power())))
	printKeyValue(w, "kind", def.Kind().Name())
}
