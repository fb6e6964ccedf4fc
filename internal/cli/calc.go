package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/units"
)

// operators maps the operator tokens calc accepts to unit arithmetic.
var operators = map[string]func(a, b units.Unit) (units.Unit, error){
	"+":   units.Unit.Add,
	"-":   units.Unit.Sub,
	"x":   units.Unit.Mul,
	"*":   units.Unit.Mul,
	"/":   units.Unit.Div,
	"%":   units.Unit.Mod,
	"mod": units.Unit.Mod,
}

// calcCommand creates the calc command for unit arithmetic.
func (c *CLI) calcCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "calc <a> <op> <b>",
		Short: "Add, subtract, multiply, divide or take the remainder of two quantities",
		Long: `Combine two quantities. The operator is one of + - x * / % mod and must be a
separate argument.

Addition, subtraction and remainder need the same kind and power; the right
operand is converted into the unit of the left. Multiplication and division
accept related kinds (length, area, volume) and add or subtract powers.`,
		Example: `  measure calc 3 m x 2 m
  measure calc 1 L / 10 cm --to cm
  measure calc "5'6\"" + 3 in`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, op, right, err := splitExpression(args)
			if err != nil {
				return err
			}

			a, err := c.parse(cmd.Context(), left)
			if err != nil {
				return err
			}
			b, err := c.parse(cmd.Context(), right)
			if err != nil {
				return err
			}
			res, err := operators[op](a, b)
			if err != nil {
				return err
			}
			if to != "" {
				if res, err = c.convert(res, to, 0); err != nil {
					return err
				}
			}

			printResult(cmd.OutOrStdout(), a.String()+" "+op+" "+b.String(), res.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "convert the result to this unit")
	return cmd
}

// splitExpression splits args at the first standalone operator that has
// arguments on both sides.
func splitExpression(args []string) (left, op, right string, err error) {
	i := slices.IndexFunc(args[1:], func(s string) bool {
		_, ok := operators[s]
		return ok
	}) + 1
	if i == 0 || i == len(args)-1 {
		return "", "", "", errors.New(errors.ErrCodeInvalidInput, "expected <a> <op> <b>, got %q", joinArgs(args))
	}
	return joinArgs(args[:i]), args[i], joinArgs(args[i+1:]), nil
}
