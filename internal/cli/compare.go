package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/measure/pkg/errors"
)

// compareCommand creates the compare command, which orders two quantities
// of the same kind and power.
func (c *CLI) compareCommand() *cobra.Command {
	var epsilon float64

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two quantities",
		Long: `Compare two quantities of the same kind and power after converting them to
a common unit. Values closer than the epsilon (relative for magnitudes above
one) compare equal. The default epsilon comes from [compare] in the config.`,
		Example: `  measure compare 1in 2.54cm
  measure compare "1 acre" "4000 m²"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.parse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := c.parse(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			switch {
			case a.Kind() != b.Kind():
				return errors.New(errors.ErrCodeDifferentKind, "cannot compare %s with %s", a.Kind(), b.Kind())
			case a.Power() != b.Power():
				return errors.New(errors.ErrCodeDifferentPower, "cannot compare power %d with power %d", a.Power(), b.Power())
			}

			eps := epsilon
			if !cmd.Flags().Changed("epsilon") {
				eps = c.config().Compare.Epsilon
			}

			op := StyleSuccess.Render("=")
			switch a.CompareWithin(b, eps) {
			case -1:
				op = StyleNumber.Render("<")
			case 1:
				op = StyleNumber.Render(">")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", StyleValue.Render(a.String()), op, StyleValue.Render(b.String()))
			return nil
		},
	}

	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "tolerance for equality")
	return cmd
}
