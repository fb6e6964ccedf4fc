package cli

import (
	"github.com/spf13/cobra"
)

// convertCommand creates the convert command. The last argument names the
// target unit; everything before it is the quantity.
func (c *CLI) convertCommand() *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "convert <text> <unit>",
		Short: "Convert a written quantity to another unit",
		Long: `Convert a written quantity to another unit.

Abstract units (storey, euro, pound sterling) need a scale relative to the
base unit of their kind. It comes from the [scales] table of the config file
or from --scale, which wins.`,
		Example: `  measure convert 5 sq ft m
  measure convert 4 storeys m --scale 3
  measure convert 100 $ EUR --scale 1.08`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, target := joinArgs(args[:len(args)-1]), args[len(args)-1]

			u, err := c.parse(cmd.Context(), text)
			if err != nil {
				return err
			}
			v, err := c.convert(u, target, scale)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), u.String(), v.String())
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 0, "scale of the abstract unit relative to its base unit")
	return cmd
}
