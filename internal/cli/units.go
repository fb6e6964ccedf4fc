package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/measure/pkg/render"
	"github.com/matzehuels/measure/pkg/units"
)

// unitsCommand creates the units command for inspecting the registry.
func (c *CLI) unitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Inspect the unit registry",
	}

	cmd.AddCommand(c.unitsListCommand())
	cmd.AddCommand(c.unitsGraphCommand())

	return cmd
}

// unitsListCommand creates the "units list" subcommand.
func (c *CLI) unitsListCommand() *cobra.Command {
	var kindNames []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the known units as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := c.kindsFlag(kindNames)
			if err != nil {
				return err
			}
			if len(kinds) == 0 {
				kinds = c.Registry.Kinds()
			}
			if len(c.Registry.AllDefs()) == 0 {
				printInfo(cmd.OutOrStdout(), "No units registered")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), unitsTable(c.Registry, kinds))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&kindNames, "kind", "k", nil, "only list these kinds (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("kind", c.completeKinds)
	return cmd
}

// unitsTable renders the definitions of kinds as a lipgloss table.
func unitsTable(reg *units.Registry, kinds []*units.Kind) string {
	var rows [][]string
	var bases []bool
	for _, k := range kinds {
		for _, d := range reg.Defs(k) {
			rows = append(rows, []string{
				k.Name(),
				d.Name(),
				d.Symbol(),
				formatScale(d),
				formatPower(d),
				strings.Join(d.Naming().AlternateNames, ", "),
			})
			bases = append(bases, d.IsBase())
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Unit", "Symbol", "Scale", "Power", "Also").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0 || col == 5:
				return base.Foreground(colorDim)
			case bases[row]:
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	return t.Render()
}

func formatScale(d *units.UnitDef) string {
	if d.IsAbstract() {
		return "abstract"
	}
	return strconv.FormatFloat(d.Scale(), 'g', -1, 64)
}

func formatPower(d *units.UnitDef) string {
	switch {
	case d.IsFixedPower():
		return strconv.Itoa(int(d.PowerMin()))
	case d.PowerMax() < d.PowerMin():
		return fmt.Sprintf("%d+", d.PowerMin())
	}
	return fmt.Sprintf("%d-%d", d.PowerMin(), d.PowerMax())
}

// graphOpts holds the command-line flags for the "units graph" subcommand.
type graphOpts struct {
	output   string   // output file path (stdout if empty)
	format   string   // dot, svg, pdf or png
	kinds    []string // restrict the diagram to these kinds
	detailed bool     // add scale and power range to labels
}

// unitsGraphCommand creates the "units graph" subcommand.
func (c *CLI) unitsGraphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the registry as a Graphviz diagram",
		Long: `Draw the registry as a Graphviz diagram: one cluster per kind, arrows from a
unit to its higher power siblings, dotted lines between related kinds.

The format defaults to the extension of --output, or dot on stdout. PDF and
PNG need rsvg-convert (librsvg).`,
		Example: `  measure units graph | dot -Tsvg > units.svg
  measure units graph -o units.svg --kind length --kind area`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := c.kindsFlag(opts.kinds)
			if err != nil {
				return err
			}
			if opts.format == "" {
				opts.format = formatFromPath(opts.output)
			}
			data, err := renderRegistry(cmd.Context(), c.Registry, kinds, &opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, data)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png")
	cmd.Flags().StringSliceVarP(&opts.kinds, "kind", "k", nil, "only draw these kinds (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("kind", c.completeKinds)
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show scale and power range")
	return cmd
}

// formatFromPath derives the output format from a file extension.
func formatFromPath(path string) string {
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "svg", "pdf", "png":
		return ext
	}
	return "dot"
}

func renderRegistry(ctx context.Context, reg *units.Registry, kinds []*units.Kind, opts *graphOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	dot := render.ToDOT(reg, render.Options{Detailed: opts.detailed, Kinds: kinds})
	if opts.format == "dot" {
		return []byte(dot), nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.format)
	spinner.Start()
	defer spinner.Stop()

	var (
		data []byte
		err  error
	)
	switch opts.format {
	case "svg":
		data, err = render.RenderSVG(dot)
	case "pdf":
		data, err = render.RenderPDF(dot)
	case "png":
		data, err = render.RenderPNG(dot, 2.0)
	default:
		return nil, fmt.Errorf("unknown format: %s", opts.format)
	}
	if err != nil {
		return nil, err
	}
	prog.done("Rendered registry graph")
	return data, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printSuccess(w, "Wrote %d bytes", len(data))
	printFile(w, path)
	return nil
}
