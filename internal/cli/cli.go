// Package cli implements the measure command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/measure/pkg/buildinfo"
	"github.com/matzehuels/measure/pkg/config"
	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
	"github.com/matzehuels/measure/pkg/units"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "measure"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Registry is the catalog commands parse against. Configured units are
	// added to it before the first parse seals it.
	Registry *units.Registry

	configPath string
	cfg        *config.Config
	parser     *units.Parser
}

// New creates a new CLI instance backed by the standard registry.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Registry: units.Standard(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Measure parses and converts human-written quantities",
		Long:          `Measure reads quantities such as 5'6", "5 sq cm" or "2-1/4 in", checks their dimensions and converts or combines them across SI, imperial, US customary and currency units.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.setup(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/measure/config.toml)")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.calcCommand())
	root.AddCommand(c.unitsCommand())
	root.AddCommand(c.replCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration once and applies it to the registry.
func (c *CLI) setup(ctx context.Context) error {
	if c.parser != nil {
		return nil
	}
	logger := loggerFromContext(ctx)

	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config")
	}

	defs, err := cfg.Apply(c.Registry)
	if err != nil {
		return err
	}
	if len(defs) > 0 {
		logger.Debug("registered custom units", "count", len(defs))
	}

	c.cfg = cfg
	c.parser = units.NewParser(c.Registry, units.WithLogger(logger))
	return nil
}

// config returns the loaded configuration, or the defaults before setup.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Argument Helpers
// =============================================================================

// kindsFlag resolves --kind values against the registry.
func (c *CLI) kindsFlag(names []string) ([]*units.Kind, error) {
	kinds := make([]*units.Kind, 0, len(names))
	for _, n := range names {
		k, err := c.Registry.KindByName(n)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// parse parses text with the configured parser.
func (c *CLI) parse(ctx context.Context, text string, kinds ...*units.Kind) (units.Unit, error) {
	res, err := c.parser.ParseContext(ctx, text, kinds...)
	if err != nil {
		return units.Unit{}, err
	}
	return res.Unit()
}

// convert converts u to the unit named target, supplying configured scales
// for abstract units. A non-zero scale overrides the abstract side.
func (c *CLI) convert(u units.Unit, target string, scale float64) (units.Unit, error) {
	def, err := c.findTarget(target, u.Kind())
	if err != nil {
		return units.Unit{}, err
	}

	ctx := c.config().Context(u.Def(), def)
	if scale > 0 {
		switch {
		case u.Def().IsAbstract():
			ctx.From = formula.Scale(scale)
		case def.IsAbstract():
			ctx.To = formula.Scale(scale)
		}
	}
	return u.ToWith(def, ctx)
}

// findTarget looks target up in kind, then in the kinds related to it, then
// everywhere.
func (c *CLI) findTarget(target string, kind *units.Kind) (*units.UnitDef, error) {
	if def, err := c.Registry.Find(target, kind); err == nil {
		return def, nil
	}
	if related := c.Registry.RelatedKinds(kind); len(related) > 0 {
		if def, err := c.Registry.Find(target, related...); err == nil {
			return def, nil
		}
	}
	return c.Registry.Find(target)
}

// joinArgs joins positional arguments so quantities need no shell quoting.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// completeKinds completes --kind values with the registry's kind names.
func (c *CLI) completeKinds(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	kinds := c.Registry.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
