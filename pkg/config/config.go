package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
	"github.com/matzehuels/measure/pkg/units"
)

const appName = "measure"

// Config is the decoded configuration file.
type Config struct {
	Parser   ParserConfig       `toml:"parser"`
	Compare  CompareConfig      `toml:"compare"`
	Scales   map[string]float64 `toml:"scales"`
	Units    []UnitConfig       `toml:"units"`
	Siblings []SiblingConfig    `toml:"siblings"`
}

// ParserConfig tunes grammar matching.
type ParserConfig struct {
	// MatchTimeout bounds a single regex match attempt. Zero keeps the default.
	MatchTimeout time.Duration `toml:"match_timeout"`
}

// CompareConfig tunes equality of measurements.
type CompareConfig struct {
	Epsilon float64 `toml:"epsilon"`
}

// UnitConfig declares a custom unit.
type UnitConfig struct {
	Kind       string   `toml:"kind"`
	Name       string   `toml:"name"`
	Plural     string   `toml:"plural"`
	Symbol     string   `toml:"symbol"`
	Alternates []string `toml:"alternates"`
	Scale      float64  `toml:"scale"`
	Abstract   bool     `toml:"abstract"`
	Power      uint8    `toml:"power"`
	PowerMin   uint8    `toml:"power_min"`
	PowerMax   uint8    `toml:"power_max"`
	Base       bool     `toml:"base"`
}

// SiblingConfig groups units that are the same base unit at different powers.
// Units are listed by name in the order RegisterPowerSiblings expects.
type SiblingConfig struct {
	Units []string `toml:"units"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Compare: CompareConfig{Epsilon: units.DefaultEpsilon}}
}

// DefaultPath returns $XDG_CONFIG_HOME/measure/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads and validates the file at path. Keys the configuration does not
// know are INVALID_CONFIG errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// LoadDefault loads the file at [DefaultPath], returning [Default] when it
// does not exist.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes a configuration from TOML text.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that decode fine but make no sense.
func (c *Config) Validate() error {
	if c.Parser.MatchTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "parser.match_timeout must not be negative")
	}
	if c.Compare.Epsilon < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "compare.epsilon must not be negative")
	}
	for name, s := range c.Scales {
		if s <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "scales.%s must be positive", name)
		}
	}
	for i, u := range c.Units {
		switch {
		case u.Kind == "":
			return errors.New(errors.ErrCodeInvalidConfig, "units[%d] has no kind", i)
		case u.Name == "":
			return errors.New(errors.ErrCodeInvalidConfig, "units[%d] has no name", i)
		case !u.Abstract && u.Scale <= 0:
			return errors.New(errors.ErrCodeInvalidConfig, "unit %q needs a positive scale", u.Name)
		}
	}
	for i, s := range c.Siblings {
		if len(s.Units) < 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "siblings[%d] needs at least two units", i)
		}
	}
	return nil
}

// Apply sets the match timeout and registers the custom units and sibling
// groups on reg. It returns the new definitions in file order.
func (c *Config) Apply(reg *units.Registry) ([]*units.UnitDef, error) {
	if c.Parser.MatchTimeout > 0 {
		if err := reg.SetMatchTimeout(c.Parser.MatchTimeout); err != nil {
			return nil, err
		}
	}

	defs := make([]*units.UnitDef, 0, len(c.Units))
	for _, u := range c.Units {
		kind, err := reg.KindByName(u.Kind)
		if errors.Is(err, errors.ErrCodeNotFound) {
			kind, err = newKind(reg, u.Kind)
		}
		if err != nil {
			return nil, err
		}

		d, err := reg.Define(kind, u.options())
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "define unit %q", u.Name)
		}
		defs = append(defs, d)
	}

	for _, s := range c.Siblings {
		group := make([]*units.UnitDef, len(s.Units))
		for i, name := range s.Units {
			d, err := reg.Find(name)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "sibling %q", name)
			}
			group[i] = d
		}
		if err := reg.RegisterPowerSiblings(group...); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

func newKind(reg *units.Registry, name string) (*units.Kind, error) {
	if err := errors.ValidateKindName(name); err != nil {
		return nil, err
	}
	k := units.NewKind(name)
	if err := reg.AddKind(k); err != nil {
		return nil, err
	}
	return k, nil
}

func (u UnitConfig) options() units.DefOptions {
	return units.DefOptions{
		Naming: units.Naming{
			Name:           u.Name,
			NamePlural:     u.Plural,
			Symbol:         u.Symbol,
			AlternateNames: u.Alternates,
		},
		Scale:    u.Scale,
		Abstract: u.Abstract,
		Power:    u.Power,
		PowerMin: u.PowerMin,
		PowerMax: u.PowerMax,
		Base:     u.Base,
	}
}

// Scale returns the configured scale of the abstract unit def, matched by
// name or symbol without regard to case.
func (c *Config) Scale(def *units.UnitDef) (formula.Formula, bool) {
	if def == nil || !def.IsAbstract() {
		return formula.Formula{}, false
	}
	for name, s := range c.Scales {
		if strings.EqualFold(name, def.Name()) || (def.Symbol() != "" && strings.EqualFold(name, def.Symbol())) {
			return formula.Scale(s), true
		}
	}
	return formula.Formula{}, false
}

// Context builds the conversion context for converting from one unit to
// another using the configured scales.
func (c *Config) Context(from, to *units.UnitDef) units.Context {
	var ctx units.Context
	if f, ok := c.Scale(from); ok {
		ctx.From = f
	}
	if f, ok := c.Scale(to); ok {
		ctx.To = f
	}
	return ctx
}
