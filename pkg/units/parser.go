package units

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/grammar"
	"github.com/matzehuels/measure/pkg/observability"
)

// Result is a decoded measurement.
type Result struct {
	Value float64
	Def   *UnitDef
	Power uint8
}

// Unit returns the result as a Unit value. It fails when the decoded power
// does not fit the definition, e.g. "5 liter²".
func (r Result) Unit() (Unit, error) {
	return New(r.Value, r.Def, r.Power)
}

// Parser decodes measurement text against the grammars of a registry.
// A Parser is safe for concurrent use.
type Parser struct {
	reg    *Registry
	logger *log.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger decoded measurements are reported to at debug
// level.
func WithLogger(l *log.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser returns a parser for reg.
func NewParser(reg *Registry, opts ...ParserOption) *Parser {
	p := &Parser{reg: reg, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the parser reads.
func (p *Parser) Registry() *Registry { return p.reg }

// Parse decodes text. kinds restricts the units that are recognized; without
// kinds every registered unit is.
func (p *Parser) Parse(text string, kinds ...*Kind) (Result, error) {
	return p.ParseContext(context.Background(), text, kinds...)
}

// ParseContext is Parse with a context for the observability hooks.
func (p *Parser) ParseContext(ctx context.Context, text string, kinds ...*Kind) (res Result, err error) {
	start := time.Now()
	components := 0
	observability.Parse().OnParseStart(ctx, text)
	defer func() {
		observability.Parse().OnParseComplete(ctx, text, components, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	g, err := p.reg.GrammarFor(kinds...)
	if err != nil {
		return Result{}, err
	}

	components, err = grammar.Segments(text)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "segment %q", text)
	}
	if components == 0 {
		return Result{}, errors.New(errors.ErrCodeNoNumberFound, "no number in %q", text)
	}

	matches, err := p.match(g, text, components)
	if err != nil {
		return Result{}, err
	}

	parts := make([]component, len(matches))
	for i, m := range matches {
		if parts[i], err = p.decode(m); err != nil {
			return Result{}, err
		}
	}

	res, err = p.assemble(parts)
	if err != nil {
		return Result{}, err
	}
	p.logger.Debug("parsed measurement", "text", text, "value", res.Value, "unit", res.Def.Name(), "power", res.Power)
	return res, nil
}

// match runs the case-sensitive grammar and falls back to the
// case-insensitive one when the number of unit matches differs from n.
func (p *Parser) match(g *grammar.Compiled, text string, n int) ([]grammar.Match, error) {
	for _, insensitive := range []bool{false, true} {
		ms, err := g.Match(text, insensitive)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "match %q", text)
		}
		if len(ms) == n {
			return ms, nil
		}
		p.logger.Debug("unit match count differs", "text", text, "want", n, "got", len(ms), "insensitive", insensitive)
	}
	return nil, errors.New(errors.ErrCodeNoUnitMatch, "no unit pattern matches %q", text)
}

// component is one decoded match.
type component struct {
	value    float64
	negative bool
	def      *UnitDef
	power    uint8
}

func (p *Parser) decode(m grammar.Match) (component, error) {
	c := component{negative: m.Negative}

	if m.Number != "" {
		v, err := ParseNumber(m.Number)
		if err != nil {
			return component{}, err
		}
		c.value = v
	}
	if m.FracNum != "" && m.FracDen != "" {
		num, err := ParseNumber(m.FracNum)
		if err != nil {
			return component{}, err
		}
		den, err := ParseNumber(m.FracDen)
		if err != nil {
			return component{}, err
		}
		if den == 0 {
			return component{}, errors.New(errors.ErrCodeInvalidInput, "zero denominator in %q", m.Text)
		}
		c.value += num / den
	}

	var power uint8
	if m.Power != "" {
		power, _ = grammar.ParsePower(m.Power)
	} else if m.PrePower != "" {
		power, _ = grammar.ParsePower(m.PrePower)
	}

	def, ok := p.reg.UnitDefByToken(m.Token)
	if !ok {
		return component{}, errors.New(errors.ErrCodeInternal, "grammar token %d has no unit", m.Token)
	}
	c.def, c.power = p.resolve(def, power)
	return c, nil
}

// resolve applies a parsed power directive to def. An absent directive means
// the definition's lowest power. A registered sibling for the power replaces
// def; without one def is kept.
func (p *Parser) resolve(def *UnitDef, power uint8) (*UnitDef, uint8) {
	switch power {
	case 0:
		return def, def.powerMin
	case 1:
		return def, 1
	}
	if sib := p.reg.PowerUnitDef(def, power); sib != nil {
		return sib, power
	}
	return def, power
}

// linear returns the power-1 sibling of def, or def.
func (p *Parser) linear(def *UnitDef) *UnitDef {
	if sib := p.reg.PowerUnitDef(def, 1); sib != nil {
		return sib
	}
	return def
}

// assemble combines decoded components into one result. The first component
// fixes unit, power and sign. Later components are read as plain lengths of
// their power-1 unit and must carry the accumulated power, except that a
// final component may raise a power-1 sum to its own power ("5.2'6\"²").
func (p *Parser) assemble(parts []component) (Result, error) {
	first := parts[0]
	if len(parts) == 1 {
		v := first.value
		if first.negative {
			v = -v
		}
		return Result{Value: v, Def: first.def, Power: first.power}, nil
	}

	out, power := first.def, first.power
	conv := p.linear(first.def)
	total, err := convertValue(first.value, first.def, conv, power)
	if err != nil {
		return Result{}, err
	}

	for i, c := range parts[1:] {
		last := i == len(parts)-2
		def := p.linear(c.def)
		if c.power != power {
			if !last || power != 1 {
				return Result{}, errors.New(errors.ErrCodePowerMismatch,
					"component %d has power %d, expected %d", i+2, c.power, power)
			}
			power = c.power
			if sib := p.reg.PowerUnitDef(conv, power); sib != nil {
				out = sib
			}
		}
		v, err := convertValue(c.value, def, conv, power)
		if err != nil {
			return Result{}, err
		}
		total += v
	}

	v, err := convertValue(total, conv, out, power)
	if err != nil {
		return Result{}, err
	}
	if first.negative {
		v = -v
	}
	return Result{Value: v, Def: out, Power: power}, nil
}

func convertValue(v float64, from, to *UnitDef, power uint8) (float64, error) {
	f, err := from.ToFormula(to, Context{}, power)
	if err != nil {
		return 0, err
	}
	return f.Apply(v), nil
}

// =============================================================================
// Standard registry entry points
// =============================================================================

var stdParser = NewParser(std)

// Parse decodes text with the standard registry and returns it as a Unit.
func Parse(text string, kinds ...*Kind) (Unit, error) {
	return ParseWith(stdParser, text, kinds...)
}

// ParseWith decodes text with p and returns it as a Unit.
func ParseWith(p *Parser, text string, kinds ...*Kind) (Unit, error) {
	res, err := p.Parse(text, kinds...)
	if err != nil {
		return Unit{}, err
	}
	return res.Unit()
}
