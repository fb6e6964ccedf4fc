package units

import (
	"math"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
)

// Default power range of a general unit definition: length, area, volume.
const (
	DefaultPowerMin uint8 = 1
	DefaultPowerMax uint8 = 3
)

// DefOptions describes a unit definition to [Registry.Define] or
// [NewDetached].
type DefOptions struct {
	Naming Naming

	// Scale is the value of one of this unit in the kind's base unit. It is
	// ignored when Formula is set.
	Scale float64

	// Formula converts a value in this unit to the kind's base unit. Use it
	// for conversions that are not a plain factor.
	Formula formula.Formula

	// Abstract marks a unit whose scale is supplied at conversion time
	// (storeys, foreign currency).
	Abstract bool

	// Power fixes the exponent of the unit (liter is always a volume).
	Power uint8

	// PowerMin and PowerMax set the exponent range of a general unit.
	// Zero selects the defaults. PowerMax below PowerMin means unbounded.
	PowerMin uint8
	PowerMax uint8

	// SuppressPowerDecoration omits the "²" or "³" when rendering a unit
	// whose name already carries its power.
	SuppressPowerDecoration bool

	// Base marks the definition as the base unit of its kind.
	Base bool
}

// UnitDef is one concrete unit: centimeter, foot, liter. Definitions are
// created once, never mutated and compared by identity.
type UnitDef struct {
	token    int
	kind     *Kind
	naming   Naming
	powerMin uint8
	powerMax uint8
	formula  formula.Formula
	abstract bool
	fixed    bool
	suppress bool
	reg      *Registry
}

// NewDetached creates a definition that is not part of any registry. It has
// token 0, no power siblings and no compatible kinds besides its own.
func NewDetached(kind *Kind, opts DefOptions) (*UnitDef, error) {
	return newUnitDef(kind, opts)
}

func newUnitDef(kind *Kind, opts DefOptions) (*UnitDef, error) {
	if kind == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unit %q has no kind", opts.Naming.Name)
	}
	if err := opts.Naming.validate(); err != nil {
		return nil, err
	}

	d := &UnitDef{
		kind:     kind,
		naming:   opts.Naming.withDefaults(),
		abstract: opts.Abstract,
		suppress: opts.SuppressPowerDecoration,
		powerMin: DefaultPowerMin,
		powerMax: DefaultPowerMax,
	}

	switch {
	case opts.Power > 0:
		d.powerMin, d.powerMax, d.fixed = opts.Power, opts.Power, true
	case opts.PowerMin > 0 || opts.PowerMax > 0:
		if opts.PowerMin > 0 {
			d.powerMin = opts.PowerMin
		}
		d.powerMax = opts.PowerMax
		if err := errors.ValidatePowerRange(d.powerMin, d.powerMax); err != nil {
			return nil, err
		}
		d.fixed = d.powerMin == d.powerMax
	}

	switch {
	case !opts.Formula.IsZero():
		d.formula = opts.Formula
	case opts.Abstract:
		d.formula = formula.Constant(math.NaN())
	case opts.Scale != 0:
		d.formula = formula.Scale(opts.Scale)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unit %q needs a scale or formula", opts.Naming.Name)
	}
	return d, nil
}

// Token returns the identity token assigned at registration, or 0 for
// detached definitions.
func (d *UnitDef) Token() int { return d.token }

// Kind returns the quantity kind.
func (d *UnitDef) Kind() *Kind { return d.kind }

// Naming returns the lexical forms.
func (d *UnitDef) Naming() Naming { return d.naming }

// Name returns the singular name.
func (d *UnitDef) Name() string { return d.naming.Name }

// Symbol returns the symbol, which may be empty.
func (d *UnitDef) Symbol() string { return d.naming.Symbol }

// PowerMin returns the lowest valid exponent.
func (d *UnitDef) PowerMin() uint8 { return d.powerMin }

// PowerMax returns the highest valid exponent. A value below PowerMin means
// the range is unbounded above.
func (d *UnitDef) PowerMax() uint8 { return d.powerMax }

// IsFixedPower reports whether the definition admits exactly one exponent.
func (d *UnitDef) IsFixedPower() bool { return d.fixed }

// IsAbstract reports whether a scale must be supplied at conversion time.
func (d *UnitDef) IsAbstract() bool { return d.abstract }

// SuppressPowerDecoration reports whether rendering omits the power.
func (d *UnitDef) SuppressPowerDecoration() bool { return d.suppress }

// Formula returns the conversion from this unit to the kind's base unit.
func (d *UnitDef) Formula() formula.Formula { return d.formula }

// Registry returns the registry the definition belongs to, or nil.
func (d *UnitDef) Registry() *Registry { return d.reg }

// Scale returns the value of one of this unit in the base unit. It is NaN for
// abstract units.
func (d *UnitDef) Scale() float64 { return d.formula.Apply(1) }

// ScalePow returns the factor to the base unit at power. Fixed-power
// definitions already carry their exponent and return the flat scale.
func (d *UnitDef) ScalePow(power uint8) float64 {
	return scalePow(d.Scale(), d.fixed, power)
}

func scalePow(scale float64, fixed bool, power uint8) float64 {
	if fixed {
		return scale
	}
	return math.Pow(scale, float64(power))
}

// FitsPower reports whether power lies in the definition's range.
func (d *UnitDef) FitsPower(power uint8) bool {
	if power < d.powerMin {
		return false
	}
	return d.powerMax < d.powerMin || power <= d.powerMax
}

// IsBase reports whether d is the base unit of its kind.
func (d *UnitDef) IsBase() bool {
	return d.reg != nil && d.reg.Base(d.kind) == d
}

// String returns the label of the definition.
func (d *UnitDef) String() string { return d.naming.Label() }

// Context supplies the scales of abstract definitions for one conversion.
// From applies to the source and To to the target; each is evaluated at 1.0.
type Context struct {
	From formula.Formula
	To   formula.Formula
}

// ToFormula returns the conversion of a value at power from d to target.
func (d *UnitDef) ToFormula(target *UnitDef, ctx Context, power uint8) (formula.Formula, error) {
	if target == nil {
		return formula.Formula{}, errors.New(errors.ErrCodeNullUnit, "conversion target is nil")
	}
	if d == target {
		return formula.Identity(), nil
	}
	if !d.compatible(target) {
		return formula.Formula{}, errors.New(errors.ErrCodeIncompatibleKind,
			"cannot convert %s (%s) to %s (%s)", d.naming.Name, d.kind, target.naming.Name, target.kind)
	}

	src, err := d.resolveScale(ctx.From)
	if err != nil {
		return formula.Formula{}, err
	}
	dst, err := target.resolveScale(ctx.To)
	if err != nil {
		return formula.Formula{}, err
	}
	return formula.Scale(scalePow(src, d.fixed, power) / scalePow(dst, target.fixed, power)), nil
}

// resolveScale returns the concrete scale of d, taking it from f when d is
// abstract or when f is set.
func (d *UnitDef) resolveScale(f formula.Formula) (float64, error) {
	if !f.IsZero() {
		return f.Apply(1), nil
	}
	if d.abstract {
		return 0, errors.New(errors.ErrCodeAbstractUnresolved, "%s needs a scale to convert", d.naming.Name)
	}
	return d.Scale(), nil
}

func (d *UnitDef) compatible(other *UnitDef) bool {
	if d.kind == other.kind {
		return true
	}
	reg := d.reg
	if reg == nil {
		reg = other.reg
	}
	return reg != nil && reg.AreCompatibleKinds(d.kind, other.kind)
}
