package units

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
	"github.com/matzehuels/measure/pkg/grammar"
)

// Unit is a measured value: an amount of a unit definition at a power.
// Units are immutable values. The zero Unit is null.
type Unit struct {
	value    float64
	def      *UnitDef
	power    uint8
	abstract formula.Formula
}

// New returns value of def at power. The power must lie in the definition's
// range; fixed-power definitions always take their own power.
func New(value float64, def *UnitDef, power uint8) (Unit, error) {
	if def == nil {
		return Unit{}, errors.New(errors.ErrCodeNullUnit, "unit definition is nil")
	}
	if !def.FitsPower(power) {
		return Unit{}, errors.New(errors.ErrCodePowerOutOfRange,
			"power %d is outside [%d, %d] of %s", power, def.powerMin, def.powerMax, def.naming.Name)
	}
	if def.fixed {
		power = def.powerMin
	}
	return Unit{value: value, def: def, power: power}, nil
}

// Must is like New but panics on error.
func Must(value float64, def *UnitDef, power uint8) Unit {
	u, err := New(value, def, power)
	if err != nil {
		panic(err)
	}
	return u
}

// From returns value of def at the definition's lowest power.
func From(def *UnitDef, value float64) Unit {
	if def == nil {
		return Unit{value: value}
	}
	return Unit{value: value, def: def, power: def.powerMin}
}

// FromDuration returns d in seconds of the standard registry.
func FromDuration(d time.Duration) Unit {
	return From(Second, d.Seconds())
}

// Value returns the amount.
func (u Unit) Value() float64 { return u.value }

// Def returns the unit definition, or nil for a null unit.
func (u Unit) Def() *UnitDef { return u.def }

// Power returns the exponent.
func (u Unit) Power() uint8 { return u.power }

// Kind returns the quantity kind, or nil for a null unit.
func (u Unit) Kind() *Kind {
	if u.def == nil {
		return nil
	}
	return u.def.kind
}

// AbstractFormula returns the scale attached with WithScale.
func (u Unit) AbstractFormula() formula.Formula { return u.abstract }

// IsNull reports whether u has no definition or a NaN value.
func (u Unit) IsNull() bool { return u.def == nil || math.IsNaN(u.value) }

// WithScale attaches the scale of an abstract definition: f maps one unit to
// the kind's base unit. It is used by every later conversion of u.
func (u Unit) WithScale(f formula.Formula) Unit {
	u.abstract = f
	return u
}

// =============================================================================
// Conversion
// =============================================================================

// To converts u to def.
func (u Unit) To(def *UnitDef) (Unit, error) {
	return u.ToWith(def, Context{})
}

// ToWith converts u to def. ctx.From overrides the scale attached to u and
// ctx.To supplies the scale of an abstract target.
func (u Unit) ToWith(def *UnitDef, ctx Context) (Unit, error) {
	if u.def == nil {
		return Unit{}, errors.New(errors.ErrCodeNullUnit, "cannot convert a null unit")
	}
	if def == nil {
		return Unit{}, errors.New(errors.ErrCodeNullUnit, "conversion target is nil")
	}
	if def.fixed {
		if u.power != def.powerMin {
			return Unit{}, errors.New(errors.ErrCodeDifferentPower,
				"%s has power %d, %s has power %d", u.def, u.power, def, def.powerMin)
		}
	} else if !def.FitsPower(u.power) {
		return Unit{}, errors.New(errors.ErrCodePowerOutOfRange,
			"%s cannot take power %d", def.naming.Name, u.power)
	}

	if ctx.From.IsZero() {
		ctx.From = u.abstract
	}
	f, err := u.def.ToFormula(def, ctx, u.power)
	if err != nil {
		return Unit{}, err
	}
	out := Unit{value: f.Apply(u.value), def: def, power: u.power}
	if def.abstract {
		out.abstract = ctx.To
	}
	if def == u.def && ctx.To.IsZero() {
		out.abstract = u.abstract
	}
	return out, nil
}

// ToBase converts u to the base unit of its kind.
func (u Unit) ToBase() (Unit, error) {
	if u.def == nil {
		return Unit{}, errors.New(errors.ErrCodeNullUnit, "cannot convert a null unit")
	}
	if u.def.reg == nil {
		return Unit{}, errors.New(errors.ErrCodeNotFound, "%s is not registered", u.def.naming.Name)
	}
	base := u.def.reg.Base(u.def.kind)
	if base == nil {
		return Unit{}, errors.New(errors.ErrCodeNotFound, "%s has no base unit", u.def.kind)
	}
	return u.To(base)
}

// Duration converts a Time unit to a time.Duration. The base unit of Time is
// the second.
func (u Unit) Duration() (time.Duration, error) {
	if u.def == nil {
		return 0, errors.New(errors.ErrCodeNullUnit, "cannot convert a null unit")
	}
	if u.def.kind.name != "Time" || u.power != 1 {
		return 0, errors.New(errors.ErrCodeUnsupportedTarget,
			"cannot express %s as a duration", u.def.kind)
	}
	secs, err := u.baseValue()
	if err != nil {
		return 0, err
	}
	return time.Duration(math.Round(secs * float64(time.Second))), nil
}

// valueIn returns the amount of u expressed in def at u's power. to supplies
// the scale of an abstract def.
func (u Unit) valueIn(def *UnitDef, to formula.Formula) (float64, error) {
	f, err := u.def.ToFormula(def, Context{From: u.abstract, To: to}, u.power)
	if err != nil {
		return 0, err
	}
	return f.Apply(u.value), nil
}

// baseValue returns the amount of u in the base unit of its kind. Power-1
// and fixed-power amounts go through the definition's formula so that
// non-linear conversions apply.
func (u Unit) baseValue() (float64, error) {
	switch {
	case !u.abstract.IsZero():
		return u.value * scalePow(u.abstract.Apply(1), u.def.fixed, u.power), nil
	case u.def.abstract:
		return 0, errors.New(errors.ErrCodeAbstractUnresolved, "%s needs a scale to convert", u.def.naming.Name)
	case u.def.fixed || u.power == 1:
		return u.def.formula.Apply(u.value), nil
	}
	return u.value * u.def.ScalePow(u.power), nil
}

// =============================================================================
// Arithmetic
// =============================================================================

// Add returns u + b in u's unit.
func (u Unit) Add(b Unit) (Unit, error) {
	if err := checkOperands(u, b); err != nil {
		return Unit{}, err
	}
	return u.def.kind.ops.Add(u, b)
}

// Sub returns u - b in u's unit.
func (u Unit) Sub(b Unit) (Unit, error) {
	if err := checkOperands(u, b); err != nil {
		return Unit{}, err
	}
	return u.def.kind.ops.Sub(u, b)
}

// Mod returns the remainder of u / b in u's unit.
func (u Unit) Mod(b Unit) (Unit, error) {
	if err := checkOperands(u, b); err != nil {
		return Unit{}, err
	}
	return u.def.kind.ops.Mod(u, b)
}

// Mul returns u * b. The powers add up: meter times meter is a square meter.
func (u Unit) Mul(b Unit) (Unit, error) {
	if err := checkOperands(u, b); err != nil {
		return Unit{}, err
	}
	return u.def.kind.ops.Mul(u, b)
}

// Div returns u / b. The power of b is subtracted from the power of u.
func (u Unit) Div(b Unit) (Unit, error) {
	if err := checkOperands(u, b); err != nil {
		return Unit{}, err
	}
	return u.def.kind.ops.Div(u, b)
}

// Scale returns u with its amount multiplied by k.
func (u Unit) Scale(k float64) Unit {
	u.value *= k
	return u
}

// Neg returns u with its amount negated.
func (u Unit) Neg() Unit {
	u.value = -u.value
	return u
}

func checkOperands(a, b Unit) error {
	if a.def == nil || b.def == nil {
		return errors.New(errors.ErrCodeNullUnit, "operation on a null unit")
	}
	return nil
}

// String renders u for debugging, e.g. "5 cm²". It is not a formatter.
func (u Unit) String() string {
	if u.def == nil {
		return fmt.Sprintf("%g <null>", u.value)
	}
	s := fmt.Sprintf("%g %s", u.value, u.def.naming.Label())
	if u.power > 1 && !u.def.fixed && !u.def.suppress {
		s += grammar.Superscript(u.power)
	}
	return s
}
