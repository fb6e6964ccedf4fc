package units

import (
	"math"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
)

// Ops is the arithmetic of a quantity kind. The left operand's kind decides
// which Ops handles an operation. Both operands are non-null when a method is
// called.
type Ops interface {
	Add(a, b Unit) (Unit, error)
	Sub(a, b Unit) (Unit, error)
	Mul(a, b Unit) (Unit, error)
	Div(a, b Unit) (Unit, error)
	Mod(a, b Unit) (Unit, error)
}

// DefaultOps converts the right operand into the left operand's unit and
// applies the scalar operator. Add, Sub and Mod require the same kind and
// power; Mul and Div accept compatible kinds and combine powers.
type DefaultOps struct{}

func (DefaultOps) Add(a, b Unit) (Unit, error) {
	return additive(a, b, func(x, y float64) (float64, error) { return x + y, nil })
}

func (DefaultOps) Sub(a, b Unit) (Unit, error) {
	return additive(a, b, func(x, y float64) (float64, error) { return x - y, nil })
}

func (DefaultOps) Mod(a, b Unit) (Unit, error) {
	return additive(a, b, func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, errors.New(errors.ErrCodeDivisionByZero, "modulo by zero")
		}
		return math.Mod(x, y), nil
	})
}

func (DefaultOps) Mul(a, b Unit) (Unit, error) {
	return multiplicative(a, b, 1)
}

func (DefaultOps) Div(a, b Unit) (Unit, error) {
	return multiplicative(a, b, -1)
}

func additive(a, b Unit, op func(x, y float64) (float64, error)) (Unit, error) {
	if a.def.kind != b.def.kind {
		return Unit{}, errors.New(errors.ErrCodeDifferentKind,
			"cannot combine %s and %s", a.def.kind, b.def.kind)
	}
	if a.power != b.power {
		return Unit{}, errors.New(errors.ErrCodeDifferentPower,
			"cannot combine power %d and power %d", a.power, b.power)
	}
	bv, err := b.valueIn(a.def, a.abstract)
	if err != nil {
		return Unit{}, err
	}
	v, err := op(a.value, bv)
	if err != nil {
		return Unit{}, err
	}
	return Unit{value: v, def: a.def, power: a.power, abstract: a.abstract}, nil
}

// multiplicative implements Mul (step 1) and Div (step -1). Both operands are
// brought into a linear frame, the powers are combined and the result
// definition is found through the power siblings of the frame.
func multiplicative(a, b Unit, step int) (Unit, error) {
	reg := a.def.reg
	if reg == nil {
		reg = b.def.reg
	}
	if !a.def.compatible(b.def) {
		return Unit{}, errors.New(errors.ErrCodeIncompatibleKind,
			"cannot multiply or divide %s by %s", a.def.kind, b.def.kind)
	}

	frame := linearFrame(reg, a.def)
	if frame == nil {
		return Unit{}, errors.New(errors.ErrCodeIncompatibleKind,
			"%s has no linear unit to combine in", a.def.kind)
	}
	var frameScale formula.Formula
	switch frame {
	case a.def:
		frameScale = a.abstract
	case b.def:
		frameScale = b.abstract
	}
	av, err := a.valueIn(frame, frameScale)
	if err != nil {
		return Unit{}, err
	}
	bv, err := b.valueIn(frame, frameScale)
	if err != nil {
		return Unit{}, err
	}

	var v float64
	p := int(a.power) + step*int(b.power)
	if step > 0 {
		v = av * bv
	} else {
		if bv == 0 {
			return Unit{}, errors.New(errors.ErrCodeDivisionByZero, "division by zero %s", b.def)
		}
		v = av / bv
	}

	def, power, err := resolvePower(reg, frame, p, step)
	if err != nil {
		return Unit{}, err
	}
	out := Unit{value: v, def: def, power: power}
	if def == frame && def.abstract {
		out.abstract = frameScale
	}
	return out, nil
}

// linearFrame picks the power-1 definition operands of def are combined in:
// its power-1 sibling, def itself when it admits power 1, or the base unit of
// a related kind.
func linearFrame(reg *Registry, def *UnitDef) *UnitDef {
	if reg != nil {
		if sib := reg.PowerUnitDef(def, 1); sib != nil {
			return sib
		}
	}
	if def.FitsPower(1) {
		return def
	}
	if reg == nil {
		return nil
	}
	for _, k := range reg.RelatedKinds(def.kind) {
		if base := reg.Base(k); base != nil && base.FitsPower(1) && !base.fixed {
			return base
		}
	}
	return nil
}

// resolvePower finds the definition for a product or quotient of power p in
// frame units. A registered sibling at p wins, then the frame itself. Failing
// both, the search walks from p in the direction of the operation over the
// registered sibling powers for one that admits p. Fixed-power frames keep
// their power.
func resolvePower(reg *Registry, frame *UnitDef, p, step int) (*UnitDef, uint8, error) {
	if p >= 1 && p <= math.MaxUint8 {
		power := uint8(p)
		if reg != nil {
			if sib := reg.PowerUnitDef(frame, power); sib != nil {
				return sib, sib.clampPower(power), nil
			}
		}
		if frame.FitsPower(power) {
			return frame, power, nil
		}
		if reg != nil {
			max := int(reg.maxSiblingPower(frame))
			for q := p + step; q >= 1 && q <= max; q += step {
				sib := reg.PowerUnitDef(frame, uint8(q))
				if sib != nil && sib.FitsPower(power) {
					return sib, power, nil
				}
			}
		}
	}
	if frame.fixed {
		return frame, frame.powerMin, nil
	}
	return nil, 0, errors.New(errors.ErrCodePowerOutOfRange,
		"power %d is outside the range of %s", p, frame)
}

func (d *UnitDef) clampPower(p uint8) uint8 {
	if d.fixed {
		return d.powerMin
	}
	return p
}
