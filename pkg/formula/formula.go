// Package formula provides composable scalar transforms.
//
// A [Formula] wraps a single func(float64) float64. Unit definitions use
// formulas to express "value in this unit → value in the base unit", and
// conversions chain them. Composition order matters: [Compose] applies the
// inner formula first and the outer one second, and every algebraic method
// applies the receiver before its own operator.
//
//	toMeters := formula.Scale(0.01)          // centimeters → meters
//	toKm := toMeters.Div(1000)               // centimeters → kilometers
//	shifted := formula.Compose(toKm, formula.Offset(1)) // (v*0.01/1000) + 1
package formula

import "math"

// Formula is an immutable scalar transform. The zero value is the identity.
type Formula struct {
	fn func(float64) float64
}

// New wraps fn. A nil fn yields the identity formula.
func New(fn func(float64) float64) Formula {
	return Formula{fn: fn}
}

// Identity returns the formula v => v.
func Identity() Formula { return Formula{} }

// Scale returns the formula v => v * k.
func Scale(k float64) Formula {
	return Formula{fn: func(v float64) float64 { return v * k }}
}

// Offset returns the formula v => v + k.
func Offset(k float64) Formula {
	return Formula{fn: func(v float64) float64 { return v + k }}
}

// Constant returns the formula v => k.
func Constant(k float64) Formula {
	return Formula{fn: func(float64) float64 { return k }}
}

// Compose returns a formula that applies inner, then outer.
func Compose(inner, outer Formula) Formula {
	switch {
	case inner.fn == nil:
		return outer
	case outer.fn == nil:
		return inner
	}
	in, out := inner.fn, outer.fn
	return Formula{fn: func(v float64) float64 { return out(in(v)) }}
}

// FromFuncs composes two raw functions: inner runs first.
func FromFuncs(inner, outer func(float64) float64) Formula {
	return Compose(New(inner), New(outer))
}

// Apply evaluates the formula at v.
func (f Formula) Apply(v float64) float64 {
	if f.fn == nil {
		return v
	}
	return f.fn(v)
}

// IsZero reports whether f is the unset (identity) formula.
func (f Formula) IsZero() bool { return f.fn == nil }

// Then returns a formula that applies f, then g.
func (f Formula) Then(g Formula) Formula { return Compose(f, g) }

// ThenFunc returns a formula that applies f, then fn.
func (f Formula) ThenFunc(fn func(float64) float64) Formula { return Compose(f, New(fn)) }

// Add returns v => f(v) + k.
func (f Formula) Add(k float64) Formula { return f.Then(Offset(k)) }

// Sub returns v => f(v) - k.
func (f Formula) Sub(k float64) Formula { return f.Then(Offset(-k)) }

// Mul returns v => f(v) * k.
func (f Formula) Mul(k float64) Formula { return f.Then(Scale(k)) }

// Div returns v => f(v) / k.
func (f Formula) Div(k float64) Formula {
	return f.ThenFunc(func(v float64) float64 { return v / k })
}

// Mod returns v => f(v) mod k, using [math.Mod] semantics.
func (f Formula) Mod(k float64) Formula {
	return f.ThenFunc(func(v float64) float64 { return math.Mod(v, k) })
}

// Pow returns v => f(v) ^ k.
func (f Formula) Pow(k float64) Formula {
	return f.ThenFunc(func(v float64) float64 { return math.Pow(v, k) })
}

// AddF returns v => f(v) + g(v).
func (f Formula) AddF(g Formula) Formula {
	return pointwise(f, g, func(a, b float64) float64 { return a + b })
}

// SubF returns v => f(v) - g(v).
func (f Formula) SubF(g Formula) Formula {
	return pointwise(f, g, func(a, b float64) float64 { return a - b })
}

// MulF returns v => f(v) * g(v).
func (f Formula) MulF(g Formula) Formula {
	return pointwise(f, g, func(a, b float64) float64 { return a * b })
}

// DivF returns v => f(v) / g(v).
func (f Formula) DivF(g Formula) Formula {
	return pointwise(f, g, func(a, b float64) float64 { return a / b })
}

func pointwise(f, g Formula, op func(a, b float64) float64) Formula {
	return Formula{fn: func(v float64) float64 { return op(f.Apply(v), g.Apply(v)) }}
}
