package units

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultEpsilon is the tolerance of Compare and Equal. It is absolute for
// amounts below 1 and relative above.
const DefaultEpsilon = 1e-9

// hashDigits is the number of significant digits a base amount is rounded to
// before hashing.
const hashDigits = 12

// Compare orders u and b by magnitude: -1 if u < b, 1 if u > b and 0 if they
// are equal within DefaultEpsilon. Units of different kinds or powers are
// not orderable and compare as 0. A null unit sorts after any other unit.
func (u Unit) Compare(b Unit) int {
	return u.CompareWithin(b, DefaultEpsilon)
}

// CompareWithin is Compare with a caller-chosen tolerance.
func (u Unit) CompareWithin(b Unit, eps float64) int {
	un, bn := u.IsNull(), b.IsNull()
	switch {
	case un && bn:
		return 0
	case un:
		return 1
	case bn:
		return -1
	}
	if u.def.kind != b.def.kind || u.power != b.power {
		return 0
	}

	bv, err := b.valueIn(u.def, u.abstract)
	if err != nil {
		return 0
	}
	switch {
	case nearlyEqual(u.value, bv, eps):
		return 0
	case u.value < bv:
		return -1
	}
	return 1
}

// Equal reports whether u and b describe the same quantity within
// DefaultEpsilon. Units of different kinds or powers are never equal.
func (u Unit) Equal(b Unit) bool {
	return u.EqualWithin(b, DefaultEpsilon)
}

// EqualWithin is Equal with a caller-chosen tolerance.
func (u Unit) EqualWithin(b Unit, eps float64) bool {
	if u.IsNull() || b.IsNull() {
		return u.IsNull() && b.IsNull()
	}
	if u.def.kind != b.def.kind || u.power != b.power {
		return false
	}
	bv, err := b.valueIn(u.def, u.abstract)
	if err != nil {
		return false
	}
	return nearlyEqual(u.value, bv, eps)
}

// Less reports whether u orders before b.
func (u Unit) Less(b Unit) bool { return u.Compare(b) < 0 }

// Sort sorts units in place by magnitude, keeping the order of units that
// compare equal.
func Sort(units []Unit) {
	slices.SortStableFunc(units, Unit.Compare)
}

// Hash returns a hash of u that is equal for units that are Equal: it covers
// the kind, the power and the amount in the kind's base unit.
func (u Unit) Hash() uint64 {
	if u.IsNull() {
		return 0
	}
	h := xxhash.New()
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(u.def.kind.id))
	buf[8] = u.power
	h.Write(buf[:])

	v, err := u.baseValue()
	if err != nil {
		// Unresolved abstract units hash by their own definition.
		binary.LittleEndian.PutUint64(buf[:8], uint64(u.def.token))
		h.Write(buf[:8])
		v = u.value
	}
	h.WriteString(strconv.FormatFloat(roundSignificant(v), 'g', hashDigits, 64))
	return h.Sum64()
}

func roundSignificant(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', hashDigits, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func nearlyEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		return diff <= eps
	}
	return diff <= eps*scale
}
