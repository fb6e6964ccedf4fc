package units

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		def       *UnitDef
		power     uint8
		wantPower uint8
		code      errors.Code
	}{
		{"general def", Centimeter, 2, 2, ""},
		{"fixed def takes own power", Liter, 3, 3, ""},
		{"becquerel power 0", Becquerel, 0, 0, errors.ErrCodePowerOutOfRange},
		{"becquerel power 250", Becquerel, 250, 0, errors.ErrCodePowerOutOfRange},
		{"centimeter power 4", Centimeter, 4, 0, errors.ErrCodePowerOutOfRange},
		{"nil def", nil, 1, 0, errors.ErrCodeNullUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(1, tt.def, tt.power)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("New() error = %v, want %v", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if u.Power() != tt.wantPower {
				t.Errorf("Power() = %d, want %d", u.Power(), tt.wantPower)
			}
		})
	}
}

func TestIsNull(t *testing.T) {
	if !(Unit{}).IsNull() {
		t.Error("zero Unit should be null")
	}
	if !From(Meter, math.NaN()).IsNull() {
		t.Error("NaN Unit should be null")
	}
	if From(Meter, 0).IsNull() {
		t.Error("0 m should not be null")
	}
}

func TestTo(t *testing.T) {
	tests := []struct {
		name string
		u    Unit
		def  *UnitDef
		want float64
	}{
		{"cm to m", From(Centimeter, 250), Meter, 2.5},
		{"ft to in", From(Foot, 2), Inch, 24},
		{"cm² to m", Must(20_000, Centimeter, 2), Meter, 2},
		{"m³ to liter", Must(1, Meter, 3), Liter, 1000},
		{"liter to dm", From(Liter, 2), Decimeter, 2},
		{"hectare to acre", From(Hectare, 1), Acre, 2.4710538146716532},
		{"min to s", From(Minute, 2), Second, 120},
		{"degree to rad", From(Degree, 180), Radian, math.Pi},
		{"GiB to MB", From(Gibibyte, 1), Megabyte, 1073.741824},
		{"cent to dollar", From(Cent, 250), Usd, 2.5},
		{"curie to becquerel", From(Curie, 1), Becquerel, 3.7e10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.u.To(tt.def)
			if err != nil {
				t.Fatalf("To() error = %v", err)
			}
			if got.Def() != tt.def {
				t.Errorf("To().Def() = %v, want %v", got.Def(), tt.def)
			}
			if !nearlyEqual(got.Value(), tt.want, 1e-9) {
				t.Errorf("To().Value() = %v, want %v", got.Value(), tt.want)
			}
		})
	}
}

func TestToErrors(t *testing.T) {
	tests := []struct {
		name string
		u    Unit
		def  *UnitDef
		code errors.Code
	}{
		{"null unit", Unit{}, Meter, errors.ErrCodeNullUnit},
		{"nil target", From(Meter, 1), nil, errors.ErrCodeNullUnit},
		{"length to liter", From(Meter, 1), Liter, errors.ErrCodeDifferentPower},
		{"length to mass", From(Meter, 1), Kilogram, errors.ErrCodeIncompatibleKind},
		{"abstract without scale", From(Storey, 3), Meter, errors.ErrCodeAbstractUnresolved},
		{"to abstract without scale", From(Usd, 3), Euro, errors.ErrCodeAbstractUnresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.u.To(tt.def); !errors.Is(err, tt.code) {
				t.Errorf("To() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestAbstractConversion(t *testing.T) {
	floors := From(Storey, 3).WithScale(formula.Scale(3.5))
	got, err := floors.To(Meter)
	if err != nil {
		t.Fatalf("To() error = %v", err)
	}
	if !nearlyEqual(got.Value(), 10.5, 1e-12) {
		t.Errorf("3 storeys = %v m, want 10.5", got.Value())
	}

	// a per-call scale overrides the attached one
	got, err = floors.ToWith(Meter, Context{From: formula.Scale(3)})
	if err != nil {
		t.Fatalf("ToWith() error = %v", err)
	}
	if !nearlyEqual(got.Value(), 9, 1e-12) {
		t.Errorf("3 storeys at 3 m = %v m, want 9", got.Value())
	}

	eur, err := From(Usd, 108).ToWith(Euro, Context{To: formula.Scale(1.08)})
	if err != nil {
		t.Fatalf("ToWith() error = %v", err)
	}
	if !nearlyEqual(eur.Value(), 100, 1e-12) {
		t.Errorf("$108 = %v €, want 100", eur.Value())
	}
	if eur.AbstractFormula().IsZero() {
		t.Error("converted abstract unit should keep its scale")
	}

	back, err := eur.To(Usd)
	if err != nil {
		t.Fatalf("To(Usd) error = %v", err)
	}
	if !nearlyEqual(back.Value(), 108, 1e-12) {
		t.Errorf("100 € = $%v, want 108", back.Value())
	}
}

func TestToBase(t *testing.T) {
	got, err := From(Liter, 2500).ToBase()
	if err != nil {
		t.Fatalf("ToBase() error = %v", err)
	}
	if got.Def() != CubicMeter || !nearlyEqual(got.Value(), 2.5, 1e-12) {
		t.Errorf("ToBase() = %v, want 2.5 m³", got)
	}

	detached, _ := NewDetached(Length, DefOptions{Naming: Naming{Name: "league"}, Scale: 4828})
	if _, err := From(detached, 1).ToBase(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ToBase(detached) error = %v, want %v", err, errors.ErrCodeNotFound)
	}
}

func TestDuration(t *testing.T) {
	d, err := From(Minute, 2.5).Duration()
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if d != 150*time.Second {
		t.Errorf("Duration() = %v, want 2m30s", d)
	}

	if _, err := From(Meter, 1).Duration(); !errors.Is(err, errors.ErrCodeUnsupportedTarget) {
		t.Errorf("Duration(meter) error = %v, want %v", err, errors.ErrCodeUnsupportedTarget)
	}

	u := FromDuration(90 * time.Minute)
	if u.Def() != Second || u.Value() != 5400 {
		t.Errorf("FromDuration(90m) = %v, want 5400 s", u)
	}
}

func TestAddSub(t *testing.T) {
	sum, err := From(Meter, 1).Add(From(Centimeter, 50))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if sum.Def() != Meter || !nearlyEqual(sum.Value(), 1.5, 1e-12) {
		t.Errorf("1 m + 50 cm = %v, want 1.5 m", sum)
	}

	diff, err := From(Foot, 1).Sub(From(Inch, 6))
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if diff.Def() != Foot || !nearlyEqual(diff.Value(), 0.5, 1e-12) {
		t.Errorf("1 ft - 6 in = %v, want 0.5 ft", diff)
	}

	mod, err := From(Centimeter, 10).Mod(From(Centimeter, 3))
	if err != nil {
		t.Fatalf("Mod() error = %v", err)
	}
	if !nearlyEqual(mod.Value(), 1, 1e-12) {
		t.Errorf("10 cm %% 3 cm = %v, want 1 cm", mod)
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		name string
		op   func() (Unit, error)
		code errors.Code
	}{
		{"cm + cm²", func() (Unit, error) { return From(Centimeter, 1).Add(Must(1, Centimeter, 2)) }, errors.ErrCodeDifferentPower},
		{"m - kg", func() (Unit, error) { return From(Meter, 1).Sub(From(Kilogram, 1)) }, errors.ErrCodeDifferentKind},
		{"m × kg", func() (Unit, error) { return From(Meter, 1).Mul(From(Kilogram, 1)) }, errors.ErrCodeIncompatibleKind},
		{"s ÷ m", func() (Unit, error) { return From(Second, 1).Div(From(Meter, 1)) }, errors.ErrCodeIncompatibleKind},
		{"m ÷ m", func() (Unit, error) { return From(Meter, 1).Div(From(Meter, 1)) }, errors.ErrCodePowerOutOfRange},
		{"cm³ × cm", func() (Unit, error) { return Must(1, Centimeter, 3).Mul(From(Centimeter, 1)) }, errors.ErrCodePowerOutOfRange},
		{"m ÷ 0", func() (Unit, error) { return Must(1, Meter, 2).Div(From(Meter, 0)) }, errors.ErrCodeDivisionByZero},
		{"cm mod 0", func() (Unit, error) { return From(Centimeter, 1).Mod(From(Centimeter, 0)) }, errors.ErrCodeDivisionByZero},
		{"null + m", func() (Unit, error) { return Unit{}.Add(From(Meter, 1)) }, errors.ErrCodeNullUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.op(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name  string
		op    func() (Unit, error)
		def   *UnitDef
		power uint8
		value float64
	}{
		{"m × m", func() (Unit, error) { return From(Meter, 3).Mul(From(Meter, 4)) }, SquareMeter, 2, 12},
		{"m × cm", func() (Unit, error) { return From(Meter, 2).Mul(From(Centimeter, 50)) }, SquareMeter, 2, 1},
		{"cm × cm", func() (Unit, error) { return From(Centimeter, 2).Mul(From(Centimeter, 3)) }, Centimeter, 2, 6},
		{"m² × m", func() (Unit, error) { return From(SquareMeter, 2).Mul(From(Meter, 3)) }, CubicMeter, 3, 6},
		{"acre × m", func() (Unit, error) { return From(Acre, 1).Mul(From(Meter, 2)) }, CubicMeter, 3, 8093.7128448},
		{"dm² × dm", func() (Unit, error) { return Must(1, Decimeter, 2).Mul(From(Decimeter, 1)) }, Liter, 3, 1},
		{"liter ÷ m", func() (Unit, error) { return From(Liter, 1).Div(From(Meter, 1)) }, Decimeter, 2, 0.1},
		{"m³ ÷ m", func() (Unit, error) { return From(CubicMeter, 12).Div(From(Meter, 3)) }, SquareMeter, 2, 4},
		{"m² ÷ m", func() (Unit, error) { return From(SquareMeter, 10).Div(From(Meter, 2)) }, Meter, 1, 5},
		{"hectare ÷ hm", func() (Unit, error) { return From(Hectare, 3).Div(From(Hectometer, 2)) }, Hectometer, 1, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got.Def() != tt.def || got.Power() != tt.power {
				t.Errorf("result = (%v, %d), want (%v, %d)", got.Def(), got.Power(), tt.def, tt.power)
			}
			if !nearlyEqual(got.Value(), tt.value, 1e-9) {
				t.Errorf("result value = %v, want %v", got.Value(), tt.value)
			}
		})
	}
}

func TestScaleNeg(t *testing.T) {
	u := From(Meter, 2).Scale(3).Neg()
	if u.Value() != -6 || u.Def() != Meter {
		t.Errorf("Scale(3).Neg() = %v, want -6 m", u)
	}
}

// cappedOps clamps sums to 100.
type cappedOps struct{ DefaultOps }

func (o cappedOps) Add(a, b Unit) (Unit, error) {
	sum, err := o.DefaultOps.Add(a, b)
	if err != nil {
		return Unit{}, err
	}
	if sum.Value() > 100 {
		return Must(100, sum.Def(), sum.Power()), nil
	}
	return sum, nil
}

func TestKindOps(t *testing.T) {
	reg := NewRegistry()
	score := NewKindWithOps("Score", cappedOps{})
	pts := reg.MustDefine(score, DefOptions{Naming: Naming{Name: "point"}, Scale: 1, Power: 1, Base: true})

	got, err := From(pts, 80).Add(From(pts, 40))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got.Value() != 100 {
		t.Errorf("80 + 40 points = %v, want 100", got.Value())
	}

	// operations the kind does not override keep the default behavior
	diff, err := From(pts, 80).Sub(From(pts, 40))
	if err != nil || diff.Value() != 40 {
		t.Errorf("80 - 40 points = %v, %v, want 40", diff, err)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Unit
		want int
	}{
		{"equal across units", From(Meter, 1), From(Centimeter, 100), 0},
		{"less", From(Inch, 11), From(Foot, 1), -1},
		{"greater", From(Kilometer, 1), From(Mile, 0.5), 1},
		{"different kind", From(Meter, 1), From(Kilogram, 5), 0},
		{"different power", From(Meter, 1), Must(5, Meter, 2), 0},
		{"null sorts last", Unit{}, From(Meter, 1), 1},
		{"non-null first", From(Meter, 1), Unit{}, -1},
		{"both null", Unit{}, From(Meter, math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !From(Meter, 1).Equal(From(Millimeter, 1000)) {
		t.Error("1 m should equal 1000 mm")
	}
	if From(Meter, 1).Equal(From(Kilogram, 1)) {
		t.Error("units of different kinds should never be equal")
	}
	if From(Meter, 1).Equal(From(Millimeter, 1001)) {
		t.Error("1 m should not equal 1001 mm")
	}
	if !From(Meter, 1).EqualWithin(From(Millimeter, 1001), 1e-2) {
		t.Error("1 m should equal 1001 mm within 1e-2")
	}
	if !From(Inch, 1).Less(From(Foot, 1)) {
		t.Error("1 in should be less than 1 ft")
	}
}

func TestSort(t *testing.T) {
	us := []Unit{
		From(Kilometer, 2),
		From(Meter, 1),
		From(Millimeter, 3),
		From(Centimeter, 50),
		From(Inch, 1),
	}
	Sort(us)

	want := []*UnitDef{Millimeter, Inch, Centimeter, Meter, Kilometer}
	for i, u := range us {
		if u.Def() != want[i] {
			t.Errorf("Sort()[%d] = %v, want %v", i, u, want[i])
		}
	}
}

func TestHash(t *testing.T) {
	if From(Meter, 1).Hash() != From(Centimeter, 100).Hash() {
		t.Error("1 m and 100 cm should hash identically")
	}
	if From(Liter, 1).Hash() != From(Milliliter, 1000).Hash() {
		t.Error("1 L and 1000 mL should hash identically")
	}
	if From(Meter, 1).Hash() == From(Meter, 2).Hash() {
		t.Error("1 m and 2 m should not hash identically")
	}
	if From(Meter, 1).Hash() == Must(1, Meter, 2).Hash() {
		t.Error("1 m and 1 m² should not hash identically")
	}
	if From(Becquerel, 1).Hash() == From(Byte, 1).Hash() {
		t.Error("units of different kinds should not hash identically")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		u    Unit
		want string
	}{
		{From(Centimeter, 5), "5 cm"},
		{Must(5, Centimeter, 2), "5 cm²"},
		{From(Liter, 2), "2 L"},
		{From(SquareMeter, 3), "3 m²"},
		{From(Cup, 1), "1 cup"},
		{Unit{}, "0 <null>"},
	}

	for _, tt := range tests {
		if got := tt.u.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
