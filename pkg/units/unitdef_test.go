package units

import (
	"math"
	"testing"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/formula"
)

func TestUnitDefDefaults(t *testing.T) {
	if Centimeter.PowerMin() != 1 || Centimeter.PowerMax() != 3 {
		t.Errorf("Centimeter power range = [%d, %d], want [1, 3]", Centimeter.PowerMin(), Centimeter.PowerMax())
	}
	if Centimeter.IsFixedPower() {
		t.Error("Centimeter.IsFixedPower() = true, want false")
	}
	if !Liter.IsFixedPower() || Liter.PowerMin() != 3 || Liter.PowerMax() != 3 {
		t.Errorf("Liter power = [%d, %d] fixed=%v, want [3, 3] fixed", Liter.PowerMin(), Liter.PowerMax(), Liter.IsFixedPower())
	}
	if got := Foot.Naming().NamePlural; got != "feet" {
		t.Errorf("Foot plural = %q, want %q", got, "feet")
	}
	if got := Meter.Naming().NamePlural; got != "meters" {
		t.Errorf("Meter default plural = %q, want %q", got, "meters")
	}
	if !math.IsNaN(Storey.Scale()) {
		t.Errorf("Storey.Scale() = %v, want NaN", Storey.Scale())
	}
}

func TestScalePow(t *testing.T) {
	tests := []struct {
		def   *UnitDef
		power uint8
		want  float64
	}{
		{Centimeter, 1, 0.01},
		{Centimeter, 2, 1e-4},
		{Centimeter, 3, 1e-6},
		{Liter, 1, 1e-3}, // fixed power ignores the argument
		{Liter, 3, 1e-3},
		{Acre, 2, 4046.8564224},
	}

	for _, tt := range tests {
		if got := tt.def.ScalePow(tt.power); math.Abs(got-tt.want) > 1e-15*math.Max(1, tt.want) {
			t.Errorf("%s.ScalePow(%d) = %v, want %v", tt.def, tt.power, got, tt.want)
		}
	}
}

func TestFitsPower(t *testing.T) {
	unbounded, err := NewDetached(Length, DefOptions{Naming: Naming{Name: "span"}, Scale: 1, PowerMin: 2, PowerMax: 1})
	if err != nil {
		t.Fatalf("NewDetached() error = %v", err)
	}

	tests := []struct {
		def   *UnitDef
		power uint8
		want  bool
	}{
		{Centimeter, 0, false},
		{Centimeter, 1, true},
		{Centimeter, 3, true},
		{Centimeter, 4, false},
		{Becquerel, 1, true},
		{Becquerel, 0, false},
		{Becquerel, 250, false},
		{unbounded, 1, false},
		{unbounded, 2, true},
		{unbounded, 250, true},
	}

	for _, tt := range tests {
		if got := tt.def.FitsPower(tt.power); got != tt.want {
			t.Errorf("%s.FitsPower(%d) = %v, want %v", tt.def, tt.power, got, tt.want)
		}
	}
}

func TestToFormula(t *testing.T) {
	tests := []struct {
		name     string
		src, dst *UnitDef
		power    uint8
		in, want float64
	}{
		{"same def", Centimeter, Centimeter, 2, 7, 7},
		{"cm to m", Centimeter, Meter, 1, 150, 1.5},
		{"cm² to m²", Centimeter, Meter, 2, 10_000, 1},
		{"ft to in", Foot, Inch, 1, 1, 12},
		{"dm³ to liter", Decimeter, Liter, 3, 2, 2},
		{"liter to m³", Liter, CubicMeter, 3, 1000, 1},
		{"acre to m²", Acre, SquareMeter, 2, 1, 4046.8564224},
		{"hectare to m", Hectare, Meter, 2, 1, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.src.ToFormula(tt.dst, Context{}, tt.power)
			if err != nil {
				t.Fatalf("ToFormula() error = %v", err)
			}
			if got := f.Apply(tt.in); !nearlyEqual(got, tt.want, 1e-12) {
				t.Errorf("ToFormula().Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFormulaErrors(t *testing.T) {
	if _, err := Meter.ToFormula(Kilogram, Context{}, 1); !errors.Is(err, errors.ErrCodeIncompatibleKind) {
		t.Errorf("Meter.ToFormula(Kilogram) error = %v, want %v", err, errors.ErrCodeIncompatibleKind)
	}
	if _, err := Storey.ToFormula(Meter, Context{}, 1); !errors.Is(err, errors.ErrCodeAbstractUnresolved) {
		t.Errorf("Storey.ToFormula(Meter) error = %v, want %v", err, errors.ErrCodeAbstractUnresolved)
	}
	if _, err := Meter.ToFormula(nil, Context{}, 1); !errors.Is(err, errors.ErrCodeNullUnit) {
		t.Errorf("Meter.ToFormula(nil) error = %v, want %v", err, errors.ErrCodeNullUnit)
	}
}

func TestToFormulaAbstractContext(t *testing.T) {
	f, err := Storey.ToFormula(Meter, Context{From: formula.Scale(3)}, 1)
	if err != nil {
		t.Fatalf("ToFormula() error = %v", err)
	}
	if got := f.Apply(4); !nearlyEqual(got, 12, 1e-12) {
		t.Errorf("4 storeys = %v m, want 12", got)
	}

	f, err = Usd.ToFormula(Euro, Context{To: formula.Scale(1.25)}, 1)
	if err != nil {
		t.Fatalf("ToFormula() error = %v", err)
	}
	if got := f.Apply(10); !nearlyEqual(got, 8, 1e-12) {
		t.Errorf("$10 = %v €, want 8", got)
	}
}

func TestNamingNames(t *testing.T) {
	n := Naming{Name: "hertz", NamePlural: "hertz", Symbol: "Hz", AlternateNames: []string{"Hz", "cps"}}
	got := n.Names()
	want := []string{"hertz", "Hz", "cps"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if n.Label() != "Hz" {
		t.Errorf("Label() = %q, want Hz", n.Label())
	}
	if (Naming{Name: "cup"}).Label() != "cup" {
		t.Error("Label() without symbol should fall back to the name")
	}
}

func TestNewKindPanicsOnInvalidName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewKind(\"\") did not panic")
		}
	}()
	NewKind("")
}
