package units

// Quantity kinds of the standard registry, in grammar order. Length comes
// before Angle so that ' and " read as feet and inches unless the caller
// restricts parsing to Angle.
var (
	Length        = NewKind("Length")
	Area          = NewKind("Area")
	Volume        = NewKind("Volume")
	Mass          = NewKind("Mass")
	Time          = NewKind("Time")
	Angle         = NewKind("Angle")
	Money         = NewKind("Money")
	Radioactivity = NewKind("Radioactivity")
	Data          = NewKind("Data")
)

var std = newStandardRegistry()

// Standard returns the registry holding the built-in catalog. Definitions may
// be added to it until it is first used for parsing.
func Standard() *Registry { return std }

// StandardParser returns the parser bound to the standard registry.
func StandardParser() *Parser { return stdParser }

func newStandardRegistry() *Registry {
	r := NewRegistry()
	must(r.AddKind(Length, Area, Volume, Mass, Time, Angle, Money, Radioactivity, Data))
	must(r.Relate(Length, Area))
	must(r.Relate(Length, Volume))
	must(r.Relate(Area, Volume))
	return r
}

func init() {
	std.MustRegisterPowerSiblings(Meter, SquareMeter, CubicMeter)
	std.MustRegisterPowerSiblings(Decimeter, Liter)
	std.MustRegisterPowerSiblings(Centimeter, Milliliter)
	std.MustRegisterPowerSiblings(Decameter, Are)
	std.MustRegisterPowerSiblings(Hectometer, Hectare)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
