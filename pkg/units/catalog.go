package units

import "math"

// Length
var (
	Meter = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "meter", Symbol: "m", AlternateNames: []string{"metre"}},
		Scale:  1,
		Base:   true,
	})
	Kilometer = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "kilometer", Symbol: "km", AlternateNames: []string{"kilometre"}},
		Scale:  1000,
	})
	Hectometer = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "hectometer", Symbol: "hm", AlternateNames: []string{"hectometre"}},
		Scale:  100,
	})
	Decameter = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "decameter", Symbol: "dam", AlternateNames: []string{"decametre"}},
		Scale:  10,
	})
	Decimeter = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "decimeter", Symbol: "dm", AlternateNames: []string{"decimetre"}},
		Scale:  0.1,
	})
	Centimeter = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "centimeter", Symbol: "cm", AlternateNames: []string{"centimetre"}},
		Scale:  0.01,
	})
	Millimeter = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "millimeter", Symbol: "mm", AlternateNames: []string{"millimetre"}},
		Scale:  0.001,
	})
	Micrometer = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "micrometer", Symbol: "µm", AlternateNames: []string{"micrometre", "um", "micron"}},
		Scale:  1e-6,
	})
	Nanometer = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "nanometer", Symbol: "nm", AlternateNames: []string{"nanometre"}},
		Scale:  1e-9,
	})
	Inch = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "inch", NamePlural: "inches", Symbol: `"`, AlternateNames: []string{"in"}},
		Scale:  0.0254,
	})
	Foot = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "foot", NamePlural: "feet", Symbol: "'", AlternateNames: []string{"ft"}},
		Scale:  0.3048,
	})
	Yard = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "yard", Symbol: "yd"},
		Scale:  0.9144,
	})
	Mile = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "mile", Symbol: "mi"},
		Scale:  1609.344,
	})
	NauticalMile = std.MustDefine(Length, DefOptions{
		Naming: Naming{Name: "nautical mile", Symbol: "nmi"},
		Scale:  1852,
	})
	// Storey needs the floor height of a building.
	Storey = std.MustDefine(Length, DefOptions{
		Naming:   Naming{Name: "storey", AlternateNames: []string{"story", "stories"}},
		Abstract: true,
	})
)

// Area
var (
	SquareMeter = std.MustDefine(Area, DefOptions{
		Naming: Naming{Name: "square meter", Symbol: "m²", AlternateNames: []string{"square metre", "sqm"}},
		Scale:  1,
		Power:  2,
		Base:   true,
	})
	Are = std.MustDefine(Area, DefOptions{
		Naming: Naming{Name: "are"},
		Scale:  100,
		Power:  2,
	})
	Hectare = std.MustDefine(Area, DefOptions{
		Naming: Naming{Name: "hectare", Symbol: "ha"},
		Scale:  10_000,
		Power:  2,
	})
	Acre = std.MustDefine(Area, DefOptions{
		Naming: Naming{Name: "acre", Symbol: "ac"},
		Scale:  4046.8564224,
		Power:  2,
	})
)

// Volume
var (
	CubicMeter = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "cubic meter", Symbol: "m³", AlternateNames: []string{"cubic metre"}},
		Scale:  1,
		Power:  3,
		Base:   true,
	})
	Liter = std.MustDefine(Volume, DefOptions{
		Naming:                  Naming{Name: "liter", Symbol: "L", AlternateNames: []string{"litre", "l"}},
		Scale:                   1e-3,
		Power:                   3,
		SuppressPowerDecoration: true,
	})
	Milliliter = std.MustDefine(Volume, DefOptions{
		Naming:                  Naming{Name: "milliliter", Symbol: "mL", AlternateNames: []string{"millilitre", "ml"}},
		Scale:                   1e-6,
		Power:                   3,
		SuppressPowerDecoration: true,
	})
	Gallon = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "gallon", Symbol: "gal"},
		Scale:  3.785411784e-3,
		Power:  3,
	})
	Quart = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "quart", Symbol: "qt"},
		Scale:  9.46352946e-4,
		Power:  3,
	})
	Pint = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "pint", Symbol: "pt"},
		Scale:  4.73176473e-4,
		Power:  3,
	})
	Cup = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "cup"},
		Scale:  2.365882365e-4,
		Power:  3,
	})
	FluidOunce = std.MustDefine(Volume, DefOptions{
		Naming: Naming{Name: "fluid ounce", Symbol: "fl oz"},
		Scale:  2.95735295625e-5,
		Power:  3,
	})
)

// Mass
var (
	Kilogram = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "kilogram", Symbol: "kg", AlternateNames: []string{"kilo"}},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Gram = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "gram", Symbol: "g", AlternateNames: []string{"gramme"}},
		Scale:  1e-3,
		Power:  1,
	})
	Milligram = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "milligram", Symbol: "mg"},
		Scale:  1e-6,
		Power:  1,
	})
	Tonne = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "tonne", Symbol: "t", AlternateNames: []string{"metric ton"}},
		Scale:  1000,
		Power:  1,
	})
	Pound = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "pound", Symbol: "lb", AlternateNames: []string{"lbs"}},
		Scale:  0.45359237,
		Power:  1,
	})
	Ounce = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "ounce", Symbol: "oz"},
		Scale:  0.028349523125,
		Power:  1,
	})
	Stone = std.MustDefine(Mass, DefOptions{
		Naming: Naming{Name: "stone", Symbol: "st"},
		Scale:  6.35029318,
		Power:  1,
	})
)

// Time
var (
	Second = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "second", Symbol: "s", AlternateNames: []string{"sec"}},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Millisecond = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "millisecond", Symbol: "ms"},
		Scale:  1e-3,
		Power:  1,
	})
	Minute = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "minute", Symbol: "min"},
		Scale:  60,
		Power:  1,
	})
	Hour = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "hour", Symbol: "h", AlternateNames: []string{"hr"}},
		Scale:  3600,
		Power:  1,
	})
	Day = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "day", Symbol: "d"},
		Scale:  86_400,
		Power:  1,
	})
	Week = std.MustDefine(Time, DefOptions{
		Naming: Naming{Name: "week", AlternateNames: []string{"wk"}},
		Scale:  604_800,
		Power:  1,
	})
)

// Angle
var (
	Radian = std.MustDefine(Angle, DefOptions{
		Naming: Naming{Name: "radian", Symbol: "rad"},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Degree = std.MustDefine(Angle, DefOptions{
		Naming: Naming{Name: "degree", Symbol: "°", AlternateNames: []string{"deg"}},
		Scale:  math.Pi / 180,
		Power:  1,
	})
	ArcMinute = std.MustDefine(Angle, DefOptions{
		Naming: Naming{Name: "arcminute", Symbol: "'", AlternateNames: []string{"arcmin"}},
		Scale:  math.Pi / 180 / 60,
		Power:  1,
	})
	ArcSecond = std.MustDefine(Angle, DefOptions{
		Naming: Naming{Name: "arcsecond", Symbol: `"`, AlternateNames: []string{"arcsec"}},
		Scale:  math.Pi / 180 / 3600,
		Power:  1,
	})
)

// Money. Foreign currencies are abstract: their rate is supplied per
// conversion.
var (
	Usd = std.MustDefine(Money, DefOptions{
		Naming: Naming{Name: "dollar", Symbol: "$", AlternateNames: []string{"USD"}},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Cent = std.MustDefine(Money, DefOptions{
		Naming: Naming{Name: "cent", Symbol: "¢"},
		Scale:  0.01,
		Power:  1,
	})
	Euro = std.MustDefine(Money, DefOptions{
		Naming:   Naming{Name: "euro", Symbol: "€", AlternateNames: []string{"EUR"}},
		Abstract: true,
		Power:    1,
	})
	BritishPound = std.MustDefine(Money, DefOptions{
		Naming:   Naming{Name: "pound sterling", NamePlural: "pounds sterling", Symbol: "£", AlternateNames: []string{"GBP"}},
		Abstract: true,
		Power:    1,
	})
)

// Radioactivity
var (
	Becquerel = std.MustDefine(Radioactivity, DefOptions{
		Naming: Naming{Name: "becquerel", Symbol: "Bq"},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Curie = std.MustDefine(Radioactivity, DefOptions{
		Naming: Naming{Name: "curie", Symbol: "Ci"},
		Scale:  3.7e10,
		Power:  1,
	})
)

// Data
var (
	Byte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "byte", Symbol: "B"},
		Scale:  1,
		Power:  1,
		Base:   true,
	})
	Bit = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "bit"},
		Scale:  0.125,
		Power:  1,
	})
	Kilobyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "kilobyte", Symbol: "kB", AlternateNames: []string{"KB"}},
		Scale:  1e3,
		Power:  1,
	})
	Megabyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "megabyte", Symbol: "MB"},
		Scale:  1e6,
		Power:  1,
	})
	Gigabyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "gigabyte", Symbol: "GB"},
		Scale:  1e9,
		Power:  1,
	})
	Kibibyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "kibibyte", Symbol: "KiB"},
		Scale:  1 << 10,
		Power:  1,
	})
	Mebibyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "mebibyte", Symbol: "MiB"},
		Scale:  1 << 20,
		Power:  1,
	})
	Gibibyte = std.MustDefine(Data, DefOptions{
		Naming: Naming{Name: "gibibyte", Symbol: "GiB"},
		Scale:  1 << 30,
		Power:  1,
	})
)
