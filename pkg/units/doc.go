// Package units decodes measurement text into typed quantities and implements
// their conversion and arithmetic.
//
// # Overview
//
// A [Registry] groups unit definitions ([UnitDef]) by quantity kind ([Kind]).
// Definitions of one kind convert into each other through a scale to the
// kind's base unit. A [Unit] is a value of a definition at a power: 5 cm is
// Centimeter at power 1, 5 cm² is Centimeter at power 2.
//
// Definitions of different powers of the same base unit are linked as power
// siblings (meter, square meter, cubic meter; decimeter and liter), which is
// how multiplication turns meters into square meters and how "5 sq m" is read
// as a square meter.
//
// # Parsing
//
//	u, err := units.Parse(`5'6"`)
//	// u.Value() == 5.5, u.Def() == units.Foot
//
//	u, err = units.Parse("12 sq ft", units.Length)
//	// Foot at power 2
//
// Text is matched against a grammar compiled from every lexical form of the
// registered definitions (see package grammar). Composite measurements such as
// 7' 4 3/4" are summed into the unit of their first component.
//
// # Standard Catalog
//
// [Standard] returns the built-in registry: Length, Area, Volume, Mass, Time,
// Angle, Money, Radioactivity and Data. Custom units may be added to it with
// [Registry.Define] until it is first used for parsing, at which point it is
// sealed.
//
// # Errors
//
// All failures are *errors.Error values from pkg/errors. Parse failures
// (NO_NUMBER_FOUND, NO_UNIT_MATCH, POWER_MISMATCH) are ordinary input
// problems; registry misconfiguration of the standard catalog panics at
// package initialization.
package units
