// Package pkg holds the libraries behind measure, a parser and algebra for
// human-written physical quantities.
//
// # Overview
//
// measure turns text such as "5'6\"", "5 sq cm" or "2-1/4\"" into typed
// measurements that carry a value, a unit definition and a power (length,
// area, volume), then converts and combines them without losing track of
// dimensions. The libraries are layered leaf to root:
//
//  1. [errors] - coded errors shared by every package
//  2. [formula] - composable scalar functions used as conversion factors
//  3. [grammar] - regex fragments and the compiled unit grammar
//  4. [units] - kinds, unit definitions, the registry, the parser and the
//     Unit value type, plus the standard catalog
//  5. [config] - TOML configuration: parser tuning, abstract scales, custom units
//  6. [render] - Graphviz diagrams of a registry
//  7. [observability] - parse, grammar and cache hooks
//
// # Quick Start
//
//	u, err := units.Parse("5 sq ft")
//	if err != nil {
//	    return err
//	}
//	m2, err := u.To(units.Meter) // 0.4645152 m²
//
// Restrict matching to kinds when symbols are ambiguous:
//
//	u, err := units.Parse("5'", units.Angle) // 5 arcminutes, not 5 feet
//
// Combine measurements with named operations:
//
//	area, err := units.From(units.Meter, 3).Mul(units.From(units.Meter, 2)) // 6 m²
//
// [errors]: github.com/matzehuels/measure/pkg/errors
// [formula]: github.com/matzehuels/measure/pkg/formula
// [grammar]: github.com/matzehuels/measure/pkg/grammar
// [units]: github.com/matzehuels/measure/pkg/units
// [config]: github.com/matzehuels/measure/pkg/config
// [render]: github.com/matzehuels/measure/pkg/render
// [observability]: github.com/matzehuels/measure/pkg/observability
package pkg
