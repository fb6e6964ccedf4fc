// Package config loads measure's TOML configuration.
//
// A configuration file tunes the parser, supplies the scales abstract units
// need for conversion, and extends a registry with custom units:
//
//	[parser]
//	match_timeout = "250ms"
//
//	[compare]
//	epsilon = 1e-6
//
//	[scales]
//	storey = 3.0
//	euro = 1.08
//
//	[[units]]
//	kind = "Length"
//	name = "furlong"
//	symbol = "fur"
//	scale = 201.168
//
//	[[units]]
//	kind = "Area"
//	name = "square furlong"
//	power = 2
//	scale = 40468.564224
//
//	[[siblings]]
//	units = ["furlong", "square furlong"]
//
// [Load] reads and validates a file; [Config.Apply] registers its units and
// siblings on a registry that has not been sealed yet. Custom units whose kind
// is unknown to the registry get a new kind.
package config
