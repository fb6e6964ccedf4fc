// Package render draws a unit registry as a Graphviz diagram.
//
// # Overview
//
// Each quantity kind becomes a cluster and each unit definition a rounded
// box inside it. Base units are filled, abstract units are dashed. Solid
// arrows run from the power 1 member of a sibling group to its higher
// powers (meter to square meter to cubic meter), and dotted lines join the
// base units of related kinds.
//
//	dot := render.ToDOT(units.Standard(), render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output with the external rsvg-convert tool
// (from librsvg).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
