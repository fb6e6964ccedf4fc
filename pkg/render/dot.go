package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/measure/pkg/grammar"
	"github.com/matzehuels/measure/pkg/units"
)

// Options configures registry diagram rendering.
type Options struct {
	// Detailed adds the scale and power range to every unit label.
	Detailed bool
	// Kinds restricts the diagram to the given kinds. Relations to kinds
	// outside the set are not drawn.
	Kinds []*units.Kind
}

// ToDOT converts a registry to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(reg *units.Registry, opts Options) string {
	kinds := reg.Kinds()
	if len(opts.Kinds) > 0 {
		kinds = slices.DeleteFunc(kinds, func(k *units.Kind) bool {
			return !slices.Contains(opts.Kinds, k)
		})
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for _, k := range kinds {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", k.ID())
		fmt.Fprintf(&buf, "    label=%q;\n", k.Name())
		buf.WriteString("    style=rounded;\n")
		for _, d := range reg.Defs(k) {
			fmt.Fprintf(&buf, "    %s [%s];\n", nodeID(d), strings.Join(fmtAttrs(d, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, k := range kinds {
		for _, d := range reg.Defs(k) {
			writeSiblingEdges(&buf, reg, d)
		}
	}

	for i, k := range kinds {
		for _, other := range reg.RelatedKinds(k) {
			if !slices.Contains(kinds[i+1:], other) {
				continue
			}
			from, to := anchor(reg, k), anchor(reg, other)
			if from == nil || to == nil {
				continue
			}
			fmt.Fprintf(&buf, "  %s -> %s [style=dotted, dir=none, constraint=false];\n", nodeID(from), nodeID(to))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeSiblingEdges draws the sibling group of d once, from its lowest power
// member.
func writeSiblingEdges(buf *bytes.Buffer, reg *units.Registry, d *units.UnitDef) {
	sibs := reg.PowerSiblings(d)
	if len(sibs) == 0 {
		return
	}
	powers := slices.Sorted(maps.Keys(sibs))
	if sibs[powers[0]] != d {
		return
	}
	for _, p := range powers[1:] {
		fmt.Fprintf(buf, "  %s -> %s [label=%q];\n", nodeID(d), nodeID(sibs[p]), grammar.Superscript(p))
	}
}

// anchor picks the node that stands for a kind in relation edges.
func anchor(reg *units.Registry, k *units.Kind) *units.UnitDef {
	if base := reg.Base(k); base != nil {
		return base
	}
	if defs := reg.Defs(k); len(defs) > 0 {
		return defs[0]
	}
	return nil
}

func nodeID(d *units.UnitDef) string {
	return fmt.Sprintf("\"u%d\"", d.Token())
}

func fmtLabel(d *units.UnitDef, detailed bool) string {
	label := d.Name()
	if d.Symbol() != "" {
		label += " (" + d.Symbol() + ")"
	}
	if !detailed {
		return label
	}

	scale := "abstract"
	if !d.IsAbstract() {
		scale = strconv.FormatFloat(d.Scale(), 'g', -1, 64)
	}
	parts := []string{"scale: " + scale}
	switch {
	case d.IsFixedPower():
		parts = append(parts, fmt.Sprintf("power: %d", d.PowerMin()))
	case d.PowerMax() < d.PowerMin():
		parts = append(parts, fmt.Sprintf("power: %d+", d.PowerMin()))
	default:
		parts = append(parts, fmt.Sprintf("power: %d-%d", d.PowerMin(), d.PowerMax()))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(d *units.UnitDef, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(d, detailed))}
	switch {
	case d.IsAbstract():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case d.IsBase():
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// origin regardless of the translation Graphviz emits.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
