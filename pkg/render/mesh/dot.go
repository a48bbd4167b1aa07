package mesh

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/render"
	"github.com/matzehuels/clothsim/pkg/vec"
)

const (
	nodeColor = "#828282"
	pinColor  = "#ff4040"
)

type node struct {
	pos    vec.Vec2
	pinned bool
}

// ToDOT converts a scene to DOT with pinned node positions for neato.
func ToDOT(s render.Scene) string {
	nodes := make(map[int]node)
	for _, l := range s.Lines {
		nodes[l.From] = node{pos: l.A}
		nodes[l.To] = node{pos: l.B}
	}
	for _, p := range s.Pins {
		nodes[p.ID] = node{pos: p.Pos, pinned: true}
	}

	var buf bytes.Buffer
	buf.WriteString("graph cloth {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=point, width=0.04, color=%q];\n", nodeColor)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2];\n", nodeColor)
	buf.WriteString("\n")

	for _, id := range slices.Sorted(maps.Keys(nodes)) {
		n := nodes[id]
		pos := fmt.Sprintf("%s,%s!", coord(n.pos.X), coord(s.Height-n.pos.Y))
		if n.pinned {
			fmt.Fprintf(&buf, "  p%d [pos=%q, color=%q];\n", id, pos, pinColor)
			continue
		}
		fmt.Fprintf(&buf, "  p%d [pos=%q];\n", id, pos)
	}

	buf.WriteString("\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&buf, "  p%d -- p%d;\n", l.From, l.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return buf.Bytes(), nil
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
