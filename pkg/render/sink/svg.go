package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/clothsim/pkg/render"
)

const (
	DefaultStroke      = "#828282"
	DefaultStrokeWidth = 2.0
	DefaultBackground  = "#000000"
	pinRadius          = 3.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke      string
	strokeWidth float64
	background  string
	pins        string
	runID       string
}

// WithStroke sets the line colour and width.
func WithStroke(color string, width float64) SVGOption {
	return func(r *svgRenderer) { r.stroke = color; r.strokeWidth = width }
}

// WithBackground sets the fill behind the cloth. An empty colour leaves the
// background transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithPins draws a marker of the given colour on every pinned particle.
func WithPins(color string) SVGOption { return func(r *svgRenderer) { r.pins = color } }

// WithRunID records the run id in the SVG description.
func WithRunID(id string) SVGOption { return func(r *svgRenderer) { r.runID = id } }

// RenderSVG draws every line of the scene.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
		background:  DefaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.Width), num(s.Height), s.Width, s.Height)
	if r.runID != "" {
		fmt.Fprintf(&buf, "  <desc>run %s frame %d</desc>\n", r.runID, s.Frame)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", r.background)
	}

	fmt.Fprintf(&buf, "  <g stroke=\"%s\" stroke-width=\"%s\" stroke-linecap=\"round\">\n", r.stroke, num(r.strokeWidth))
	for _, l := range s.Lines {
		fmt.Fprintf(&buf, "    <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n",
			num(l.A.X), num(l.A.Y), num(l.B.X), num(l.B.Y))
	}
	buf.WriteString("  </g>\n")

	if r.pins != "" && len(s.Pins) > 0 {
		fmt.Fprintf(&buf, "  <g fill=\"%s\">\n", r.pins)
		for _, p := range s.Pins {
			fmt.Fprintf(&buf, "    <circle cx=\"%s\" cy=\"%s\" r=\"%s\"/>\n", num(p.Pos.X), num(p.Pos.Y), num(pinRadius))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(roundTo(v, 100), 'f', -1, 64)
}
