// Package render turns cloth state into exportable images and documents.
//
// # Overview
//
// Rendering starts from a [Scene], a plain copy of everything a renderer
// needs from one frame: the viewport, the live segments and the pinned
// particles. Taking a snapshot decouples exporters from the simulation, so
// a scene can be rendered after the cloth has moved on.
//
//	scene := render.Snapshot(c)
//	svg := sink.RenderSVG(scene)
//	png, err := render.ToPNG(svg, 2.0)
//
// Subpackages:
//
//   - [sink]: SVG, JSON, PNG and PDF output
//   - [mesh]: the constraint mesh as a Graphviz graph
//   - [term]: braille canvas for drawing in a terminal
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
// [sink]: github.com/matzehuels/clothsim/pkg/render/sink
// [mesh]: github.com/matzehuels/clothsim/pkg/render/mesh
// [term]: github.com/matzehuels/clothsim/pkg/render/term
package render
