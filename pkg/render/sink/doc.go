// Package sink provides output format renderers for cloth scenes.
//
// # Overview
//
// A "sink" transforms a [render.Scene] into a final output format:
//
//   - SVG: one line per live constraint, optional pin markers
//   - JSON: scene data for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// The defaults match the interactive view: grey two-pixel strokes on black.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithStroke("#ffffff", 1),
//	    sink.WithPins("#ff4040"),
//	    sink.WithRunID(result.RunID),
//	)
//
// All renderers are deterministic for a given scene and are safe to call
// concurrently.
package sink
