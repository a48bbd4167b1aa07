package sink

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/clothsim/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID string
}

// WithJSONRunID records the run id in the output.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

type jsonOutput struct {
	RunID       string      `json:"run_id,omitempty"`
	Frame       int         `json:"frame"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Particles   int         `json:"particles"`
	Constraints int         `json:"constraints"`
	Segments    []jsonLine  `json:"segments"`
	Pins        []jsonPoint `json:"pins,omitempty"`
}

type jsonLine struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

type jsonPoint struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// RenderJSON exports the scene as a pretty-printed JSON document.
// Coordinates are rounded to three decimals.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		RunID:       r.runID,
		Frame:       s.Frame,
		Width:       s.Width,
		Height:      s.Height,
		Particles:   s.Particles,
		Constraints: len(s.Lines),
		Segments:    make([]jsonLine, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		out.Segments = append(out.Segments, jsonLine{
			From: l.From, To: l.To,
			X1: roundTo(l.A.X, 1000), Y1: roundTo(l.A.Y, 1000),
			X2: roundTo(l.B.X, 1000), Y2: roundTo(l.B.Y, 1000),
		})
	}
	for _, p := range s.Pins {
		out.Pins = append(out.Pins, jsonPoint{ID: p.ID, X: roundTo(p.Pos.X, 1000), Y: roundTo(p.Pos.Y, 1000)})
	}

	return json.MarshalIndent(out, "", "  ")
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}
