// Package script replays pointer input from a timeline.
//
// A script is a TOML document listing pointer events by frame number:
//
//	interpolate = true
//
//	[[event]]
//	frame = 0
//	x = 400.0
//	y = 120.0
//	drag = true
//
//	[[event]]
//	frame = 30
//	x = 600.0
//	y = 160.0
//	drag = true
//
//	[[event]]
//	frame = 31
//	x = 600.0
//	y = 160.0
//
// Each event holds from its frame until the next one. With interpolate set,
// the pointer glides linearly between consecutive events instead of jumping,
// while button state still switches at event frames. Before the first event
// the pointer rests at the first event's position with both buttons up.
package script

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/vec"
)

// Event is the pointer state from Frame onward.
type Event struct {
	Frame int     `toml:"frame"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Drag  bool    `toml:"drag"`
	Cut   bool    `toml:"cut"`
}

// Script is a validated pointer timeline.
type Script struct {
	events      []Event
	interpolate bool
}

type document struct {
	Interpolate bool    `toml:"interpolate"`
	Events      []Event `toml:"event"`
}

// New validates events and returns a script. Frames must be non-negative and
// strictly increasing.
func New(events []Event, interpolate bool) (*Script, error) {
	for i, e := range events {
		if e.Frame < 0 {
			return nil, errors.Invalid(errors.ErrCodeInvalidScript, fmt.Sprintf("event[%d].frame", i), "must not be negative, got %d", e.Frame)
		}
		if i > 0 && e.Frame <= events[i-1].Frame {
			return nil, errors.Invalid(errors.ErrCodeInvalidScript, fmt.Sprintf("event[%d].frame", i), "must be after frame %d, got %d", events[i-1].Frame, e.Frame)
		}
		if !vec.New(e.X, e.Y).IsFinite() {
			return nil, errors.Invalid(errors.ErrCodeInvalidScript, fmt.Sprintf("event[%d]", i), "position must be finite")
		}
	}
	return &Script{events: slices.Clone(events), interpolate: interpolate}, nil
}

// Parse decodes a TOML script.
func Parse(r io.Reader) (*Script, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown script key %q", undecoded[0].String())
	}
	return New(doc.Events, doc.Interpolate)
}

// Load reads a TOML script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open script %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Events returns a copy of the timeline.
func (s *Script) Events() []Event { return slices.Clone(s.events) }

// Len returns the frame of the last event plus one, the number of frames the
// script needs to play out fully.
func (s *Script) Len() int {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Frame + 1
}

// Input returns the input for frame, advancing prev so the pointer motion
// between frames is preserved for dragging. On frame 0 the pointer starts
// where the script places it, so the first frame carries no motion.
func (s *Script) Input(frame int, prev cloth.Input) cloth.Input {
	if len(s.events) == 0 {
		return prev.Advance(prev.Pointer)
	}
	if frame == 0 {
		first := s.events[0]
		prev.Pointer = vec.New(first.X, first.Y)
	}

	// Index of the first event strictly after frame.
	next, _ := slices.BinarySearchFunc(s.events, frame, func(e Event, f int) int {
		if e.Frame <= f {
			return -1
		}
		return 1
	})
	if next == 0 {
		first := s.events[0]
		in := prev.Advance(vec.New(first.X, first.Y))
		in.Drag, in.Cut = false, false
		return in
	}

	cur := s.events[next-1]
	pos := vec.New(cur.X, cur.Y)
	if s.interpolate && next < len(s.events) {
		to := s.events[next]
		t := float64(frame-cur.Frame) / float64(to.Frame-cur.Frame)
		pos = vec.New(lerp(cur.X, to.X, t), lerp(cur.Y, to.Y, t))
	}

	in := prev.Advance(pos)
	in.Drag, in.Cut = cur.Drag, cur.Cut
	return in
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*math.Max(0, math.Min(1, t))
}
