// Package sim runs the cloth headlessly for a fixed number of frames.
//
// A run builds a cloth from a [cloth.Config], feeds it one pointer snapshot
// per frame from an [InputSource] and steps it with the configured time step.
// Cancellation is honoured between frames, never inside one.
//
//	runner := sim.NewRunner(logger)
//	result, err := runner.Run(ctx, sim.Options{
//	    Frames: 240,
//	    Source: script,
//	})
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(render.Snapshot(result.Cloth))
package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/errors"
)

// DefaultFrames is the number of frames stepped when Options.Frames is zero.
const DefaultFrames = 120

// InputSource yields the pointer snapshot for each frame. prev is the input
// of the previous frame, so sources can advance it and keep pointer motion.
type InputSource interface {
	Input(frame int, prev cloth.Input) cloth.Input
}

// InputFunc adapts a function to [InputSource].
type InputFunc func(frame int, prev cloth.Input) cloth.Input

// Input calls f.
func (f InputFunc) Input(frame int, prev cloth.Input) cloth.Input { return f(frame, prev) }

// Idle is a source with the pointer held still and both buttons up.
var Idle InputSource = InputFunc(func(_ int, prev cloth.Input) cloth.Input {
	in := prev.Advance(prev.Pointer)
	in.Drag, in.Cut = false, false
	return in
})

// Options configures a headless run.
type Options struct {
	// Config builds the cloth. The zero value selects cloth.DefaultConfig.
	Config cloth.Config

	// Frames is the number of frames to step. Zero means DefaultFrames.
	Frames int

	// Source supplies pointer input. Nil means Idle.
	Source InputSource

	// RunID labels the run in logs and hooks. Empty means a fresh UUID.
	RunID string

	// OnFrame, if set, is called after each frame.
	OnFrame func(cloth.StepStats)

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults fills zero fields and validates the rest.
// It is safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == (cloth.Config{}) {
		o.Config = cloth.DefaultConfig()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Frames < 0 {
		return errors.Invalid(errors.ErrCodeInvalidInput, "frames", "must not be negative, got %d", o.Frames)
	}
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.Source == nil {
		o.Source = Idle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
