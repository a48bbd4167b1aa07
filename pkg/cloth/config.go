package cloth

import (
	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/vec"
)

// Default tunables. They reproduce the classic tearable cloth demo this
// simulator is modelled on.
const (
	DefaultWidth             = 800.0
	DefaultHeight            = 640.0
	DefaultSpacing           = 15.0
	DefaultCols              = 50
	DefaultRows              = 30
	DefaultTopOffset         = 20.0
	DefaultDragRadius        = 20.0
	DefaultCutRadius         = 5.0
	DefaultGravity           = 100.0
	DefaultTearFactor        = 4.0
	DefaultVelocityDamping   = 0.99
	DefaultDragAmplification = 1.8
	DefaultTimeStep          = 0.16
)

// Config holds every tunable of the simulation. One Config is passed to [New]
// and kept by the cloth for the rest of its life.
type Config struct {
	// Viewport. Particles are clamped into [0,Width]x[0,Height].
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Lattice.
	Spacing   float64 `json:"spacing"`
	Cols      int     `json:"cols"`
	Rows      int     `json:"rows"`
	TopOffset float64 `json:"top_offset"`

	// Pointer interaction.
	DragRadius        float64 `json:"drag_radius"`
	CutRadius         float64 `json:"cut_radius"`
	DragAmplification float64 `json:"drag_amplification"`

	// Forces. Gravity pulls toward +Y; wind is an extra constant acceleration.
	Gravity float64 `json:"gravity"`
	WindX   float64 `json:"wind_x"`
	WindY   float64 `json:"wind_y"`

	// TearFactor is the multiple of rest length beyond which a constraint tears.
	TearFactor float64 `json:"tear_factor"`

	// VelocityDamping multiplies the implicit velocity every step. 1 disables damping.
	VelocityDamping float64 `json:"velocity_damping"`

	// TimeStep is the simulated time per frame. It is fixed, not wall clock.
	TimeStep float64 `json:"time_step"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Spacing:           DefaultSpacing,
		Cols:              DefaultCols,
		Rows:              DefaultRows,
		TopOffset:         DefaultTopOffset,
		DragRadius:        DefaultDragRadius,
		CutRadius:         DefaultCutRadius,
		DragAmplification: DefaultDragAmplification,
		Gravity:           DefaultGravity,
		TearFactor:        DefaultTearFactor,
		VelocityDamping:   DefaultVelocityDamping,
		TimeStep:          DefaultTimeStep,
	}
}

// Validate reports the first invalid field as an [errors.ErrCodeInvalidConfig] error.
func (c Config) Validate() error {
	checks := []error{
		errors.ValidatePositive("width", c.Width),
		errors.ValidatePositive("height", c.Height),
		errors.ValidatePositive("spacing", c.Spacing),
		errors.ValidateCount("cols", c.Cols, 1),
		errors.ValidateCount("rows", c.Rows, 1),
		errors.ValidateNonNegative("top_offset", c.TopOffset),
		errors.ValidateNonNegative("drag_radius", c.DragRadius),
		errors.ValidateNonNegative("cut_radius", c.CutRadius),
		errors.ValidatePositive("drag_amplification", c.DragAmplification),
		errors.ValidateFinite("gravity", c.Gravity),
		errors.ValidateFinite("wind_x", c.WindX),
		errors.ValidateFinite("wind_y", c.WindY),
		errors.ValidateRange("velocity_damping", c.VelocityDamping, 0, 1),
		errors.ValidatePositive("time_step", c.TimeStep),
		errors.ValidateAbove("tear_factor", c.TearFactor, 1),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Acceleration returns the constant acceleration applied to every free
// particle: gravity along +Y plus wind.
func (c Config) Acceleration() vec.Vec2 {
	return vec.New(c.WindX, c.Gravity+c.WindY)
}

// Frame builds the per-frame input for this configuration's viewport and
// fixed time step.
func (c Config) Frame(in Input) Frame {
	return Frame{DT: c.TimeStep, Input: in, Width: c.Width, Height: c.Height}
}

// Origin returns the position of the top-left lattice particle: the cloth is
// centred horizontally and starts TopOffset below the top edge.
func (c Config) Origin() vec.Vec2 {
	return vec.New(c.Width/2-float64(c.Cols)*c.Spacing/2, c.TopOffset)
}
