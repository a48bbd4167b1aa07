// Package config reads and writes clothsim settings files.
//
// Settings are TOML, grouped by concern:
//
//	[viewport]
//	width = 800.0
//	height = 640.0
//
//	[lattice]
//	spacing = 15.0
//	cols = 50
//	rows = 30
//	top_offset = 20.0
//
//	[pointer]
//	drag_radius = 20.0
//	cut_radius = 5.0
//	drag_amplification = 1.8
//
//	[physics]
//	gravity = 100.0
//	wind_x = 0.0
//	wind_y = 0.0
//	tear_factor = 4.0
//	velocity_damping = 0.99
//	time_step = 0.16
//
//	[interactive]
//	fps = 60
//
// Missing keys keep their defaults. Unknown keys are rejected so that a typo
// never silently falls back to a default.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/errors"
)

// DefaultFPS is the interactive frame rate.
const DefaultFPS = 60

// Settings is a decoded settings file.
type Settings struct {
	Cloth cloth.Config
	FPS   int
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{Cloth: cloth.DefaultConfig(), FPS: DefaultFPS}
}

// Validate checks the cloth configuration and the frame rate.
func (s Settings) Validate() error {
	if err := s.Cloth.Validate(); err != nil {
		return err
	}
	return errors.ValidateCount("fps", s.FPS, 1)
}

type file struct {
	Viewport    viewport    `toml:"viewport"`
	Lattice     lattice     `toml:"lattice"`
	Pointer     pointer     `toml:"pointer"`
	Physics     physics     `toml:"physics"`
	Interactive interactive `toml:"interactive"`
}

type viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type lattice struct {
	Spacing   float64 `toml:"spacing"`
	Cols      int     `toml:"cols"`
	Rows      int     `toml:"rows"`
	TopOffset float64 `toml:"top_offset"`
}

type pointer struct {
	DragRadius        float64 `toml:"drag_radius"`
	CutRadius         float64 `toml:"cut_radius"`
	DragAmplification float64 `toml:"drag_amplification"`
}

type physics struct {
	Gravity         float64 `toml:"gravity"`
	WindX           float64 `toml:"wind_x"`
	WindY           float64 `toml:"wind_y"`
	TearFactor      float64 `toml:"tear_factor"`
	VelocityDamping float64 `toml:"velocity_damping"`
	TimeStep        float64 `toml:"time_step"`
}

type interactive struct {
	FPS int `toml:"fps"`
}

func toFile(s Settings) file {
	c := s.Cloth
	return file{
		Viewport: viewport{Width: c.Width, Height: c.Height},
		Lattice:  lattice{Spacing: c.Spacing, Cols: c.Cols, Rows: c.Rows, TopOffset: c.TopOffset},
		Pointer:  pointer{DragRadius: c.DragRadius, CutRadius: c.CutRadius, DragAmplification: c.DragAmplification},
		Physics: physics{
			Gravity:         c.Gravity,
			WindX:           c.WindX,
			WindY:           c.WindY,
			TearFactor:      c.TearFactor,
			VelocityDamping: c.VelocityDamping,
			TimeStep:        c.TimeStep,
		},
		Interactive: interactive{FPS: s.FPS},
	}
}

func (f file) settings() Settings {
	return Settings{
		Cloth: cloth.Config{
			Width:             f.Viewport.Width,
			Height:            f.Viewport.Height,
			Spacing:           f.Lattice.Spacing,
			Cols:              f.Lattice.Cols,
			Rows:              f.Lattice.Rows,
			TopOffset:         f.Lattice.TopOffset,
			DragRadius:        f.Pointer.DragRadius,
			CutRadius:         f.Pointer.CutRadius,
			DragAmplification: f.Pointer.DragAmplification,
			Gravity:           f.Physics.Gravity,
			WindX:             f.Physics.WindX,
			WindY:             f.Physics.WindY,
			TearFactor:        f.Physics.TearFactor,
			VelocityDamping:   f.Physics.VelocityDamping,
			TimeStep:          f.Physics.TimeStep,
		},
		FPS: f.Interactive.FPS,
	}
}

// Load reads and validates a settings file.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
	}
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInternal, err, "open settings %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads settings from r on top of the defaults and validates them.
func Decode(r io.Reader) (Settings, error) {
	f := toFile(Default())
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, errors.New(errors.ErrCodeInvalidConfig, "unknown settings keys: %s", strings.Join(keys, ", "))
	}

	s := f.settings()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s Settings) error {
	return toml.NewEncoder(w).Encode(toFile(s))
}

// Marshal returns s as TOML bytes.
func Marshal(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
