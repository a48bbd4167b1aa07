package render

import (
	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/vec"
)

// Line is one live constraint. From and To are particle indices.
type Line struct {
	From, To int
	A, B     vec.Vec2
}

// Pin is a pinned particle.
type Pin struct {
	ID  int
	Pos vec.Vec2
}

// Scene is a detached copy of one frame of a cloth.
type Scene struct {
	Width     float64
	Height    float64
	Frame     int
	Particles int
	Lines     []Line
	Pins      []Pin
}

// Snapshot copies the renderable state of c.
func Snapshot(c *cloth.Cloth) Scene {
	cfg := c.Config()
	s := Scene{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Frame:     c.FrameCount(),
		Particles: c.NumParticles(),
		Lines:     make([]Line, 0, c.NumConstraints()),
	}
	for seg := range c.Segments() {
		s.Lines = append(s.Lines, Line{
			From: int(seg.From),
			To:   int(seg.To),
			A:    seg.A,
			B:    seg.B,
		})
	}
	for id, p := range c.Particles() {
		if p.Pinned {
			s.Pins = append(s.Pins, Pin{ID: int(id), Pos: p.Position})
		}
	}
	return s
}
