package cloth

import (
	"fmt"

	"github.com/matzehuels/clothsim/pkg/vec"
)

// New builds the rectangular cloth described by cfg: (Cols+1)x(Rows+1)
// particles in row-major order, each attached to its left and upper
// neighbours, with the whole top row pinned in place.
//
// An invalid cfg fails here rather than during simulation.
func New(cfg Config) (*Cloth, error) {
	c, err := NewEmpty(cfg)
	if err != nil {
		return nil, err
	}

	cols, rows := cfg.Cols+1, cfg.Rows+1
	c.particles = make([]Particle, 0, cols*rows)
	c.constraints = make([]Constraint, 0, 2*cols*rows-cols-rows)

	origin := cfg.Origin()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pos := origin.Add(vec.New(float64(x)*cfg.Spacing, float64(y)*cfg.Spacing))
			id := c.AddParticle(pos)

			if x != 0 {
				if _, err := c.Attach(id, id-1); err != nil {
					return nil, fmt.Errorf("attach left: %w", err)
				}
			}
			if y != 0 {
				if _, err := c.Attach(id, id-ParticleID(cols)); err != nil {
					return nil, fmt.Errorf("attach up: %w", err)
				}
			}
			if y == 0 {
				c.particles[id].PinTo(pos)
			}
		}
	}
	return c, nil
}

// Index returns the particle handle for lattice column x and row y of a cloth
// built by [New] with cfg.
func (c Config) Index(x, y int) ParticleID {
	return ParticleID(y*(c.Cols+1) + x)
}
