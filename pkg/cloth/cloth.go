package cloth

import (
	"iter"

	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/vec"
)

// Cloth is the particle and constraint arena.
//
// The zero value is not usable; create one with [New] or [NewEmpty].
type Cloth struct {
	cfg         Config
	particles   []Particle
	constraints []Constraint
	live        int
	frame       int
}

// NewEmpty validates cfg and returns a cloth with no particles. Use
// [Cloth.AddParticle] and [Cloth.Attach] to build a custom mesh.
func NewEmpty(cfg Config) (*Cloth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cloth{cfg: cfg}, nil
}

// Config returns the configuration the cloth was built with.
func (c *Cloth) Config() Config { return c.cfg }

// FrameCount returns the number of completed steps.
func (c *Cloth) FrameCount() int { return c.frame }

// NumParticles returns the particle count. It never changes after construction.
func (c *Cloth) NumParticles() int { return len(c.particles) }

// NumConstraints returns the number of live constraints. It only ever decreases
// once the mesh is built.
func (c *Cloth) NumConstraints() int { return c.live }

// AddParticle appends a free particle at pos.
func (c *Cloth) AddParticle(pos vec.Vec2) ParticleID {
	c.particles = append(c.particles, newParticle(pos))
	return ParticleID(len(c.particles) - 1)
}

// Particle returns the particle for id. The pointer stays valid until the
// next AddParticle call.
func (c *Cloth) Particle(id ParticleID) *Particle {
	return &c.particles[id]
}

// Constraint returns a copy of the arena entry for id, torn or not.
func (c *Cloth) Constraint(id ConstraintID) Constraint {
	return c.constraints[id]
}

// Attach creates a constraint owned by from and ending at to. The rest length
// is the current distance between the two particles.
func (c *Cloth) Attach(from, to ParticleID) (ConstraintID, error) {
	if !c.valid(from) || !c.valid(to) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "attach %d -> %d: particle out of range", from, to)
	}
	if from == to {
		return 0, errors.New(errors.ErrCodeInvalidInput, "attach %d -> %d: particle cannot attach to itself", from, to)
	}
	rest := c.particles[from].Position.Dist(c.particles[to].Position)
	if rest <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "attach %d -> %d: coincident particles", from, to)
	}

	id := ConstraintID(len(c.constraints))
	c.constraints = append(c.constraints, Constraint{A: from, B: to, RestLength: rest})
	c.particles[from].links = append(c.particles[from].links, id)
	c.particles[to].refs = append(c.particles[to].refs, id)
	c.live++
	return id, nil
}

// Tear removes a constraint. Tearing an already torn constraint is a no-op and
// reports false.
func (c *Cloth) Tear(id ConstraintID) bool {
	return c.tear(id, Severed)
}

func (c *Cloth) tear(id ConstraintID, reason TearReason) bool {
	if id < 0 || int(id) >= len(c.constraints) || c.constraints[id].Torn() {
		return false
	}
	c.constraints[id].reason = reason
	c.live--
	return true
}

// Sever removes every constraint touching the particle, whichever end owns
// it, and returns how many were live. The particle's own list is cleared at
// once; neighbours drop their stale handles on their next resolution pass.
func (c *Cloth) Sever(id ParticleID) int {
	p := &c.particles[id]
	n := 0
	for _, cid := range p.links {
		if c.tear(cid, Severed) {
			n++
		}
	}
	for _, cid := range p.refs {
		if c.tear(cid, Severed) {
			n++
		}
	}
	p.links = p.links[:0]
	p.refs = p.refs[:0]
	return n
}

// Degree returns the number of live constraints touching the particle.
func (c *Cloth) Degree(id ParticleID) int {
	p := &c.particles[id]
	n := 0
	for _, cid := range p.links {
		if !c.constraints[cid].Torn() {
			n++
		}
	}
	for _, cid := range p.refs {
		if !c.constraints[cid].Torn() {
			n++
		}
	}
	return n
}

// Segments yields every live constraint with its current endpoint positions,
// in arena order.
func (c *Cloth) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i, con := range c.constraints {
			if con.Torn() {
				continue
			}
			s := Segment{
				ID:   ConstraintID(i),
				From: con.A,
				To:   con.B,
				A:    c.particles[con.A].Position,
				B:    c.particles[con.B].Position,
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Particles yields every particle in construction order. The yielded
// pointers must not be retained past the iteration.
func (c *Cloth) Particles() iter.Seq2[ParticleID, *Particle] {
	return func(yield func(ParticleID, *Particle) bool) {
		for i := range c.particles {
			if !yield(ParticleID(i), &c.particles[i]) {
				return
			}
		}
	}
}

func (c *Cloth) valid(id ParticleID) bool {
	return id >= 0 && int(id) < len(c.particles)
}
