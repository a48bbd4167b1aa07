package cloth

import "github.com/matzehuels/clothsim/pkg/vec"

// ParticleID is a stable handle into a cloth's particle arena.
type ParticleID int

// Particle is a Verlet point mass. Velocity is implicit: Position - Previous.
type Particle struct {
	Position     vec.Vec2
	Previous     vec.Vec2
	Acceleration vec.Vec2 // accumulated for the current step only

	Pinned bool
	Pin    vec.Vec2

	links []ConstraintID // constraints this particle attached, in attach order
	refs  []ConstraintID // constraints other particles attached to this one
}

func newParticle(pos vec.Vec2) Particle {
	return Particle{Position: pos, Previous: pos}
}

// PinTo fixes the particle at pos. Resolution restores the pin every frame.
func (p *Particle) PinTo(pos vec.Vec2) {
	p.Pinned = true
	p.Pin = pos
}

// Unpin releases the particle.
func (p *Particle) Unpin() { p.Pinned = false }

// Velocity returns the implicit per-step velocity.
func (p *Particle) Velocity() vec.Vec2 { return p.Position.Sub(p.Previous) }

// Accelerate adds a for the next integration step only.
func (p *Particle) Accelerate(a vec.Vec2) {
	p.Acceleration = p.Acceleration.Add(a)
}

// Links returns a copy of the handles this particle owns, including any
// tombstoned handles not yet dropped by a resolution pass.
func (p *Particle) Links() []ConstraintID {
	out := make([]ConstraintID, len(p.links))
	copy(out, p.links)
	return out
}

// Integrate advances the particle by one Verlet step of length dt.
//
// The constant acceleration is accumulated scaled by dt, and the step then
// applies 0.5*a*dt². The pending acceleration is cleared afterwards.
func (p *Particle) Integrate(dt float64, accel vec.Vec2, damping float64) {
	p.Acceleration = p.Acceleration.Add(accel.Scale(dt))

	v := p.Position.Sub(p.Previous).Scale(damping)
	next := p.Position.Add(v).Add(p.Acceleration.Scale(0.5 * dt * dt))

	p.Previous = p.Position
	p.Position = next
	p.Acceleration = vec.Zero
}

// clamp keeps the particle inside [0,w]x[0,h]. A clamped axis also resets
// Previous so the wall does not inject velocity.
func (p *Particle) clamp(w, h float64) {
	if p.Position.X > w {
		p.Position.X = w
		p.Previous.X = w
	} else if p.Position.X < 0 {
		p.Position.X = 0
		p.Previous.X = 0
	}

	if p.Position.Y > h {
		p.Position.Y = h
		p.Previous.Y = h
	} else if p.Position.Y < 0 {
		p.Position.Y = 0
		p.Previous.Y = 0
	}
}
