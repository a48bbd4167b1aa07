package cloth

import "github.com/matzehuels/clothsim/pkg/vec"

// Input is the pointer state for one frame. The host keeps it between frames
// and passes it by value; the cloth never stores it.
type Input struct {
	Pointer  vec.Vec2
	Previous vec.Vec2 // pointer position one frame earlier
	Drag     bool
	Cut      bool
}

// Advance returns the input for the next frame with the pointer at p.
func (in Input) Advance(p vec.Vec2) Input {
	in.Previous = in.Pointer
	in.Pointer = p
	return in
}

// Motion returns how far the pointer moved since the previous frame.
func (in Input) Motion() vec.Vec2 { return in.Pointer.Sub(in.Previous) }

// Frame is everything the cloth consumes for one step.
type Frame struct {
	DT     float64
	Input  Input
	Width  float64
	Height float64
}

// StepStats summarises one call to [Cloth.Step].
type StepStats struct {
	Frame   int // frame number after the step, starting at 1
	Torn    int // constraints torn by overstretching
	Severed int // constraints severed by the pointer
	Live    int // live constraints after the step
}

// Step advances the simulation by one frame. Every particle is resolved,
// then handed the pointer snapshot, then integrated, in construction order.
func (c *Cloth) Step(f Frame) StepStats {
	var st StepStats
	accel := c.cfg.Acceleration()

	for i := range c.particles {
		id := ParticleID(i)
		st.Torn += c.ResolveConstraints(id, f.Width, f.Height)
		st.Severed += c.ApplyPointer(id, f.Input)
		if p := &c.particles[i]; !p.Pinned {
			p.Integrate(f.DT, accel, c.cfg.VelocityDamping)
		}
	}

	c.frame++
	st.Frame = c.frame
	st.Live = c.live
	return st
}

// ResolveConstraints runs one relaxation pass over the constraints the
// particle owns and clamps it into the viewport. It returns how many
// constraints tore.
//
// A pinned particle is moved back to its pin and takes no part in relaxation.
// A constraint with zero length is left uncorrected for the pass. A
// constraint longer than TearFactor times its rest length is torn and applies
// no correction. The owned list is compacted in place as it is walked, so
// every remaining handle is visited exactly once.
func (c *Cloth) ResolveConstraints(id ParticleID, width, height float64) int {
	p := &c.particles[id]
	if p.Pinned {
		p.Position = p.Pin
		return 0
	}

	torn := 0
	kept := p.links[:0]
	for _, cid := range p.links {
		con := &c.constraints[cid]
		if con.Torn() {
			continue
		}

		a, b := &c.particles[con.A], &c.particles[con.B]
		diff := a.Position.Sub(b.Position)
		dist := diff.Len()
		if dist == 0 {
			kept = append(kept, cid)
			continue
		}
		if dist > con.RestLength*c.cfg.TearFactor {
			c.tear(cid, Overstretched)
			torn++
			continue
		}

		d := (con.RestLength - dist) / dist
		corr := diff.Scale(0.5 * d)
		a.Position = a.Position.Add(corr)
		b.Position = b.Position.Sub(corr)
		kept = append(kept, cid)
	}
	p.links = kept

	p.clamp(width, height)
	return torn
}

// ApplyPointer applies the frame's pointer state to one particle and returns
// how many constraints were severed.
//
// Dragging within DragRadius rewrites Previous so the implied velocity follows
// the pointer's motion, amplified by DragAmplification. Cutting within
// CutRadius severs every constraint touching the particle.
func (c *Cloth) ApplyPointer(id ParticleID, in Input) int {
	p := &c.particles[id]
	dist := p.Position.Dist(in.Pointer)

	if in.Drag && dist < c.cfg.DragRadius {
		p.Previous = p.Position.Sub(in.Motion().Scale(c.cfg.DragAmplification))
	}
	if in.Cut && dist < c.cfg.CutRadius {
		return c.Sever(id)
	}
	return 0
}
