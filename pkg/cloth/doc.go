// Package cloth implements a tearable cloth made of Verlet particles joined by
// distance constraints.
//
// # Model
//
// A [Cloth] owns two flat arenas: particles and constraints. Both are addressed
// by stable integer handles ([ParticleID], [ConstraintID]) that stay valid for
// the lifetime of the cloth. Each constraint is listed by exactly one particle
// (the one that attached it) but relaxation moves both endpoints. Removing a
// constraint only tombstones its arena slot, so a handle held elsewhere can
// never dangle; owning lists drop tombstoned handles on their next pass.
//
// # Frame
//
// [Cloth.Step] advances one frame. For every particle, in construction order,
// it resolves the particle's constraints (one relaxation pass, not an
// iterative solve), applies the pointer snapshot for the frame and integrates.
// Relaxation tears constraints stretched beyond [Config.TearFactor] times
// their rest length; a cut severs every constraint touching a particle.
//
//	c, err := cloth.New(cloth.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	in := cloth.Input{}
//	for {
//	    in = in.Advance(pointer())
//	    stats := c.Step(c.Config().Frame(in))
//	    for s := range c.Segments() {
//	        drawLine(s.A, s.B)
//	    }
//	}
//
// A Cloth is not safe for concurrent use.
package cloth
