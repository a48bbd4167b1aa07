package cloth

import (
	"math"
	"testing"

	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/vec"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 200
	cfg.Spacing = 10
	cfg.Cols = 4
	cfg.Rows = 3
	cfg.TopOffset = 10
	return cfg
}

// pair builds two free particles rest apart along X.
func pair(t *testing.T, rest float64) (*Cloth, ParticleID, ParticleID, ConstraintID) {
	t.Helper()
	cfg := smallConfig()
	cfg.Width, cfg.Height = 1000, 1000
	c, err := NewEmpty(cfg)
	if err != nil {
		t.Fatalf("NewEmpty() error: %v", err)
	}
	a := c.AddParticle(vec.New(100, 100))
	b := c.AddParticle(vec.New(100+rest, 100))
	id, err := c.Attach(a, b)
	if err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	return c, a, b, id
}

func moveTo(p *Particle, pos vec.Vec2) {
	p.Position = pos
	p.Previous = pos
}

func TestNewBuildsLattice(t *testing.T) {
	cfg := smallConfig()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	cols, rows := cfg.Cols+1, cfg.Rows+1
	if got := c.NumParticles(); got != cols*rows {
		t.Errorf("NumParticles() = %d, want %d", got, cols*rows)
	}
	wantLinks := rows*(cols-1) + cols*(rows-1)
	if got := c.NumConstraints(); got != wantLinks {
		t.Errorf("NumConstraints() = %d, want %d", got, wantLinks)
	}

	origin := c.Particle(0).Position
	if want := vec.New(100-20, 10); origin != want {
		t.Errorf("origin = %v, want %v", origin, want)
	}

	for id, p := range c.Particles() {
		row := int(id) / cols
		if p.Pinned != (row == 0) {
			t.Errorf("particle %d pinned = %v, want %v", id, p.Pinned, row == 0)
		}
	}

	// Interior particles attach left first, then up.
	id := cfg.Index(2, 1)
	links := c.Particle(id).Links()
	if len(links) != 2 {
		t.Fatalf("links = %v, want 2 entries", links)
	}
	if got := c.Constraint(links[0]).B; got != cfg.Index(1, 1) {
		t.Errorf("first link ends at %d, want left neighbour %d", got, cfg.Index(1, 1))
	}
	if got := c.Constraint(links[1]).B; got != cfg.Index(2, 0) {
		t.Errorf("second link ends at %d, want upper neighbour %d", got, cfg.Index(2, 0))
	}
	if got := c.Constraint(links[0]).RestLength; got != cfg.Spacing {
		t.Errorf("RestLength = %v, want %v", got, cfg.Spacing)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Spacing = 0
	if _, err := New(cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestAttachErrors(t *testing.T) {
	c, err := NewEmpty(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	a := c.AddParticle(vec.New(5, 5))
	b := c.AddParticle(vec.New(5, 5))

	tests := []struct {
		name     string
		from, to ParticleID
	}{
		{"self", a, a},
		{"coincident", a, b},
		{"out of range", a, 7},
		{"negative", -1, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Attach(tt.from, tt.to); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Attach(%d, %d) error = %v, want %s", tt.from, tt.to, err, errors.ErrCodeInvalidInput)
			}
		})
	}
	if c.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0", c.NumConstraints())
	}
}

func TestResolveSymmetricCorrection(t *testing.T) {
	c, a, b, _ := pair(t, 10)
	moveTo(c.Particle(b), vec.New(120, 100)) // separation 20, rest 10

	c.ResolveConstraints(a, 1000, 1000)

	da := c.Particle(a).Position.Sub(vec.New(100, 100))
	db := c.Particle(b).Position.Sub(vec.New(120, 100))
	if da != vec.New(5, 0) {
		t.Errorf("A moved by %v, want {5 0}", da)
	}
	if db != da.Scale(-1) {
		t.Errorf("B moved by %v, want %v", db, da.Scale(-1))
	}
	if got := c.Particle(a).Position.Dist(c.Particle(b).Position); got != 10 {
		t.Errorf("separation = %v, want 10", got)
	}
}

func TestResolveReducesViolation(t *testing.T) {
	tests := []struct {
		name string
		sep  float64
	}{
		{"stretched", 17},
		{"compressed", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, a, b, _ := pair(t, 10)
			moveTo(c.Particle(b), vec.New(100+tt.sep, 100))
			before := math.Abs(tt.sep - 10)

			c.ResolveConstraints(a, 1000, 1000)

			after := math.Abs(c.Particle(a).Position.Dist(c.Particle(b).Position) - 10)
			if after >= before {
				t.Errorf("violation %v -> %v, want a reduction", before, after)
			}
			if c.Particle(a).Position.Y != 100 || c.Particle(b).Position.Y != 100 {
				t.Error("correction left the connecting axis")
			}
		})
	}
}

func TestResolveZeroDistanceSkipped(t *testing.T) {
	c, a, b, id := pair(t, 10)
	moveTo(c.Particle(b), vec.New(100, 100))

	if torn := c.ResolveConstraints(a, 1000, 1000); torn != 0 {
		t.Errorf("torn = %d, want 0", torn)
	}
	for _, p := range []*Particle{c.Particle(a), c.Particle(b)} {
		if !p.Position.IsFinite() {
			t.Fatalf("position became %v", p.Position)
		}
	}
	if c.Constraint(id).Torn() {
		t.Error("zero-length constraint should stay live")
	}
	if got := len(c.Particle(a).Links()); got != 1 {
		t.Errorf("links = %d, want 1", got)
	}
}

func TestResolveTearsOverstretched(t *testing.T) {
	c, a, b, id := pair(t, 10)
	far := vec.New(100+10*DefaultTearFactor+1, 100)
	moveTo(c.Particle(b), far)

	if torn := c.ResolveConstraints(a, 1000, 1000); torn != 1 {
		t.Fatalf("torn = %d, want 1", torn)
	}
	if got := c.Constraint(id).Reason(); got != Overstretched {
		t.Errorf("Reason() = %v, want %v", got, Overstretched)
	}
	if c.Particle(a).Position != vec.New(100, 100) || c.Particle(b).Position != far {
		t.Error("a torn constraint must not apply a correction")
	}
	if len(c.Particle(a).Links()) != 0 {
		t.Error("torn constraint should be dropped from the owning list")
	}
	if c.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0", c.NumConstraints())
	}
}

func TestResolveClampsBelowViewport(t *testing.T) {
	c, err := NewEmpty(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	id := c.AddParticle(vec.New(50, 200+200))

	c.ResolveConstraints(id, 200, 200)

	p := c.Particle(id)
	if p.Position.Y != 200 {
		t.Errorf("Position.Y = %v, want 200", p.Position.Y)
	}
	if p.Previous.Y != 200 {
		t.Errorf("Previous.Y = %v, want 200", p.Previous.Y)
	}
	if p.Position.X != 50 {
		t.Errorf("Position.X = %v, want 50 (unclamped axis untouched)", p.Position.X)
	}
}

func TestResolveClampsEveryEdge(t *testing.T) {
	tests := []struct {
		name string
		pos  vec.Vec2
		want vec.Vec2
	}{
		{"left", vec.New(-3, 20), vec.New(0, 20)},
		{"right", vec.New(250, 20), vec.New(200, 20)},
		{"top", vec.New(20, -1), vec.New(20, 0)},
		{"corner", vec.New(-5, 300), vec.New(0, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewEmpty(smallConfig())
			id := c.AddParticle(tt.pos)
			c.Particle(id).Previous = vec.New(10, 10)

			c.ResolveConstraints(id, 200, 200)

			p := c.Particle(id)
			if p.Position != tt.want {
				t.Errorf("Position = %v, want %v", p.Position, tt.want)
			}
			if tt.pos.X != tt.want.X && p.Previous.X != tt.want.X {
				t.Errorf("Previous.X = %v, want %v", p.Previous.X, tt.want.X)
			}
			if tt.pos.Y != tt.want.Y && p.Previous.Y != tt.want.Y {
				t.Errorf("Previous.Y = %v, want %v", p.Previous.Y, tt.want.Y)
			}
		})
	}
}

func TestResolvePinnedParticle(t *testing.T) {
	c, a, b, _ := pair(t, 10)
	c.Particle(a).PinTo(vec.New(100, 100))
	moveTo(c.Particle(a), vec.New(140, 160))
	moveTo(c.Particle(b), vec.New(125, 100))

	c.ResolveConstraints(a, 1000, 1000)

	if got := c.Particle(a).Position; got != vec.New(100, 100) {
		t.Errorf("pinned Position = %v, want pin", got)
	}
	if got := c.Particle(b).Position; got != vec.New(125, 100) {
		t.Errorf("pinned particle must not relax its links, B = %v", got)
	}
}

func TestTearIsIdempotent(t *testing.T) {
	c, _, _, id := pair(t, 10)

	if !c.Tear(id) {
		t.Fatal("first Tear() = false, want true")
	}
	if c.Tear(id) {
		t.Error("second Tear() = true, want false")
	}
	if c.Tear(ConstraintID(99)) {
		t.Error("Tear() of unknown id = true, want false")
	}
	if c.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0", c.NumConstraints())
	}
}

func TestSeverIsIdempotent(t *testing.T) {
	c, a, _, _ := pair(t, 10)
	if n := c.Sever(a); n != 1 {
		t.Errorf("Sever() = %d, want 1", n)
	}
	if n := c.Sever(a); n != 0 {
		t.Errorf("second Sever() = %d, want 0", n)
	}
	if got := len(c.Particle(a).Links()); got != 0 {
		t.Errorf("links = %d, want 0", got)
	}
}

func TestCutSeversEveryIncidentConstraint(t *testing.T) {
	cfg := smallConfig()
	cfg.Cols, cfg.Rows = 2, 2
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	center := cfg.Index(1, 1)
	right := cfg.Index(2, 1)
	if got := c.Degree(center); got != 4 {
		t.Fatalf("Degree(center) = %d, want 4", got)
	}
	before := c.NumConstraints()

	pos := c.Particle(center).Position
	severed := c.ApplyPointer(center, Input{Pointer: pos, Previous: pos, Cut: true})

	if severed != 4 {
		t.Errorf("severed = %d, want 4", severed)
	}
	if got := len(c.Particle(center).Links()); got != 0 {
		t.Errorf("cut particle links = %d, want 0", got)
	}
	if got := c.Degree(center); got != 0 {
		t.Errorf("Degree(center) = %d, want 0", got)
	}
	if got := c.NumConstraints(); got != before-4 {
		t.Errorf("NumConstraints() = %d, want %d", got, before-4)
	}

	// The right neighbour still lists its stale handle until it resolves.
	if got := len(c.Particle(right).Links()); got != 2 {
		t.Errorf("neighbour links before resolve = %d, want 2", got)
	}
	c.ResolveConstraints(right, cfg.Width, cfg.Height)
	if got := len(c.Particle(right).Links()); got != 1 {
		t.Errorf("neighbour links after resolve = %d, want 1", got)
	}

	// Cutting an already isolated particle is a no-op.
	if n := c.ApplyPointer(center, Input{Pointer: pos, Cut: true}); n != 0 {
		t.Errorf("second cut severed %d, want 0", n)
	}
}

func TestCutOutsideRadius(t *testing.T) {
	c, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	id := ParticleID(7)
	far := c.Particle(id).Position.Add(vec.New(DefaultCutRadius, 0))

	if n := c.ApplyPointer(id, Input{Pointer: far, Cut: true}); n != 0 {
		t.Errorf("severed = %d, want 0 at exactly the cut radius", n)
	}
}

func TestDragRewritesPrevious(t *testing.T) {
	c, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	id := ParticleID(7)
	pos := c.Particle(id).Position
	in := Input{Previous: pos, Pointer: pos.Add(vec.New(4, -2)), Drag: true}

	c.ApplyPointer(id, in)

	want := pos.Sub(vec.New(4, -2).Scale(DefaultDragAmplification))
	if got := c.Particle(id).Previous; got != want {
		t.Errorf("Previous = %v, want %v", got, want)
	}
	if got := c.Particle(id).Velocity(); got.Dist(vec.New(4, -2).Scale(DefaultDragAmplification)) > 1e-9 {
		t.Errorf("Velocity() = %v", got)
	}
}

func TestDragIgnoredWhenReleased(t *testing.T) {
	c, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	id := ParticleID(7)
	pos := c.Particle(id).Position

	c.ApplyPointer(id, Input{Previous: pos, Pointer: pos.Add(vec.New(4, 0))})

	if got := c.Particle(id).Previous; got != pos {
		t.Errorf("Previous = %v, want unchanged %v", got, pos)
	}
}

func TestIntegrateDeterministic(t *testing.T) {
	start := Particle{
		Position:     vec.New(1, 2),
		Previous:     vec.New(0, 1),
		Acceleration: vec.New(0.5, 0),
	}
	accel := vec.New(0, DefaultGravity)

	p1, p2 := start, start
	p1.Integrate(DefaultTimeStep, accel, DefaultVelocityDamping)
	p2.Integrate(DefaultTimeStep, accel, DefaultVelocityDamping)

	if p1.Position != p2.Position || p1.Previous != p2.Previous {
		t.Errorf("runs differ: %v/%v vs %v/%v", p1.Position, p1.Previous, p2.Position, p2.Previous)
	}
	if p1.Previous != start.Position {
		t.Errorf("Previous = %v, want pre-step position %v", p1.Previous, start.Position)
	}
	if p1.Acceleration != vec.Zero {
		t.Errorf("Acceleration = %v, want zero after the step", p1.Acceleration)
	}

	dt := DefaultTimeStep
	a := vec.New(0.5, DefaultGravity*dt)
	want := vec.New(1, 2).Add(vec.New(1, 1).Scale(DefaultVelocityDamping)).Add(a.Scale(0.5 * dt * dt))
	if p1.Position.Dist(want) > 1e-12 {
		t.Errorf("Position = %v, want %v", p1.Position, want)
	}
}

func TestStepPinInvariant(t *testing.T) {
	c, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg := c.Config()
	pinned := cfg.Index(2, 0)
	pin := c.Particle(pinned).Pin
	moveTo(c.Particle(pinned), pin.Add(vec.New(30, 40)))

	in := Input{Pointer: pin, Previous: pin.Add(vec.New(-5, -5)), Drag: true}
	for i := 0; i < 20; i++ {
		c.Step(cfg.Frame(in))
		// Neighbours relaxing after a pinned particle may nudge it; its own
		// resolution pass always restores the pin.
		for id, p := range c.Particles() {
			if !p.Pinned {
				continue
			}
			c.ResolveConstraints(id, cfg.Width, cfg.Height)
			if p.Position != p.Pin {
				t.Fatalf("frame %d: pinned particle %d at %v, want %v", i, id, p.Position, p.Pin)
			}
		}
	}
}

func TestBoundaryInvariant(t *testing.T) {
	cfg := smallConfig()
	cfg.Gravity = 2000
	cfg.WindX = 500
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for id, p := range c.Particles() {
		if p.Pinned && id%2 == 0 {
			p.Unpin()
		}
	}

	for frame := 0; frame < 60; frame++ {
		for id, p := range c.Particles() {
			c.ResolveConstraints(id, cfg.Width, cfg.Height)
			if p.Position.X < 0 || p.Position.X > cfg.Width || p.Position.Y < 0 || p.Position.Y > cfg.Height {
				t.Fatalf("frame %d: particle %d at %v escaped the viewport", frame, id, p.Position)
			}
		}
		c.Step(cfg.Frame(Input{}))
	}
}

func TestTearMonotonicity(t *testing.T) {
	cfg := smallConfig()
	cfg.Cols, cfg.Rows = 10, 8
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	in := Input{}
	last := c.NumConstraints()
	for frame := 0; frame < 120; frame++ {
		// Sweep a cutting, dragging pointer back and forth across the cloth.
		x := math.Mod(float64(frame)*7, cfg.Width)
		in = in.Advance(vec.New(x, 40+float64(frame%30)*3))
		in.Drag = frame%3 == 0
		in.Cut = frame%5 == 0

		st := c.Step(cfg.Frame(in))
		if st.Live > last {
			t.Fatalf("frame %d: live constraints grew %d -> %d", frame, last, st.Live)
		}
		if last-st.Live != st.Torn+st.Severed {
			t.Errorf("frame %d: dropped %d but reported %d torn + %d severed", frame, last-st.Live, st.Torn, st.Severed)
		}
		last = st.Live
	}

	n := 0
	for range c.Segments() {
		n++
	}
	if n != c.NumConstraints() {
		t.Errorf("Segments() yielded %d, NumConstraints() = %d", n, c.NumConstraints())
	}
	if last == 0 {
		t.Log("cloth fully shredded")
	}
}

func TestStepIsolatedParticleFalls(t *testing.T) {
	c, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	id := c.Config().Index(2, 3)
	c.Sever(id)
	y0 := c.Particle(id).Position.Y

	for i := 0; i < 5; i++ {
		c.Step(c.Config().Frame(Input{}))
	}
	if got := c.Particle(id).Position.Y; got <= y0 {
		t.Errorf("isolated particle Y = %v, want below start %v", got, y0)
	}
	if c.FrameCount() != 5 {
		t.Errorf("FrameCount() = %d, want 5", c.FrameCount())
	}
}

func TestInputAdvance(t *testing.T) {
	in := Input{Pointer: vec.New(1, 1), Drag: true}
	next := in.Advance(vec.New(4, 5))

	if next.Previous != vec.New(1, 1) || next.Pointer != vec.New(4, 5) {
		t.Errorf("Advance() = %+v", next)
	}
	if !next.Drag {
		t.Error("Advance() should keep button state")
	}
	if next.Motion() != vec.New(3, 4) {
		t.Errorf("Motion() = %v, want {3 4}", next.Motion())
	}
	if in.Pointer != vec.New(1, 1) {
		t.Error("Advance() must not mutate the receiver")
	}
}

func TestTearReasonString(t *testing.T) {
	for r, want := range map[TearReason]string{Intact: "intact", Overstretched: "overstretched", Severed: "severed", 9: "unknown"} {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", r, got, want)
		}
	}
}
