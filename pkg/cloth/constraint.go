package cloth

import "github.com/matzehuels/clothsim/pkg/vec"

// ConstraintID is a stable handle into a cloth's constraint arena.
type ConstraintID int

// TearReason records why a constraint was removed.
type TearReason uint8

const (
	// Intact marks a live constraint.
	Intact TearReason = iota
	// Overstretched constraints exceeded TearFactor times their rest length.
	Overstretched
	// Severed constraints were cut by the pointer or by [Cloth.Tear].
	Severed
)

// String returns the reason name.
func (r TearReason) String() string {
	switch r {
	case Intact:
		return "intact"
	case Overstretched:
		return "overstretched"
	case Severed:
		return "severed"
	default:
		return "unknown"
	}
}

// Constraint keeps two particles at RestLength apart. Endpoints are
// non-owning handles into the same cloth.
type Constraint struct {
	A, B       ParticleID
	RestLength float64

	reason TearReason
}

// Torn reports whether the constraint has been removed.
func (c Constraint) Torn() bool { return c.reason != Intact }

// Reason returns why the constraint was removed, or [Intact].
func (c Constraint) Reason() TearReason { return c.reason }

// Segment is a live constraint resolved to its endpoint positions.
type Segment struct {
	ID       ConstraintID
	From, To ParticleID
	A, B     vec.Vec2
}
