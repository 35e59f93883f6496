package gastank

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// A Molecule is a circular body moving in a straight line between collisions.
type Molecule struct {
	Pos    r2.Vec  // position of the center
	Vel    r2.Vec  // displacement per step
	Radius float64 // fixed after creation
}

// Touching reports whether m and o are in contact.
// Contact starts when the squared distance between centers falls below
// the squared sum of radii plus slack.
func (m *Molecule) Touching(o *Molecule, slack float64) bool {
	d2 := r2.Norm2(r2.Sub(m.Pos, o.Pos))
	r := m.Radius + o.Radius
	return d2 <= r*r+slack
}

// Move advances m by one step.
func (m *Molecule) Move() {
	m.Pos = r2.Add(m.Pos, m.Vel)
}

// Reflect bounces m off the edges of the band [xmin, xmax] x [0, height].
// A molecule crossing an edge is put back against it and the
// corresponding velocity component flips sign. Both axes are checked.
func (m *Molecule) Reflect(xmin, xmax, height float64) {
	switch {
	case m.Pos.X <= xmin+m.Radius:
		m.Pos.X = xmin + m.Radius
		m.Vel.X = -m.Vel.X
	case m.Pos.X+m.Radius >= xmax:
		m.Pos.X = xmax - m.Radius
		m.Vel.X = -m.Vel.X
	}

	switch {
	case m.Pos.Y+m.Radius >= height:
		m.Pos.Y = height - m.Radius
		m.Vel.Y = -m.Vel.Y
	case m.Pos.Y <= m.Radius:
		m.Pos.Y = m.Radius
		m.Vel.Y = -m.Vel.Y
	}
}

// Adjust exchanges velocity between two molecules in contact.
//
// The impulse is the relative velocity projected on the slope
// r = Δy/Δx of the line joining the centers. Both molecules weigh the same.
// When the centers are vertically aligned, the difference in height
// is exchanged on the y axis instead.
func Adjust(a, b *Molecule) {
	var δvx, δvy float64
	if δx := b.Pos.X - a.Pos.X; δx == 0 {
		δvy = b.Pos.Y - a.Pos.Y
	} else {
		r := (b.Pos.Y - a.Pos.Y) / δx
		δvx = ((b.Vel.X - a.Vel.X) + (b.Vel.Y-a.Vel.Y)*r) / (1 + r*r)
		δvy = r * δvx
	}
	a.Vel.X += δvx
	a.Vel.Y += δvy
	b.Vel.X -= δvx
	b.Vel.Y -= δvy
}
