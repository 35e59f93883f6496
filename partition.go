package gastank

import (
	"fmt"
)

// A Partition is one side of the tank.
//
// The order of Molecules is stable: hosts use the index to color them.
// A cooldown counter is kept for every unordered pair of molecules
// in a flat upper-triangular table.
type Partition struct {
	Molecules []Molecule

	cooldown []uint8
}

// NewPartition returns a partition holding ms, with no pending cooldown.
func NewPartition(ms []Molecule) *Partition {
	return &Partition{
		Molecules: ms,
		cooldown:  make([]uint8, pairs(len(ms))),
	}
}

// Len returns the number of molecules in p.
func (p *Partition) Len() int {
	return len(p.Molecules)
}

// pairs returns the number of unordered pairs among n molecules.
func pairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// PairIndex returns the offset of pair (i, j), i < j, among n molecules
// in the order of the loops for i in [0, n), for j in (i, n).
func PairIndex(n, i, j int) int {
	return i*(2*n-i-1)/2 + j - i - 1
}

// Cooldown returns the cooldown counter of pair (i, j), i != j.
func (p *Partition) Cooldown(i, j int) uint8 {
	if i > j {
		i, j = j, i
	}
	return p.cooldown[PairIndex(len(p.Molecules), i, j)]
}

// Reflect bounces all molecules off the edges of the band [xmin, xmax] x [0, height].
func (p *Partition) Reflect(xmin, xmax, height float64) {
	for i := range p.Molecules {
		p.Molecules[i].Reflect(xmin, xmax, height)
	}
}

// Move advances all molecules by one step.
func (p *Partition) Move() {
	for i := range p.Molecules {
		p.Molecules[i].Move()
	}
}

// Collide detects contacts between all pairs of molecules and adjusts the
// velocities of pairs that are not cooling down.
//
// A pair in contact with no pending cooldown is adjusted and its counter
// set to par.Cooldown. A pair out of contact sees its counter decrease
// by one. A pair still in contact keeps its counter.
// Pairs are visited in the order of PairIndex.
func (p *Partition) Collide(par Params) {
	n := len(p.Molecules)
	k := 0
	for i := 0; i < n-1; i++ {
		a := &p.Molecules[i]
		for j := i + 1; j < n; j++ {
			b := &p.Molecules[j]
			contact := a.Touching(b, par.Slack)
			switch c := p.cooldown[k]; {
			case contact && c == 0:
				Adjust(a, b)
				p.cooldown[k] = par.Cooldown
			case !contact && c > 0:
				p.cooldown[k]--
			}
			k++
		}
	}
}

// Resize grows or shrinks p to n molecules.
//
// Growing appends molecules drawn by g from d inside the band
// [xmin, xmax] x [0, height]. Shrinking drops molecules from the end.
// Whenever the count changes, all cooldown counters are reset.
func (p *Partition) Resize(n int, g *Generator, height, xmin, xmax float64, d Distribution) error {
	switch m := len(p.Molecules); {
	case n < 0:
		return fmt.Errorf("gastank: resize to %d molecules: %w", n, ErrInvalidCount)
	case n == m:
		return nil
	case n > m:
		ms, err := g.Generate(height, xmin, xmax, n-m, d)
		if err != nil {
			return err
		}
		p.Molecules = append(p.Molecules, ms...)
	default:
		p.Molecules = p.Molecules[:n:n]
	}
	p.cooldown = make([]uint8, pairs(n))
	return nil
}
