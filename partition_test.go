package gastank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPairIndex(t *testing.T) {
	for n := 0; n < 12; n++ {
		k := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.Equal(t, k, PairIndex(n, i, j), "n=%d i=%d j=%d", n, i, j)
				k++
			}
		}
		assert.Equal(t, k, pairs(n), "n=%d", n)
		assert.Len(t, NewPartition(make([]Molecule, n)).cooldown, k, "n=%d", n)
	}
}

// crowd returns a partition of n molecules packed in the band [0, 100] x [0, 100].
func crowd(t *testing.T, n int) *Partition {
	t.Helper()
	ms, err := NewGenerator(rand.NewSource(3)).Generate(100, 0, 100, n, DefaultDistribution())
	require.NoError(t, err)
	return NewPartition(ms)
}

func TestCollideCooldownBounds(t *testing.T) {
	p := crowd(t, 60)
	par := DefaultParams()
	triggered := false
	for step := 0; step < 200; step++ {
		p.Reflect(0, 100, 100)
		p.Collide(par)
		p.Move()
		for k, c := range p.cooldown {
			require.LessOrEqual(t, c, par.Cooldown, "step %d pair %d", step, k)
			if c > 0 {
				triggered = true
			}
		}
	}
	assert.True(t, triggered)
}

func TestCollideDecay(t *testing.T) {
	par := DefaultParams()
	p := NewPartition([]Molecule{
		{Pos: r2.Vec{X: 50, Y: 50}, Vel: r2.Vec{X: -1}, Radius: 5},
		{Pos: r2.Vec{X: 60, Y: 50}, Vel: r2.Vec{X: 1}, Radius: 5},
	})

	p.Collide(par)
	assert.Equal(t, par.Cooldown, p.Cooldown(0, 1))
	assert.Equal(t, par.Cooldown, p.Cooldown(1, 0))

	// far apart: the counter decays by one per step down to zero
	p.Molecules[1].Pos.X = 90
	for want := int(par.Cooldown) - 1; want >= 0; want-- {
		p.Collide(par)
		assert.Equal(t, uint8(want), p.Cooldown(0, 1))
	}
	p.Collide(par)
	assert.Equal(t, uint8(0), p.Cooldown(0, 1))
}

func TestCollideOrder(t *testing.T) {
	// molecule 1 touches both 0 and 2: pair (0, 1) must be handled first
	ms := []Molecule{
		{Pos: r2.Vec{X: 40, Y: 50}, Vel: r2.Vec{X: 1}, Radius: 5},
		{Pos: r2.Vec{X: 50, Y: 50}, Vel: r2.Vec{X: 0}, Radius: 5},
		{Pos: r2.Vec{X: 60, Y: 50}, Vel: r2.Vec{X: -1}, Radius: 5},
	}
	p := NewPartition(append([]Molecule(nil), ms...))
	p.Collide(DefaultParams())

	want := append([]Molecule(nil), ms...)
	Adjust(&want[0], &want[1])
	Adjust(&want[1], &want[2])
	assert.Equal(t, want, p.Molecules)
	assert.Equal(t, uint8(0), p.Cooldown(0, 2))
}

func TestCollideSmall(t *testing.T) {
	for _, n := range []int{0, 1} {
		p := crowd(t, n)
		want := make([]Molecule, len(p.Molecules))
		copy(want, p.Molecules)
		assert.NotPanics(t, func() { p.Collide(DefaultParams()) })
		assert.Equal(t, want, p.Molecules)
	}
}

func TestResize(t *testing.T) {
	g := NewGenerator(rand.NewSource(5))
	d := DefaultDistribution()
	p := crowd(t, 10)
	orig := append([]Molecule(nil), p.Molecules...)

	require.NoError(t, p.Resize(25, g, 100, 0, 100, d))
	require.Len(t, p.Molecules, 25)
	assert.Equal(t, orig, p.Molecules[:10])
	assert.Len(t, p.cooldown, pairs(25))
	for _, m := range p.Molecules[10:] {
		assert.GreaterOrEqual(t, m.Pos.X, m.Radius)
		assert.LessOrEqual(t, m.Pos.X, 100-m.Radius)
	}

	require.NoError(t, p.Resize(10, g, 100, 0, 100, d))
	assert.Equal(t, orig, p.Molecules)
	assert.Len(t, p.cooldown, pairs(10))

	require.NoError(t, p.Resize(4, g, 100, 0, 100, d))
	assert.Equal(t, orig[:4], p.Molecules)
	assert.Len(t, p.cooldown, pairs(4))

	require.NoError(t, p.Resize(0, g, 100, 0, 100, d))
	assert.Empty(t, p.Molecules)
	assert.Empty(t, p.cooldown)

	require.NoError(t, p.Resize(1, g, 100, 0, 100, d))
	assert.Len(t, p.Molecules, 1)
	assert.Empty(t, p.cooldown)
}

func TestResizeShrinkDoesNotAlias(t *testing.T) {
	g := NewGenerator(rand.NewSource(5))
	p := crowd(t, 10)
	orig := append([]Molecule(nil), p.Molecules...)

	require.NoError(t, p.Resize(5, g, 100, 0, 100, DefaultDistribution()))
	require.NoError(t, p.Resize(10, g, 100, 0, 100, DefaultDistribution()))
	assert.Equal(t, orig[:5], p.Molecules[:5])
	assert.Len(t, p.Molecules, 10)
}

func TestResizeSameCount(t *testing.T) {
	p := crowd(t, 30)
	for i := 0; i < 20; i++ {
		p.Collide(DefaultParams())
		p.Move()
	}
	ms := append([]Molecule(nil), p.Molecules...)
	cd := append([]uint8(nil), p.cooldown...)

	// a distribution that cannot fit is never used
	bad := Distribution{Radius: Range{60, 70}}
	require.NoError(t, p.Resize(30, nil, 100, 0, 100, bad))
	assert.Equal(t, ms, p.Molecules)
	assert.Equal(t, cd, p.cooldown)
}

func TestResizeErrors(t *testing.T) {
	g := NewGenerator(rand.NewSource(5))
	p := crowd(t, 3)
	ms := append([]Molecule(nil), p.Molecules...)

	assert.ErrorIs(t, p.Resize(-1, g, 100, 0, 100, DefaultDistribution()), ErrInvalidCount)
	assert.ErrorIs(t, p.Resize(5, g, 100, 0, 15, DefaultDistribution()), ErrInvalidRegion)
	assert.ErrorIs(t, p.Resize(5, g, 100, 0, 100, Distribution{Radius: Range{3, 2}}), ErrInvalidConfig)
	assert.Equal(t, ms, p.Molecules)
	assert.Len(t, p.cooldown, pairs(3))
}

func TestStats(t *testing.T) {
	assert.Equal(t, Stats{}, NewPartition(nil).Stats())

	p := NewPartition([]Molecule{
		{Vel: r2.Vec{X: 3, Y: 4}, Radius: 1},
		{Vel: r2.Vec{X: 0, Y: 0}, Radius: 1},
	})
	s := p.Stats()
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 2.5, s.MeanSpeed, 1e-12)
	assert.InDelta(t, 6.25, s.MeanEnergy, 1e-12)
}
