package gastank

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// A Range is a half-open interval [Min, Max).
type Range struct {
	Min float64
	Max float64
}

// valid reports whether r is a finite, non-inverted range.
func (r Range) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) &&
		!math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) &&
		r.Min <= r.Max
}

// A Distribution holds the ranges new molecules are drawn from.
// It is replaced as a whole when parameters change.
type Distribution struct {
	DX     Range // x velocity
	DY     Range // y velocity
	Radius Range // radius, strictly positive
}

// DefaultDistribution returns the distribution used when nothing is configured.
func DefaultDistribution() Distribution {
	return Distribution{
		DX:     Range{-3, 3},
		DY:     Range{-3, 3},
		Radius: Range{5, 10},
	}
}

// NewDistribution builds a distribution from host controls:
// a speed bound, an average radius and a radius variance in percent.
// The radius bounds are widened by a few units so that small or
// zero-variance settings still give usable ranges.
func NewDistribution(speed, radius, variance float64) Distribution {
	return Distribution{
		DX: Range{-speed, speed},
		DY: Range{-speed, speed},
		Radius: Range{
			Min: (1-variance/100)*radius + 4,
			Max: (1+variance/100)*radius + 5,
		},
	}
}

// Validate returns an error wrapping ErrInvalidConfig if a range is
// inverted or if the radius range is not strictly positive.
func (d Distribution) Validate() error {
	switch {
	case !d.DX.valid():
		return fmt.Errorf("gastank: x velocity range [%g, %g): %w", d.DX.Min, d.DX.Max, ErrInvalidConfig)
	case !d.DY.valid():
		return fmt.Errorf("gastank: y velocity range [%g, %g): %w", d.DY.Min, d.DY.Max, ErrInvalidConfig)
	case !d.Radius.valid() || !(d.Radius.Min > 0):
		return fmt.Errorf("gastank: radius range [%g, %g): %w", d.Radius.Min, d.Radius.Max, ErrInvalidConfig)
	}
	return nil
}

// A Generator draws new molecules from a random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// uniform returns a number drawn uniformly from [min, max).
func (g *Generator) uniform(min, max float64) float64 {
	return min + (max-min)*g.rng.Float64()
}

// check validates d and the band [xmin, xmax] x [0, height] it will fill.
func check(height, xmin, xmax float64, d Distribution) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return checkBand(height, xmin, xmax, d)
}

func checkBand(height, xmin, xmax float64, d Distribution) error {
	if xmax-xmin < 2*d.Radius.Max || height < 2*d.Radius.Max {
		return fmt.Errorf("gastank: band [%g, %g] x [0, %g] for radius up to %g: %w",
			xmin, xmax, height, d.Radius.Max, ErrInvalidRegion)
	}
	return nil
}

// Generate returns n molecules lying inside the band [xmin, xmax] x [0, height].
// For each molecule, the radius, position and velocity are drawn
// independently and uniformly, in that order.
// The band is only checked when n > 0.
func (g *Generator) Generate(height, xmin, xmax float64, n int, d Distribution) ([]Molecule, error) {
	if n < 0 {
		return nil, fmt.Errorf("gastank: generate %d molecules: %w", n, ErrInvalidCount)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return []Molecule{}, nil
	}
	if err := checkBand(height, xmin, xmax, d); err != nil {
		return nil, err
	}
	ms := make([]Molecule, n)
	for i := range ms {
		r := g.uniform(d.Radius.Min, d.Radius.Max)
		ms[i].Radius = r
		ms[i].Pos.X = g.uniform(xmin+r, xmax-r)
		ms[i].Pos.Y = g.uniform(r, height-r)
		ms[i].Vel.X = g.uniform(d.DX.Min, d.DX.Max)
		ms[i].Vel.Y = g.uniform(d.DY.Min, d.DY.Max)
	}
	return ms, nil
}
