// Package gastank simulates gas diffusion between two sides of a tank.
//
// Two populations of circular molecules live on either side of a movable
// wall. Molecules bounce off the edges of their side and collide with
// molecules of the same side. They never interact across the wall.
//
// The package only contains the simulation engine. A host (see the opengl
// package and the tank command) calls Update once per frame and reads
// the molecules of each Partition to draw them.
package gastank

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned when a request would produce invalid molecules.
var (
	// ErrInvalidRegion means a band is too small for the radius range.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidConfig means a distribution range is inverted or non-positive.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidCount means a negative population was requested.
	ErrInvalidCount = errors.New("invalid count")
)

// Params contains the tunable constants of the engine.
type Params struct {
	// Cooldown is the number of non-contact steps a pair of molecules
	// must go through before it can collide again.
	Cooldown uint8

	// Slack is added to the squared contact distance so that contact
	// triggers slightly before tangency.
	Slack float64

	// Smoothing is the weight of the target in the wall update
	// wall = (1-Smoothing)*wall + Smoothing*target.
	Smoothing float64
}

// DefaultParams returns the default engine constants.
func DefaultParams() Params {
	return Params{
		Cooldown:  5,
		Slack:     5.0,
		Smoothing: 0.1,
	}
}

// Setup contains everything needed to build a Tank from scratch.
type Setup struct {
	Height float64 // container height
	Width  float64 // container width
	Wall   float64 // x-coordinate of the wall

	LeftCount  int // initial number of molecules left of the wall
	RightCount int // initial number of molecules right of the wall

	Left  Distribution // distribution of new molecules on the left
	Right Distribution // distribution of new molecules on the right
}

// A Tank contains the whole state of a simulation.
type Tank struct {
	Height float64
	Width  float64
	Wall   float64

	Left  *Partition
	Right *Partition

	Params Params

	target float64
	gen    *Generator
}

// New builds a tank, filling each side with molecules drawn by g.
func New(s Setup, g *Generator) (*Tank, error) {
	if !(s.Height > 0) || !(s.Width > 0) || !(s.Wall >= 0 && s.Wall <= s.Width) {
		return nil, fmt.Errorf("gastank: %gx%g tank with wall at %g: %w", s.Width, s.Height, s.Wall, ErrInvalidRegion)
	}
	if s.LeftCount < 0 || s.RightCount < 0 {
		return nil, fmt.Errorf("gastank: %d left and %d right molecules: %w", s.LeftCount, s.RightCount, ErrInvalidCount)
	}
	left, err := g.Generate(s.Height, 0, s.Wall, s.LeftCount, s.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.Generate(s.Height, s.Wall, s.Width, s.RightCount, s.Right)
	if err != nil {
		return nil, err
	}
	return &Tank{
		Height: s.Height,
		Width:  s.Width,
		Wall:   s.Wall,
		Left:   NewPartition(left),
		Right:  NewPartition(right),
		Params: DefaultParams(),
		target: s.Wall,
		gen:    g,
	}, nil
}

// Reinitialize discards both partitions and rebuilds the tank from s.
// Params and the generator are kept. On error the tank is unchanged.
func (t *Tank) Reinitialize(s Setup) error {
	nt, err := New(s, t.gen)
	if err != nil {
		return err
	}
	nt.Params = t.Params
	*t = *nt
	return nil
}

// Update runs a single simulation step.
func (t *Tank) Update() {
	t.Left.Reflect(0, t.Wall, t.Height)
	t.Right.Reflect(t.Wall, t.Width, t.Height)
	t.Left.Collide(t.Params)
	t.Right.Collide(t.Params)
	t.Left.Move()
	t.Right.Move()
}

// Resize changes the population of both sides, keeping existing molecules.
// New molecules are drawn from lc and rc inside their own side.
// Nothing is changed if either request is invalid.
func (t *Tank) Resize(left, right int, lc, rc Distribution) error {
	if left < 0 || right < 0 {
		return fmt.Errorf("gastank: resize to %d left and %d right molecules: %w", left, right, ErrInvalidCount)
	}
	if left > t.Left.Len() {
		if err := check(t.Height, 0, t.Wall, lc); err != nil {
			return err
		}
	}
	if right > t.Right.Len() {
		if err := check(t.Height, t.Wall, t.Width, rc); err != nil {
			return err
		}
	}
	if err := t.Left.Resize(left, t.gen, t.Height, 0, t.Wall, lc); err != nil {
		return err
	}
	return t.Right.Resize(right, t.gen, t.Height, t.Wall, t.Width, rc)
}

// SetWallTarget sets the position the wall moves toward.
// The caller keeps x inside the container (see ClampWallTarget).
func (t *Tank) SetWallTarget(x float64) {
	t.target = x
}

// WallTarget returns the position the wall moves toward.
func (t *Tank) WallTarget() float64 {
	return t.target
}

// MoveWall moves the wall one frame toward its target.
// It is meant to be called once per frame, paused or not.
func (t *Tank) MoveWall() {
	α := t.Params.Smoothing
	t.Wall = (1-α)*t.Wall + α*t.target
}

// SetSize follows a resize of the host window.
// The wall and its target are kept within the new width.
// Non-positive sizes, as reported for minimized windows, are ignored.
func (t *Tank) SetSize(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	t.Width, t.Height = width, height
	t.Wall = math.Max(0, math.Min(t.Wall, width))
	t.target = math.Max(0, math.Min(t.target, width))
}

// Stats returns the statistics of both sides.
func (t *Tank) Stats() (left, right Stats) {
	return t.Left.Stats(), t.Right.Stats()
}

// ClampWallTarget keeps a wall target at least 100 units away from
// both edges of a container of the given width, on a 10 unit grid
// for the right margin. If the container is too narrow it returns
// the middle of the container.
func ClampWallTarget(target, width float64) float64 {
	lo, hi := 100.0, math.Floor(width/10)*10-100
	if hi < lo {
		return width / 2
	}
	return math.Max(lo, math.Min(target, hi))
}
