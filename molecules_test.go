package gastank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTouching(t *testing.T) {
	a := Molecule{Pos: r2.Vec{X: 100, Y: 200}, Radius: 8}
	tests := []struct {
		name string
		pos  r2.Vec
		want bool
	}{
		{"overlap", r2.Vec{X: 110, Y: 200}, true},
		{"tangent", r2.Vec{X: 116, Y: 200}, true},
		{"within slack", r2.Vec{X: 116.1, Y: 200}, true},
		{"beyond slack", r2.Vec{X: 116.2, Y: 200}, false},
		{"far", r2.Vec{X: 300, Y: 300}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Molecule{Pos: tt.pos, Radius: 8}
			assert.Equal(t, tt.want, a.Touching(&b, 5))
			assert.Equal(t, tt.want, b.Touching(&a, 5))
		})
	}
}

func TestMove(t *testing.T) {
	m := Molecule{Pos: r2.Vec{X: 1, Y: 2}, Vel: r2.Vec{X: 3, Y: -4}, Radius: 1}
	m.Move()
	assert.Equal(t, r2.Vec{X: 4, Y: -2}, m.Pos)
	assert.Equal(t, r2.Vec{X: 3, Y: -4}, m.Vel)
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name    string
		in      Molecule
		wantPos r2.Vec
		wantVel r2.Vec
	}{
		{
			name:    "inside",
			in:      Molecule{Pos: r2.Vec{X: 50, Y: 50}, Vel: r2.Vec{X: 1, Y: 1}, Radius: 5},
			wantPos: r2.Vec{X: 50, Y: 50},
			wantVel: r2.Vec{X: 1, Y: 1},
		},
		{
			name:    "left edge",
			in:      Molecule{Pos: r2.Vec{X: 12, Y: 50}, Vel: r2.Vec{X: -2, Y: 1}, Radius: 5},
			wantPos: r2.Vec{X: 15, Y: 50},
			wantVel: r2.Vec{X: 2, Y: 1},
		},
		{
			name:    "right edge",
			in:      Molecule{Pos: r2.Vec{X: 108, Y: 50}, Vel: r2.Vec{X: 2, Y: 1}, Radius: 5},
			wantPos: r2.Vec{X: 105, Y: 50},
			wantVel: r2.Vec{X: -2, Y: 1},
		},
		{
			name:    "bottom edge",
			in:      Molecule{Pos: r2.Vec{X: 50, Y: 198}, Vel: r2.Vec{X: 1, Y: 3}, Radius: 5},
			wantPos: r2.Vec{X: 50, Y: 195},
			wantVel: r2.Vec{X: 1, Y: -3},
		},
		{
			name:    "top edge",
			in:      Molecule{Pos: r2.Vec{X: 50, Y: -1}, Vel: r2.Vec{X: 1, Y: -3}, Radius: 5},
			wantPos: r2.Vec{X: 50, Y: 5},
			wantVel: r2.Vec{X: 1, Y: 3},
		},
		{
			name:    "corner",
			in:      Molecule{Pos: r2.Vec{X: 109, Y: 199}, Vel: r2.Vec{X: 4, Y: 4}, Radius: 5},
			wantPos: r2.Vec{X: 105, Y: 195},
			wantVel: r2.Vec{X: -4, Y: -4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.in
			m.Reflect(10, 110, 200)
			assert.Equal(t, tt.wantPos, m.Pos)
			assert.Equal(t, tt.wantVel, m.Vel)
			assert.Equal(t, tt.in.Radius, m.Radius)
		})
	}
}

func TestAdjust(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		a := Molecule{Pos: r2.Vec{X: 0, Y: 0}, Vel: r2.Vec{X: 1, Y: 0}, Radius: 1}
		b := Molecule{Pos: r2.Vec{X: 2, Y: 0}, Vel: r2.Vec{X: -1, Y: 0}, Radius: 1}
		Adjust(&a, &b)
		assert.Equal(t, r2.Vec{X: -1, Y: 0}, a.Vel)
		assert.Equal(t, r2.Vec{X: 1, Y: 0}, b.Vel)
	})

	t.Run("diagonal", func(t *testing.T) {
		// r = 1, δvx = ((0-2) + (0-0)*1) / 2 = -1, δvy = -1
		a := Molecule{Pos: r2.Vec{X: 0, Y: 0}, Vel: r2.Vec{X: 2, Y: 0}, Radius: 1}
		b := Molecule{Pos: r2.Vec{X: 1, Y: 1}, Vel: r2.Vec{X: 0, Y: 0}, Radius: 1}
		Adjust(&a, &b)
		assert.Equal(t, r2.Vec{X: 1, Y: -1}, a.Vel)
		assert.Equal(t, r2.Vec{X: 1, Y: 1}, b.Vel)
	})

	t.Run("vertical", func(t *testing.T) {
		// δx = 0 exchanges the difference in height on the y axis
		a := Molecule{Pos: r2.Vec{X: 5, Y: 10}, Vel: r2.Vec{X: 1, Y: 2}, Radius: 1}
		b := Molecule{Pos: r2.Vec{X: 5, Y: 13}, Vel: r2.Vec{X: -1, Y: 0}, Radius: 1}
		Adjust(&a, &b)
		assert.Equal(t, r2.Vec{X: 1, Y: 5}, a.Vel)
		assert.Equal(t, r2.Vec{X: -1, Y: -3}, b.Vel)
	})
}

func TestAdjustSymmetry(t *testing.T) {
	cases := map[string][2]Molecule{
		"slanted": {
			{Pos: r2.Vec{X: 10, Y: 20}, Vel: r2.Vec{X: 1.5, Y: -0.5}, Radius: 6},
			{Pos: r2.Vec{X: 18, Y: 26}, Vel: r2.Vec{X: -2, Y: 0.25}, Radius: 4},
		},
		"vertical": {
			{Pos: r2.Vec{X: 10, Y: 20}, Vel: r2.Vec{X: 1.5, Y: -0.5}, Radius: 6},
			{Pos: r2.Vec{X: 10, Y: 29}, Vel: r2.Vec{X: -2, Y: 0.25}, Radius: 4},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			// argument order does not matter
			a1, b1 := c[0], c[1]
			Adjust(&a1, &b1)
			a2, b2 := c[0], c[1]
			Adjust(&b2, &a2)
			assert.InDelta(t, a1.Vel.X, a2.Vel.X, 1e-12)
			assert.InDelta(t, a1.Vel.Y, a2.Vel.Y, 1e-12)
			assert.InDelta(t, b1.Vel.X, b2.Vel.X, 1e-12)
			assert.InDelta(t, b1.Vel.Y, b2.Vel.Y, 1e-12)

			// total velocity is conserved
			sum := r2.Add(c[0].Vel, c[1].Vel)
			got := r2.Add(a1.Vel, b1.Vel)
			assert.InDelta(t, sum.X, got.X, 1e-12)
			assert.InDelta(t, sum.Y, got.Y, 1e-12)
		})
	}
}

func TestAdjustReverse(t *testing.T) {
	a := Molecule{Pos: r2.Vec{X: 10, Y: 20}, Vel: r2.Vec{X: 1.5, Y: -0.5}, Radius: 6}
	b := Molecule{Pos: r2.Vec{X: 18, Y: 26}, Vel: r2.Vec{X: -2, Y: 0.25}, Radius: 4}
	oa, ob := a.Vel, b.Vel
	Adjust(&a, &b)
	assert.NotEqual(t, oa, a.Vel)
	Adjust(&b, &a)
	assert.InDelta(t, oa.X, a.Vel.X, 1e-12)
	assert.InDelta(t, oa.Y, a.Vel.Y, 1e-12)
	assert.InDelta(t, ob.X, b.Vel.X, 1e-12)
	assert.InDelta(t, ob.Y, b.Vel.Y, 1e-12)
}

func TestAdjustReverseVertical(t *testing.T) {
	// with no horizontal offset the impulse is the vertical offset,
	// so reversing the arguments pushes the pair a second time
	a := Molecule{Pos: r2.Vec{X: 10, Y: 20}, Vel: r2.Vec{X: 1.5, Y: -0.5}, Radius: 6}
	b := Molecule{Pos: r2.Vec{X: 10, Y: 29}, Vel: r2.Vec{X: -2, Y: 0.25}, Radius: 4}
	Adjust(&a, &b)
	Adjust(&b, &a)
	assert.Equal(t, r2.Vec{X: 1.5, Y: -0.5 + 2*9}, a.Vel)
	assert.Equal(t, r2.Vec{X: -2, Y: 0.25 - 2*9}, b.Vel)
}
