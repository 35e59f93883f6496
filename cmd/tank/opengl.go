package main

import (
	"fmt"

	"github.com/PrincetonUniversity/gastank"
	"github.com/PrincetonUniversity/gastank/opengl"
)

// Bounds of the controls of the interactive window.
const (
	minCount = 1    // minimum number of molecules per side
	maxCount = 1000 // maximum number of molecules per side
	wallStep = 10   // unit: pixel, wall move per key press
)

// RunOpenGL runs an interactive simulation in an OpenGL window.
func RunOpenGL(conf *Config, t *gastank.Tank) error {
	h := newHost(conf, t)
	return opengl.Run(t, &opengl.Config{
		Step:  t.Update,
		Frame: h.frame,
		Act:   h.act,
		Title: h.title,
	})
}

// host holds the state of the controls of the interactive window.
type host struct {
	tank        *gastank.Tank
	left, right int                  // requested number of molecules
	ld, rd      gastank.Distribution // distribution of new molecules
}

func newHost(conf *Config, t *gastank.Tank) *host {
	s := initial(conf)
	return &host{
		tank:  t,
		left:  clampCount(t.Left.Len()),
		right: clampCount(t.Right.Len()),
		ld:    s.Left,
		rd:    s.Right,
	}
}

// frame keeps the wall target inside the window and moves the wall.
func (h *host) frame() {
	t := h.tank
	t.SetWallTarget(gastank.ClampWallTarget(t.WallTarget(), t.Width))
	t.MoveWall()
}

// act applies a user action to the tank.
func (h *host) act(a opengl.Action) error {
	t := h.tank
	switch a {
	case opengl.WallLeft:
		t.SetWallTarget(gastank.ClampWallTarget(t.WallTarget()-wallStep, t.Width))
		return nil
	case opengl.WallRight:
		t.SetWallTarget(gastank.ClampWallTarget(t.WallTarget()+wallStep, t.Width))
		return nil
	case opengl.Defaults:
		h.ld, h.rd = gastank.DefaultDistribution(), gastank.DefaultDistribution()
		return nil
	case opengl.Reinitialize:
		target := t.WallTarget()
		err := t.Reinitialize(gastank.Setup{
			Height:     t.Height,
			Width:      t.Width,
			Wall:       t.Wall,
			LeftCount:  h.left,
			RightCount: h.right,
			Left:       h.ld,
			Right:      h.rd,
		})
		t.SetWallTarget(target)
		return err
	case opengl.MoreLeft:
		h.left = clampCount(max(h.left+1, h.left*5/4))
	case opengl.FewerLeft:
		h.left = clampCount(min(h.left-1, h.left*4/5))
	case opengl.MoreRight:
		h.right = clampCount(max(h.right+1, h.right*5/4))
	case opengl.FewerRight:
		h.right = clampCount(min(h.right-1, h.right*4/5))
	default:
		return fmt.Errorf("unknown action %d", a)
	}
	if err := t.Resize(h.left, h.right, h.ld, h.rd); err != nil {
		h.left, h.right = t.Left.Len(), t.Right.Len()
		return err
	}
	return nil
}

// title summarizes the state of both sides.
func (h *host) title() string {
	l, r := h.tank.Stats()
	return fmt.Sprintf("left: %d molecules, energy %.2f | right: %d molecules, energy %.2f",
		l.Count, l.MeanEnergy, r.Count, r.MeanEnergy)
}

// clampCount keeps a number of molecules within the bounds of the controls.
func clampCount(n int) int {
	return max(minCount, min(n, maxCount))
}
