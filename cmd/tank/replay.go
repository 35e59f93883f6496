package main

import (
	"fmt"

	"github.com/PrincetonUniversity/gastank"
	"github.com/PrincetonUniversity/gastank/hdf5"
	"github.com/PrincetonUniversity/gastank/opengl"
)

// RunReplay plays back a simulation recorded by RunHDF5 in an OpenGL window.
// The tank takes the recorded size and the wall follows the recorded positions.
func RunReplay(conf *Config, t *gastank.Tank) (err error) {
	rec := *conf
	if err := hdf5.ReadMeta(conf.Replay, &rec, "Width", "Height"); err != nil {
		return err
	}
	walls, err := hdf5.ReadScalars(conf.Replay, "wall")
	if err != nil {
		return err
	}

	left, err := hdf5.NewLoader(conf.Replay, "left")
	if err != nil {
		return err
	}
	defer checkClose(&err, left)

	right, err := hdf5.NewLoader(conf.Replay, "right")
	if err != nil {
		return err
	}
	defer checkClose(&err, right)

	if left.Steps() != len(walls) || right.Steps() != len(walls) {
		return fmt.Errorf("replay: %d wall positions for %d left and %d right steps",
			len(walls), left.Steps(), right.Steps())
	}

	t.SetSize(rec.Width, rec.Height)
	t.Left, t.Right = gastank.NewPartition(nil), gastank.NewPartition(nil)
	k := 0
	step := func() {
		t.Wall = walls[k]
		t.SetWallTarget(t.Wall)
		k = (k + 1) % len(walls)
		if err := left.Load(&t.Left.Molecules); err != nil {
			Fatal(err)
		}
		if err := right.Load(&t.Right.Molecules); err != nil {
			Fatal(err)
		}
	}
	step()

	h := &host{tank: t}
	return opengl.Run(t, &opengl.Config{
		Step: step,
		Title: func() string {
			return fmt.Sprintf("replay of %d steps | %s", left.Steps(), h.title())
		},
	})
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, l *hdf5.Loader) {
	if cerr := l.Close(); *err == nil {
		*err = cerr
	}
}
