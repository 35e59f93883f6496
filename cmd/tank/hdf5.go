package main

import (
	"fmt"

	"github.com/PrincetonUniversity/gastank"
	"github.com/PrincetonUniversity/gastank/hdf5"
)

// RunHDF5 runs a simulation and saves data to an HDF5 file.
//
// The file contains the molecules of each side at each step in the
// "left" and "right" datasets, the wall position in "wall" and the
// statistics of both sides in "stats".
func RunHDF5(conf *Config, t *gastank.Tank) error {
	if conf.LeftCount < 1 || conf.RightCount < 1 {
		return fmt.Errorf("HDF5 output needs at least one molecule on each side")
	}
	return hdf5.Run(t, &hdf5.Config{
		Output: conf.Output,
		Steps:  conf.Steps,
		Step:   t.Update,
		Meta:   conf,
		Datasets: []*hdf5.Dataset{
			{
				Name: "left",
				Val:  gastank.Molecule{},
				Dims: []int{conf.LeftCount},
				Data: func(t *gastank.Tank) interface{} {
					return hdf5.Padded(t.Left.Molecules, conf.LeftCount)
				},
			},
			{
				Name: "right",
				Val:  gastank.Molecule{},
				Dims: []int{conf.RightCount},
				Data: func(t *gastank.Tank) interface{} {
					return hdf5.Padded(t.Right.Molecules, conf.RightCount)
				},
			},
			{
				Name: "wall",
				Val:  float64(0),
				Data: func(t *gastank.Tank) interface{} {
					return &t.Wall
				},
			},
			{
				Name: "stats",
				Val:  gastank.Stats{},
				Dims: []int{2},
				Data: func(t *gastank.Tank) interface{} {
					l, r := t.Stats()
					s := []gastank.Stats{l, r}
					return &s
				},
			},
		},
	})
}
