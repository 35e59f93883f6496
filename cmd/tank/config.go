package main

import (
	"github.com/BurntSushi/toml"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive OpenGL simulation.
	Output string

	// Replay is the path of an HDF5 file written with Output
	// to play back in an OpenGL window instead of simulating.
	Replay string

	Steps int    // number of time steps (hdf5 only)
	Seed  uint64 // seed of the molecule generator, 0 for a random seed

	// Tank parameters
	Width  float64 // unit: pixel
	Height float64 // unit: pixel
	Wall   float64 // unit: pixel

	// Molecules parameters, per side
	LeftCount     int     // number of molecules
	LeftSpeed     float64 // unit: pixel/step, bound of each velocity component
	LeftRadius    float64 // unit: pixel, average radius
	LeftVariance  float64 // unit: %, spread of radii around the average
	RightCount    int
	RightSpeed    float64
	RightRadius   float64
	RightVariance float64

	// Engine parameters
	Cooldown  int     // unit: step
	Slack     float64 // unit: pixel²
	Smoothing float64 // unit: 1
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:        "",
	Replay:        "",
	Steps:         1000,
	Seed:          0,
	Width:         1000,
	Height:        600,
	Wall:          500,
	LeftCount:     100,
	LeftSpeed:     3,
	LeftRadius:    3,
	LeftVariance:  30,
	RightCount:    200,
	RightSpeed:    3,
	RightRadius:   3,
	RightVariance: 30,
	Cooldown:      5,
	Slack:         5,
	Smoothing:     0.1,
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	_, err := toml.DecodeFile(path, &conf)
	return &conf, err
}
