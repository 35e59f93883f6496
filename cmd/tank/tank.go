// Command tank runs gas diffusion simulations between two sides of a tank.
//
// # Usage
//
// The tank command takes one optional argument:
//
//	tank [config_file]
//
// It is the path to a TOML config file.
// If no config file is specified, an interactive simulation
// with default parameters will run in an OpenGL window.
//
// # Config file
//
// The config file is written in TOML. Keys are the field names of Config,
// for instance:
//
//	Output = "out/tank.h5"
//	Steps = 5000
//	LeftCount = 300
//	RightSpeed = 6
//
// Setting Output records the simulation to an HDF5 file instead of
// displaying it. Setting Replay plays back such a file, with the tank
// size and wall positions of the recording.
//
// # Interactive mode
//
// In interactive mode, the simulation can be paused/resumed with space.
// While in pause, pressing the period key will perform a single step.
// Left and right arrows move the wall.
// Q and A add and remove molecules on the left, P and L on the right.
// D resets the distribution of new molecules to the defaults.
// R rebuilds both sides from scratch.
// Pressing Esc or closing the window will quit.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/PrincetonUniversity/gastank"
	"golang.org/x/exp/rand"
)

const usage = `Usage: tank [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	// setup simulation
	tank := setup(conf)

	// run interactively or not depending on config
	switch {
	case conf.Output != "" && conf.Replay != "":
		err = fmt.Errorf("'output' and 'replay' keys cannot be used together")
	case conf.Replay != "":
		err = RunReplay(conf, tank)
	case conf.Output != "":
		err = RunHDF5(conf, tank)
	default:
		err = RunOpenGL(conf, tank)
	}
	if err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// setup builds the tank and fills it with molecules.
func setup(conf *Config) *gastank.Tank {
	if conf.Cooldown < 0 || conf.Cooldown > 255 {
		Fatal(fmt.Errorf("bad cooldown %d (must be between 0 and 255)", conf.Cooldown))
	}
	if conf.Smoothing <= 0 || conf.Smoothing > 1 {
		Fatal(fmt.Errorf("bad smoothing %g (must be in (0, 1])", conf.Smoothing))
	}

	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := gastank.NewGenerator(rand.NewSource(seed))

	tank, err := gastank.New(initial(conf), gen)
	if err != nil {
		Fatal(err)
	}
	tank.Params = gastank.Params{
		Cooldown:  uint8(conf.Cooldown),
		Slack:     conf.Slack,
		Smoothing: conf.Smoothing,
	}
	return tank
}

// initial returns the setup described by conf.
func initial(conf *Config) gastank.Setup {
	return gastank.Setup{
		Height:     conf.Height,
		Width:      conf.Width,
		Wall:       conf.Wall,
		LeftCount:  conf.LeftCount,
		RightCount: conf.RightCount,
		Left:       gastank.NewDistribution(conf.LeftSpeed, conf.LeftRadius, conf.LeftVariance),
		Right:      gastank.NewDistribution(conf.RightSpeed, conf.RightRadius, conf.RightVariance),
	}
}
