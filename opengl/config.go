package opengl

// An Action is a request from the user to the host of the simulation.
type Action int

// Actions triggered by keys in the interactive window.
const (
	WallLeft     Action = iota // Left arrow
	WallRight                  // Right arrow
	MoreLeft                   // Q
	FewerLeft                  // A
	MoreRight                  // P
	FewerRight                 // L
	Defaults                   // D: default distributions for new molecules
	Reinitialize               // R: rebuild both sides from scratch
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Step       func()             // go to next step
	Frame      func()             // called once per frame, paused or not
	Act        func(Action) error // handle a user action, may be nil
	Title      func() string      // window title, may be nil
	ForcePause bool               // step manually only?
}
