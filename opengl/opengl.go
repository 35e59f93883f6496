//go:build !nogl
// +build !nogl

// Package opengl runs tank simulations interactively in an OpenGL window.
package opengl

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/PrincetonUniversity/gastank"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keys maps keys to host actions.
var keys = map[glfw.Key]Action{
	glfw.KeyLeft:  WallLeft,
	glfw.KeyRight: WallRight,
	glfw.KeyQ:     MoreLeft,
	glfw.KeyA:     FewerLeft,
	glfw.KeyP:     MoreRight,
	glfw.KeyL:     FewerRight,
	glfw.KeyD:     Defaults,
	glfw.KeyR:     Reinitialize,
}

// Run runs an interactive simulation in an OpenGL window.
// The window starts at the size of the tank and the tank follows
// the window when it is resized.
func Run(t *gastank.Tank, conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const title = "Gas tank"
	w, err := glfw.CreateWindow(int(t.Width), int(t.Height), title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay()
	if err != nil {
		return err
	}

	// follow window size
	w.SetSizeCallback(func(w *glfw.Window, width, height int) {
		t.SetSize(float64(width), float64(height))
	})
	w.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause {
			pause = !pause
		}
		if key == glfw.KeyPeriod && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
		if a, ok := keys[key]; ok && conf.Act != nil && (action == glfw.Press || action == glfw.Repeat) {
			if err := conf.Act(a); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			}
		}
	})

	for frame := 0; !(quit || w.ShouldClose()); frame++ {
		if conf.Frame != nil {
			conf.Frame()
		}
		if step {
			pause = true
			step = false
			conf.Step()
		}
		if !pause {
			conf.Step()
		}
		if conf.Title != nil && frame%30 == 0 {
			w.SetTitle(title + " | " + conf.Title())
		}
		scale := float32(1)
		if ww, _ := w.GetSize(); ww > 0 {
			fw, _ := w.GetFramebufferSize()
			scale = float32(fw) / float32(ww)
		}
		d.draw(t, scale)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// Colors of both sides and of the wall.
var (
	leftColor  = [3]float32{0.85, 0.2, 0.1}
	rightColor = [3]float32{0.1, 0.3, 0.85}
	wallColor  = [3]float32{0.1, 0.1, 0.9}
)

// wallWidth is the width of the wall on screen.
const wallWidth = 5

// A vertex is what is sent to OpenGL for each molecule.
type vertex struct {
	X, Y   float32
	Radius float32
	Shade  float32 // position in the partition, from 0 to 1
}

// display contains all the OpenGL objects required to display the simulation.
type display struct {
	prog struct {
		disc uint32
		wall uint32
	}
	vao struct {
		disc uint32
		wall uint32
	}
	buf struct {
		disc uint32
		wall uint32
	}
	uni struct {
		discSize  int32 // extent of the tank
		discScale int32 // pixels per tank unit
		discColor int32 // base color of a side
		wallSize  int32
		wallColor int32
	}
	data []vertex
}

// draw updates the OpenGL buffers and draws the tank on screen.
func (d *display) draw(t *gastank.Tank, scale float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	d.drawWall(t)
	d.updateMolecules(t)

	nl, nr := int32(t.Left.Len()), int32(t.Right.Len())
	if nl+nr == 0 {
		return
	}
	gl.UseProgram(d.prog.disc)
	gl.BindVertexArray(d.vao.disc)
	gl.Uniform2f(d.uni.discSize, float32(t.Width), float32(t.Height))
	gl.Uniform1f(d.uni.discScale, scale)
	gl.Uniform3f(d.uni.discColor, leftColor[0], leftColor[1], leftColor[2])
	gl.DrawArrays(gl.POINTS, 0, nl)
	gl.Uniform3f(d.uni.discColor, rightColor[0], rightColor[1], rightColor[2])
	gl.DrawArrays(gl.POINTS, nl, nr)
}

// updateMolecules updates the OpenGL buffer containing molecules of both sides.
func (d *display) updateMolecules(t *gastank.Tank) {
	d.data = d.data[:0]
	for _, p := range []*gastank.Partition{t.Left, t.Right} {
		n := float32(p.Len() - 1)
		if n < 1 {
			n = 1
		}
		for i, m := range p.Molecules {
			d.data = append(d.data, vertex{
				X:      float32(m.Pos.X),
				Y:      float32(m.Pos.Y),
				Radius: float32(m.Radius),
				Shade:  float32(i) / n,
			})
		}
	}
	if len(d.data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.disc)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.data)*int(unsafe.Sizeof(vertex{})), gl.Ptr(d.data), gl.STREAM_DRAW)
}

// drawWall draws the wall as a thin rectangle.
func (d *display) drawWall(t *gastank.Tank) {
	x0, x1 := float32(t.Wall-wallWidth/2.0), float32(t.Wall+wallWidth/2.0)
	h := float32(t.Height)
	quad := [12]float32{x0, 0, x1, 0, x1, h, x0, 0, x1, h, x0, h}

	gl.UseProgram(d.prog.wall)
	gl.BindVertexArray(d.vao.wall)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.wall)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STREAM_DRAW)
	gl.Uniform2f(d.uni.wallSize, float32(t.Width), float32(t.Height))
	gl.Uniform3f(d.uni.wallColor, wallColor[0], wallColor[1], wallColor[2])
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// newDisplay compiles shaders and initializes a display.
func newDisplay() (*display, error) {
	d := new(display)

	// compile and link shaders
	var err error
	d.prog.disc, err = makeProg([]shader{
		{"Vertex", "disc.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "disc.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}
	d.prog.wall, err = makeProg([]shader{
		{"Vertex", "wall.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "wall.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.uni.discSize = gl.GetUniformLocation(d.prog.disc, gl.Str("size\x00"))
	d.uni.discScale = gl.GetUniformLocation(d.prog.disc, gl.Str("scale\x00"))
	d.uni.discColor = gl.GetUniformLocation(d.prog.disc, gl.Str("color\x00"))
	d.uni.wallSize = gl.GetUniformLocation(d.prog.wall, gl.Str("size\x00"))
	d.uni.wallColor = gl.GetUniformLocation(d.prog.wall, gl.Str("color\x00"))

	// attribute locations are specified in the shaders with layout(location=n)
	const n = int32(unsafe.Sizeof(vertex{}))
	gl.GenVertexArrays(1, &d.vao.disc)
	gl.BindVertexArray(d.vao.disc)
	gl.GenBuffers(1, &d.buf.disc)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.disc)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, n, gl.PtrOffset(int(unsafe.Offsetof(vertex{}.X))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, n, gl.PtrOffset(int(unsafe.Offsetof(vertex{}.Radius))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, n, gl.PtrOffset(int(unsafe.Offsetof(vertex{}.Shade))))

	gl.GenVertexArrays(1, &d.vao.wall)
	gl.BindVertexArray(d.vao.wall)
	gl.GenBuffers(1, &d.buf.wall)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.wall)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return d, nil
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	path   string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail bool
	for _, s := range shaders {
		src := sources[s.path] + "\x00"
		str, free := gl.Strs(src)
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error: %s ###\n\n%s\n\n", s.name, s.path, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, fmt.Errorf("gastank: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := make([]uint8, n+1)
		gl.GetProgramInfoLog(prog, n, &n, &log[0])
		return 0, fmt.Errorf("gastank: GLSL link error: %s", gl.GoStr(&log[0]))
	}
	return prog, nil
}
