package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Dark565/octaray/scene"
	"github.com/Dark565/octaray/tracer"
	"github.com/Dark565/octaray/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Coefficients for converting delta cursor movements to yaw/pitch camera angles.
	mouseSensitivityX = 0.005
	mouseSensitivityY = 0.005

	// Camera movement speed
	cameraMoveSpeed = 0.05
)

func init() {
	// The glfw event loop must stay on the main thread.
	runtime.LockOSThread()
}

// An interactive opengl-based renderer. Each iteration of the window loop
// traces one full frame into the accumulator; moving the camera drops the
// accumulated samples and integration starts over.
type interactiveGLRenderer struct {
	sc    *scene.Scene
	opts  Options
	tr    *tracer.Tracer
	accum *Accumulator
	stats FrameStats

	frameBuffer []uint8

	// opengl handles
	window *glfw.Window
	texFbo uint32

	// state
	lastCursorPos types.Vec2
	mousePressed  bool
}

// NewInteractive creates a windowed renderer that keeps tracing frames until
// the window closes.
func NewInteractive(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	opts = opts.withDefaults()

	r := &interactiveGLRenderer{
		sc:   sc,
		opts: opts,
		tr: tracer.New(sc, tracer.Options{
			FrameW:      opts.FrameW,
			FrameH:      opts.FrameH,
			RefMax:      opts.NumBounces,
			Attenuation: opts.Attenuation,
		}, time.Now().UnixNano()),
		accum:       NewAccumulator(opts.FrameW, opts.FrameH),
		frameBuffer: make([]uint8, opts.FrameW*opts.FrameH*4),
	}

	if err := r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	var err error
	r.window, err = glfw.CreateWindow(opts.FrameW, opts.FrameH, "octaray", nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for frame data
	gl.GenTextures(1, &r.texFbo)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texFbo)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(opts.FrameW), int32(opts.FrameH), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	r.window.SetCursorPosCallback(r.onCursorMove)
	r.window.SetMouseButtonCallback(r.onMouseButton)

	return nil
}

func (r *interactiveGLRenderer) Render() error {
	for !r.window.ShouldClose() {
		glfw.PollEvents()
		r.handleKeys()

		st := r.tr.TraceFrame(r.accum)
		r.accum.EndFrame()
		r.collect(st)

		r.accum.ToneMap(r.opts.Exposure, r.opts.Gamma, r.frameBuffer)
		r.blit()
		r.window.SwapBuffers()
	}
	return nil
}

func (r *interactiveGLRenderer) collect(st tracer.Stats) {
	r.stats.Frames++
	r.stats.Rays += st.Rays
	r.stats.RenderTime += st.RenderTime
	if st.Rays > 0 {
		r.stats.AvgBounces = float64(st.Bounces) / float64(st.Rays)
	}
}

// blit uploads the tone-mapped frame and draws it as a fullscreen quad.
func (r *interactiveGLRenderer) blit() {
	gl.BindTexture(gl.TEXTURE_2D, r.texFbo)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(r.opts.FrameW), int32(r.opts.FrameH), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.frameBuffer))

	gl.Enable(gl.TEXTURE_2D)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, 1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(-1, -1)
	gl.End()
	gl.Disable(gl.TEXTURE_2D)
}

func (r *interactiveGLRenderer) handleKeys() {
	var dx, dz float64
	if r.window.GetKey(glfw.KeyW) == glfw.Press {
		dz += cameraMoveSpeed
	}
	if r.window.GetKey(glfw.KeyS) == glfw.Press {
		dz -= cameraMoveSpeed
	}
	if r.window.GetKey(glfw.KeyA) == glfw.Press {
		dx -= cameraMoveSpeed
	}
	if r.window.GetKey(glfw.KeyD) == glfw.Press {
		dx += cameraMoveSpeed
	}
	if dx != 0 || dz != 0 {
		r.sc.Camera.Move(dx, 0, dz)
		r.accum.Reset()
	}
}

func (r *interactiveGLRenderer) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	r.mousePressed = action == glfw.Press
	x, y := w.GetCursorPos()
	r.lastCursorPos = types.XY(x, y)
}

func (r *interactiveGLRenderer) onCursorMove(w *glfw.Window, x, y float64) {
	if !r.mousePressed {
		return
	}

	pos := types.XY(x, y)
	delta := pos.Sub(r.lastCursorPos)
	r.lastCursorPos = pos

	r.sc.Camera.Yaw(delta[0] * mouseSensitivityX)
	r.sc.Camera.Pitch(delta[1] * mouseSensitivityY)
	r.accum.Reset()
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
	}
	glfw.Terminate()
}

func (r *interactiveGLRenderer) Stats() FrameStats {
	return r.stats
}
