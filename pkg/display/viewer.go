// Package display shows rendered frames in an OpenGL window.
//
// GLFW must be driven from the main OS thread; callers lock it with
// runtime.LockOSThread in an init function.
package display

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"quadcheck/pkg/engine"
)

const (
	maxWindowWidth  = 1024
	maxWindowHeight = 1024
)

// Viewer is a window that displays one frame at a time until the user
// closes it or presses Escape.
type Viewer struct {
	window        *glfw.Window
	shaderProgram uint32
	quadVAO       uint32
	quadVBO       uint32
	texture       uint32
	width         int
	height        int
	mutex         sync.Mutex
}

// NewViewer opens a window sized for a width×height frame
func NewViewer(title string, width, height int) (*Viewer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	winW, winH := WindowSize(width, height, maxWindowWidth, maxWindowHeight)
	window, err := glfw.CreateWindow(winW, winH, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	v := &Viewer{window: window, width: width, height: height}
	if err := v.initResources(); err != nil {
		v.Close()
		return nil, err
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return v, nil
}

func (v *Viewer) initResources() error {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	var err error
	if v.shaderProgram, err = createShaderProgram(vertexShaderSource, fragmentShaderSource); err != nil {
		return err
	}

	// texture row 0 is the top of the frame
	vertices := []float32{
		// Positions      // Texture coords
		-1.0, -1.0, 0.0, 0.0, 1.0,
		1.0, -1.0, 0.0, 1.0, 1.0,
		1.0, 1.0, 0.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &v.quadVAO)
	gl.GenBuffers(1, &v.quadVBO)
	gl.BindVertexArray(v.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &v.texture)
	gl.BindTexture(gl.TEXTURE_2D, v.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.UseProgram(v.shaderProgram)
	gl.Uniform1i(gl.GetUniformLocation(v.shaderProgram, gl.Str("frameTexture\x00")), 0)
	return nil
}

// Render uploads the frame and blocks until the window is closed
func (v *Viewer) Render(frame *engine.Frame) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if frame == nil || len(frame.Pix) != frame.Width*frame.Height*4 {
		return fmt.Errorf("viewer: malformed frame")
	}
	v.width, v.height = frame.Width, frame.Height

	gl.BindTexture(gl.TEXTURE_2D, v.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(frame.Width), int32(frame.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))

	v.window.SetShouldClose(false)
	v.window.Show()
	for !v.window.ShouldClose() {
		v.draw()
		v.window.SwapBuffers()
		glfw.WaitEvents()
	}
	v.window.Hide()
	return nil
}

func (v *Viewer) draw() {
	// framebuffer size differs from window size on HiDPI screens
	fbW, fbH := v.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r := Letterbox(fbW, fbH, v.width, v.height)
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))

	gl.UseProgram(v.shaderProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, v.texture)
	gl.BindVertexArray(v.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

// Close releases GL resources and the window
func (v *Viewer) Close() {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if v.window == nil {
		return
	}
	gl.DeleteTextures(1, &v.texture)
	gl.DeleteBuffers(1, &v.quadVBO)
	gl.DeleteVertexArrays(1, &v.quadVAO)
	gl.DeleteProgram(v.shaderProgram)
	v.window.Destroy()
	v.window = nil
	glfw.Terminate()
}

var _ engine.Renderer = (*Viewer)(nil)
