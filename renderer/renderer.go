package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glrender/geometry"
	"github.com/richinsley/glrender/glapi"
	"github.com/richinsley/glrender/graphics"
	"github.com/richinsley/glrender/shader"
)

// ErrContextCreation is returned by Open when the window's context cannot be
// made usable.
var ErrContextCreation = errors.New("failed to create rendering context")

// Renderer is the facade over a live window and its GL context. It must only
// be used from the thread the context is current on.
type Renderer struct {
	window graphics.Window
	dev    *glapi.Device
}

// Open makes the window's context current and loads the GL entry points
// through the window's resolver.
func Open(window graphics.Window, load glapi.Loader) (*Renderer, error) {
	if window == nil {
		return nil, fmt.Errorf("%w: no window", ErrContextCreation)
	}
	window.MakeCurrent()
	api, err := load(window.ProcAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextCreation, err)
	}
	return &Renderer{window: window, dev: glapi.NewDevice(api)}, nil
}

// Close releases the context's device. Programs and vertex arrays created by
// this renderer fail with glapi.ErrContextReleased afterwards; Clear,
// SetWindowSize, Information, Extensions and ReadFrame become no-ops that
// return zero values.
func (r *Renderer) Close() {
	r.dev.Release()
}

// Shader compiles and links a program from desktop GLSL sources.
func (r *Renderer) Shader(vertex, fragment string) (*shader.Program, error) {
	return shader.Compile(r.dev, vertex, fragment)
}

// Translator converts a GLSL ES stage to desktop GLSL and reports the
// renamed uniforms.
type Translator interface {
	Translate(source string, stage shader.Stage) (code string, names map[string]string, err error)
}

// ShaderES translates GLSL ES sources with tr, then compiles them. Uniforms
// of the returned program are set by their original names.
func (r *Renderer) ShaderES(tr Translator, vertex, fragment string) (*shader.Program, error) {
	vs, vnames, err := tr.Translate(vertex, shader.Vertex)
	if err != nil {
		return nil, err
	}
	fs, fnames, err := tr.Translate(fragment, shader.Fragment)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(vnames)+len(fnames))
	for k, v := range vnames {
		names[k] = v
	}
	for k, v := range fnames {
		names[k] = v
	}
	return shader.Compile(r.dev, vs, fs, shader.WithUniformNames(names))
}

// VertexArray allocates an empty vertex array.
func (r *Renderer) VertexArray() (*geometry.VertexArray, error) {
	return geometry.New(r.dev)
}

// Clear clears the color and depth buffers to color with alpha 1.
func (r *Renderer) Clear(color mgl32.Vec3) {
	if !r.dev.Alive() {
		return
	}
	r.dev.ClearColor(color[0], color[1], color[2], 1)
	r.dev.Clear(glapi.ColorBufferBit | glapi.DepthBufferBit)
}

// SetWindowSize resizes the window, then resets the viewport to cover it.
func (r *Renderer) SetWindowSize(width, height int) {
	if !r.dev.Alive() {
		return
	}
	r.window.SetSize(width, height)
	r.dev.Viewport(0, 0, int32(width), int32(height))
}

// Time returns seconds since the windowing backend was initialized.
func (r *Renderer) Time() float64 {
	return r.window.Time()
}

// MouseButton returns the current state of button.
func (r *Renderer) MouseButton(button graphics.MouseButton) graphics.Action {
	return r.window.MouseButton(button)
}

// FramebufferSize returns the framebuffer size in pixels.
func (r *Renderer) FramebufferSize() (int, int) {
	return r.window.GetFramebufferSize()
}

// ReadFrame reads the lower-left width×height region of the current
// framebuffer as tightly packed RGBA8 rows, bottom row first.
func (r *Renderer) ReadFrame(width, height int) []byte {
	if width <= 0 || height <= 0 || !r.dev.Alive() {
		return nil
	}
	pixels := make([]byte, width*height*4)
	r.dev.ReadPixels(0, 0, int32(width), int32(height), glapi.RGBA, glapi.UnsignedByte, pixels)
	return pixels
}
