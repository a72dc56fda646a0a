// Package app drives the window, renderer and frame loop.
package app

import (
	"fmt"
	"log"

	"github.com/richinsley/glrender/capture"
	"github.com/richinsley/glrender/glapi"
	"github.com/richinsley/glrender/glapi/native"
	"github.com/richinsley/glrender/glfwcontext"
	"github.com/richinsley/glrender/graphics"
	"github.com/richinsley/glrender/headless"
	"github.com/richinsley/glrender/options"
	"github.com/richinsley/glrender/renderer"
)

type frameSink interface {
	Submit(pixels []byte) error
	Close() error
}

var startRecorder = func(cfg capture.Config) (frameSink, error) {
	return capture.Start(cfg)
}

// App owns the window, the renderer and the optional recorder.
type App struct {
	opts     *options.Options
	window   graphics.Window
	renderer *renderer.Renderer
	recorder frameSink
	captureW int
	captureH int
	frames   int
	glfw     bool
}

// New opens a GLFW window, or an EGL pbuffer when Headless is set, and loads
// OpenGL into it. Must be called from the main thread.
func New(opts *options.Options) (*App, error) {
	var win graphics.Window
	useGLFW := !boolValue(opts.Headless)
	if useGLFW {
		if err := glfwcontext.InitGraphics(); err != nil {
			return nil, fmt.Errorf("%w: %w", renderer.ErrContextCreation, err)
		}
		ctx, err := glfwcontext.New(intValue(opts.Width), intValue(opts.Height), stringValue(opts.Title), true)
		if err != nil {
			glfwcontext.TerminateGraphics()
			return nil, fmt.Errorf("%w: %w", renderer.ErrContextCreation, err)
		}
		win = ctx
	} else {
		w, err := headless.NewHeadless(intValue(opts.Width), intValue(opts.Height))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", renderer.ErrContextCreation, err)
		}
		win = w
	}

	a, err := NewWithWindow(win, native.Load, opts)
	if err != nil {
		win.Shutdown()
		if useGLFW {
			glfwcontext.TerminateGraphics()
		}
		return nil, err
	}
	a.glfw = useGLFW
	return a, nil
}

// NewWithWindow builds an App on an existing window and GL loader.
func NewWithWindow(win graphics.Window, load glapi.Loader, opts *options.Options) (*App, error) {
	r, err := renderer.Open(win, load)
	if err != nil {
		return nil, err
	}
	info := r.Information()
	log.Printf("OpenGL %s (%s, %s)", info.Version.String, info.Renderer, info.Vendor)

	a := &App{opts: opts, window: win, renderer: r}
	if output := stringValue(opts.Record); output != "" {
		a.captureW, a.captureH = win.GetFramebufferSize()
		rec, err := startRecorder(capture.Config{
			Width:      a.captureW,
			Height:     a.captureH,
			FPS:        intValue(opts.FPS),
			Output:     output,
			Codec:      stringValue(opts.Codec),
			FFmpegPath: stringValue(opts.FFmpegPath),
		})
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to start recording: %w", err)
		}
		a.recorder = rec
	}
	return a, nil
}

// Renderer returns the renderer.
func (a *App) Renderer() *renderer.Renderer {
	return a.renderer
}

// RequestClose sets the window's close flag. The loop exits before the next
// frame.
func (a *App) RequestClose() {
	a.window.SetShouldClose(true)
}

// Frames returns how many frames have been presented.
func (a *App) Frames() int {
	return a.frames
}

// Run calls init once, then frame once per iteration until the window's close
// flag is set. Events are drained before each frame in arrival order; events
// that arrive while frame runs are delivered on the next iteration.
func Run[S any](a *App, init func(*renderer.Renderer) S, frame func(*S, []graphics.Event, *renderer.Renderer)) error {
	state := init(a.renderer)
	limit := intValue(a.opts.Frames)

	for !a.window.ShouldClose() {
		events := a.window.DrainEvents()
		frame(&state, events, a.renderer)

		if a.recorder != nil {
			pixels := a.renderer.ReadFrame(a.captureW, a.captureH)
			if err := a.recorder.Submit(pixels); err != nil {
				return fmt.Errorf("failed to capture frame %d: %w", a.frames, err)
			}
		}

		a.window.PollEvents()
		a.window.SwapBuffers()
		a.frames++

		if limit > 0 && a.frames >= limit {
			a.window.SetShouldClose(true)
		}
	}
	return nil
}

// Shutdown finishes the recording, releases the renderer and destroys the
// window. It returns the recorder's error, if any.
func (a *App) Shutdown() error {
	var err error
	if a.recorder != nil {
		err = a.recorder.Close()
		a.recorder = nil
	}
	a.renderer.Close()
	a.window.Shutdown()
	if a.glfw {
		glfwcontext.TerminateGraphics()
	}
	log.Printf("Shutdown after %d frames", a.frames)
	return err
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func boolValue(p *bool) bool {
	return p != nil && *p
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
