package app

import (
	"errors"
	"flag"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glrender/capture"
	"github.com/richinsley/glrender/glapi"
	"github.com/richinsley/glrender/glapi/glapitest"
	"github.com/richinsley/glrender/graphics"
	"github.com/richinsley/glrender/graphics/graphicstest"
	"github.com/richinsley/glrender/options"
	"github.com/richinsley/glrender/renderer"
	"github.com/richinsley/glrender/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T, args ...string) *options.Options {
	t.Helper()
	opts, err := options.Parse(flag.NewFlagSet("test", flag.ContinueOnError), args)
	require.NoError(t, err)
	return opts
}

func newApp(t *testing.T, args ...string) (*glapitest.API, *graphicstest.Window, *App) {
	t.Helper()
	fake := glapitest.New()
	win := graphicstest.New(4, 2)
	a, err := NewWithWindow(win, fake.Loader(), testOptions(t, args...))
	require.NoError(t, err)
	return fake, win, a
}

type counter struct {
	frames int
}

func TestRunStopsOnCloseFlag(t *testing.T) {
	_, win, a := newApp(t)

	err := Run(a, func(*renderer.Renderer) counter { return counter{} },
		func(s *counter, _ []graphics.Event, _ *renderer.Renderer) {
			s.frames++
			if s.frames == 3 {
				win.SetShouldClose(true)
			}
		})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Frames())
	assert.Equal(t, 3, win.Swaps)
	assert.Equal(t, 3, win.Polls)
}

func TestRunNeverCallsFrameAfterClose(t *testing.T) {
	_, win, a := newApp(t)
	win.Closed = true

	inits, frames := 0, 0
	err := Run(a, func(*renderer.Renderer) int { inits++; return 0 },
		func(*int, []graphics.Event, *renderer.Renderer) { frames++ })
	require.NoError(t, err)
	assert.Equal(t, 1, inits)
	assert.Zero(t, frames)
	assert.Zero(t, win.Swaps)
}

func TestRunFrameOrder(t *testing.T) {
	_, win, a := newApp(t, "-frames", "1")

	err := Run(a, func(*renderer.Renderer) struct{} { return struct{}{} },
		func(*struct{}, []graphics.Event, *renderer.Renderer) {
			win.Calls = append(win.Calls, "frame")
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"MakeCurrent", "DrainEvents", "frame", "PollEvents", "SwapBuffers"}, win.Calls)
}

func TestRunFrameLimit(t *testing.T) {
	_, win, a := newApp(t, "-frames", "5")

	calls := 0
	err := Run(a, func(*renderer.Renderer) int { return 0 },
		func(*int, []graphics.Event, *renderer.Renderer) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, a.Frames())
	assert.True(t, win.ShouldClose())
}

func TestRunDeliversEventsInOrder(t *testing.T) {
	_, win, a := newApp(t, "-frames", "3")
	first := graphics.KeyEvent{Stamp: 1, Key: graphics.KeySpace, Action: graphics.Press}
	second := graphics.CursorPosEvent{Stamp: 2, X: 3, Y: 4}
	win.Deliver(first, second)

	late := graphics.MouseButtonEvent{Stamp: 3, Button: graphics.MouseButtonLeft, Action: graphics.Press}
	var seen [][]graphics.Event
	err := Run(a, func(*renderer.Renderer) int { return 0 },
		func(n *int, events []graphics.Event, _ *renderer.Renderer) {
			seen = append(seen, events)
			if *n == 0 {
				// arrives during the frame, so it belongs to the next one
				win.Queue(late)
			}
			*n++
		})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.Equal(t, []graphics.Event{first, second}, seen[0])
	assert.Equal(t, []graphics.Event{late}, seen[1])
	assert.Empty(t, seen[2])
}

func TestRunPassesState(t *testing.T) {
	fake, _, a := newApp(t, "-frames", "2")

	type state struct {
		color mgl32.Vec3
	}
	err := Run(a, func(r *renderer.Renderer) state {
		return state{color: mgl32.Vec3{0.5, 0, 0}}
	}, func(s *state, _ []graphics.Event, r *renderer.Renderer) {
		r.Clear(s.color)
		s.color[1] += 0.25
	})
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0.5, 0.25, 0, 1}, fake.ClearColorValue)
}

func TestOpenFailure(t *testing.T) {
	win := graphicstest.New(1, 1)
	cause := errors.New("no gl")
	_, err := NewWithWindow(win, func(glapi.ProcAddressFunc) (glapi.API, error) { return nil, cause }, testOptions(t))
	assert.ErrorIs(t, err, renderer.ErrContextCreation)
	assert.ErrorIs(t, err, cause)
}

type sink struct {
	frames [][]byte
	closed bool
	fail   error
}

func (s *sink) Submit(pixels []byte) error {
	if s.fail != nil {
		return s.fail
	}
	s.frames = append(s.frames, pixels)
	return nil
}

func (s *sink) Close() error {
	s.closed = true
	return nil
}

func withSink(t *testing.T, s *sink) *capture.Config {
	t.Helper()
	var got capture.Config
	prev := startRecorder
	startRecorder = func(cfg capture.Config) (frameSink, error) {
		got = cfg
		return s, nil
	}
	t.Cleanup(func() { startRecorder = prev })
	return &got
}

func TestRunCapturesEveryFrame(t *testing.T) {
	s := &sink{}
	cfg := withSink(t, s)
	fake, win, a := newApp(t, "-frames", "2", "-record", "out.mp4", "-codec", "hevc", "-fps", "24")

	assert.Equal(t, capture.Config{Width: 4, Height: 2, FPS: 24, Output: "out.mp4", Codec: "hevc"}, *cfg)

	err := Run(a, func(*renderer.Renderer) int { return 0 },
		func(_ *int, _ []graphics.Event, r *renderer.Renderer) {
			r.Clear(mgl32.Vec3{0, 1, 0})
		})
	require.NoError(t, err)
	require.Len(t, s.frames, 2)
	assert.Len(t, s.frames[0], 4*2*4)
	assert.Equal(t, []byte{0, 255, 0, 255}, s.frames[1][:4])
	assert.Equal(t, 2, fake.CallCount("ReadPixels"))

	require.NoError(t, a.Shutdown())
	assert.True(t, s.closed)
	assert.True(t, win.Destroyed)
}

func TestRunStopsOnCaptureError(t *testing.T) {
	cause := errors.New("ffmpeg exited")
	s := &sink{fail: cause}
	withSink(t, s)
	_, win, a := newApp(t, "-record", "out.mp4")

	calls := 0
	err := Run(a, func(*renderer.Renderer) int { return 0 },
		func(*int, []graphics.Event, *renderer.Renderer) { calls++ })
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, calls)
	assert.Zero(t, win.Swaps)
}

func TestShutdownReleasesRenderer(t *testing.T) {
	_, win, a := newApp(t)
	p, err := a.Renderer().Shader(
		"#version 410 core\nvoid main() {}\n",
		"#version 410 core\nvoid main() {}\n")
	require.NoError(t, err)

	require.NoError(t, a.Shutdown())
	assert.True(t, win.Destroyed)
	assert.ErrorIs(t, p.With(func(*shader.Uniforms) {}), glapi.ErrContextReleased)
}
