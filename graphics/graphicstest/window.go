// Package graphicstest provides a scripted graphics.Window for tests.
package graphicstest

import (
	"unsafe"

	"github.com/richinsley/glrender/graphics"
)

// Window is an in-memory graphics.Window. Events pushed with Queue are
// delivered by the next PollEvents, mirroring how backends only deliver
// callbacks while polling.
type Window struct {
	Width, Height int
	Clock         float64
	Buttons       map[graphics.MouseButton]graphics.Action

	Current   bool
	Closed    bool
	Destroyed bool
	Swaps     int
	Polls     int
	Calls     []string

	// OnPoll runs at the end of every PollEvents call.
	OnPoll func(w *Window)

	incoming []graphics.Event
	queue    []graphics.Event
}

var _ graphics.Window = (*Window)(nil)

// New returns a window of the given size.
func New(width, height int) *Window {
	return &Window{
		Width:   width,
		Height:  height,
		Buttons: map[graphics.MouseButton]graphics.Action{},
	}
}

// Queue schedules events for delivery on the next PollEvents.
func (w *Window) Queue(events ...graphics.Event) {
	w.incoming = append(w.incoming, events...)
}

// Deliver makes events immediately available to DrainEvents.
func (w *Window) Deliver(events ...graphics.Event) {
	w.queue = append(w.queue, events...)
}

func (w *Window) MakeCurrent() {
	w.Calls = append(w.Calls, "MakeCurrent")
	w.Current = true
}

func (w *Window) ProcAddress(name string) unsafe.Pointer { return nil }

func (w *Window) ShouldClose() bool { return w.Closed }

func (w *Window) SetShouldClose(value bool) { w.Closed = value }

func (w *Window) SwapBuffers() {
	w.Calls = append(w.Calls, "SwapBuffers")
	w.Swaps++
}

func (w *Window) PollEvents() {
	w.Calls = append(w.Calls, "PollEvents")
	w.Polls++
	w.queue = append(w.queue, w.incoming...)
	w.incoming = nil
	if w.OnPoll != nil {
		w.OnPoll(w)
	}
}

func (w *Window) DrainEvents() []graphics.Event {
	w.Calls = append(w.Calls, "DrainEvents")
	events := w.queue
	w.queue = nil
	return events
}

func (w *Window) SetSize(width, height int) {
	w.Calls = append(w.Calls, "SetSize")
	w.Width, w.Height = width, height
}

func (w *Window) GetFramebufferSize() (int, int) { return w.Width, w.Height }

func (w *Window) Time() float64 { return w.Clock }

func (w *Window) MouseButton(button graphics.MouseButton) graphics.Action {
	return w.Buttons[button]
}

func (w *Window) Shutdown() {
	w.Calls = append(w.Calls, "Shutdown")
	w.Destroyed = true
}
