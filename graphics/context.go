package graphics

import "unsafe"

// Window defines the windowing/event backend a renderer runs on top of.
// All methods must be called from the thread that owns the window.
type Window interface {
	// MakeCurrent binds the window's GL context to the calling thread.
	MakeCurrent()
	// ProcAddress resolves a GL entry point for the current context.
	ProcAddress(name string) unsafe.Pointer
	Shutdown()
	ShouldClose() bool
	SetShouldClose(value bool)
	SwapBuffers()
	// PollEvents processes pending backend events without blocking. Events
	// delivered during the poll are queued until DrainEvents.
	PollEvents()
	// DrainEvents returns every queued event in arrival order and empties the
	// queue. It never blocks.
	DrainEvents() []Event
	SetSize(width, height int)
	GetFramebufferSize() (int, int)
	// Time returns monotonic seconds since the backend was initialized.
	Time() float64
	MouseButton(button MouseButton) Action
}
