package graphics

import "fmt"

// Action is the state reported for keys and mouse buttons.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MouseButton identifies a mouse button. Values match GLFW.
type MouseButton int

const (
	MouseButton1 MouseButton = iota
	MouseButton2
	MouseButton3
	MouseButton4
	MouseButton5
	MouseButton6
	MouseButton7
	MouseButton8

	MouseButtonLeft   = MouseButton1
	MouseButtonRight  = MouseButton2
	MouseButtonMiddle = MouseButton3
)

// Key is a keyboard key code. Values match GLFW key tokens.
type Key int

const (
	KeyUnknown Key = -1
	KeySpace   Key = 32
	KeyEscape  Key = 256
	KeyEnter   Key = 257
	KeyRight   Key = 262
	KeyLeft    Key = 263
	KeyDown    Key = 264
	KeyUp      Key = 265
)

// ModifierKey is a bit set of held modifier keys.
type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Event is a window event. The set of implementations is closed.
type Event interface {
	// Time is the backend time, in seconds, at which the event was queued.
	Time() float64
	event()
}

// Stamp carries the queue time shared by all events.
type Stamp float64

func (s Stamp) Time() float64 { return float64(s) }
func (Stamp) event()          {}

type KeyEvent struct {
	Stamp
	Key      Key
	Scancode int
	Action   Action
	Mods     ModifierKey
}

type CharEvent struct {
	Stamp
	Char rune
	Mods ModifierKey
}

type MouseButtonEvent struct {
	Stamp
	Button MouseButton
	Action Action
	Mods   ModifierKey
}

type CursorPosEvent struct {
	Stamp
	X, Y float64
}

type CursorEnterEvent struct {
	Stamp
	Entered bool
}

type ScrollEvent struct {
	Stamp
	XOffset, YOffset float64
}

type PosEvent struct {
	Stamp
	X, Y int
}

type SizeEvent struct {
	Stamp
	Width, Height int
}

type FramebufferSizeEvent struct {
	Stamp
	Width, Height int
}

type CloseEvent struct {
	Stamp
}

type RefreshEvent struct {
	Stamp
}

type FocusEvent struct {
	Stamp
	Focused bool
}

type IconifyEvent struct {
	Stamp
	Iconified bool
}

type ContentScaleEvent struct {
	Stamp
	X, Y float32
}
