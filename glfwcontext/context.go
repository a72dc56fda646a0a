package glfwcontext

import (
	"log"
	"runtime"
	"unsafe"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glrender/graphics"
)

// Context is a GLFW window with a 4.1 core GL context. Every input callback
// is registered and feeds an ordered event queue.
type Context struct {
	window *glfw.Window
	events []graphics.Event
}

var _ graphics.Window = (*Context)(nil)

// New creates a window of the given size and title. InitGraphics must have
// been called.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	c.setAllPolling()
	return c, nil
}

func (c *Context) push(e graphics.Event) {
	c.events = append(c.events, e)
}

func (c *Context) stamp() graphics.Stamp {
	return graphics.Stamp(glfw.GetTime())
}

func (c *Context) setAllPolling() {
	w := c.window
	w.SetPosCallback(func(_ *glfw.Window, x, y int) {
		c.push(graphics.PosEvent{Stamp: c.stamp(), X: x, Y: y})
	})
	w.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		c.push(graphics.SizeEvent{Stamp: c.stamp(), Width: width, Height: height})
	})
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.push(graphics.FramebufferSizeEvent{Stamp: c.stamp(), Width: width, Height: height})
	})
	w.SetCloseCallback(func(_ *glfw.Window) {
		c.push(graphics.CloseEvent{Stamp: c.stamp()})
	})
	w.SetRefreshCallback(func(_ *glfw.Window) {
		c.push(graphics.RefreshEvent{Stamp: c.stamp()})
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		c.push(graphics.FocusEvent{Stamp: c.stamp(), Focused: focused})
	})
	w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		c.push(graphics.IconifyEvent{Stamp: c.stamp(), Iconified: iconified})
	})
	w.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		c.push(graphics.ContentScaleEvent{Stamp: c.stamp(), X: x, Y: y})
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		c.push(graphics.KeyEvent{
			Stamp:    c.stamp(),
			Key:      graphics.Key(key),
			Scancode: scancode,
			Action:   graphics.Action(action),
			Mods:     graphics.ModifierKey(mods),
		})
	})
	w.SetCharModsCallback(func(_ *glfw.Window, char rune, mods glfw.ModifierKey) {
		c.push(graphics.CharEvent{Stamp: c.stamp(), Char: char, Mods: graphics.ModifierKey(mods)})
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		c.push(graphics.MouseButtonEvent{
			Stamp:  c.stamp(),
			Button: graphics.MouseButton(button),
			Action: graphics.Action(action),
			Mods:   graphics.ModifierKey(mods),
		})
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.push(graphics.CursorPosEvent{Stamp: c.stamp(), X: x, Y: y})
	})
	w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		c.push(graphics.CursorEnterEvent{Stamp: c.stamp(), Entered: entered})
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		c.push(graphics.ScrollEvent{Stamp: c.stamp(), XOffset: xoff, YOffset: yoff})
	})
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// ProcAddress resolves GL entry points for the current context.
func (c *Context) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(value bool) {
	c.window.SetShouldClose(value)
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

// PollEvents runs pending GLFW callbacks, which queue their events.
func (c *Context) PollEvents() {
	glfw.PollEvents()
}

func (c *Context) DrainEvents() []graphics.Event {
	events := c.events
	c.events = nil
	return events
}

func (c *Context) SetSize(width, height int) {
	c.window.SetSize(width, height)
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) MouseButton(button graphics.MouseButton) graphics.Action {
	return graphics.Action(c.window.GetMouseButton(glfw.MouseButton(button)))
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
