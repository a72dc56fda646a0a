package glapi

import "errors"

// ErrContextReleased is returned when a resource is used after the context
// that created it has been closed.
var ErrContextReleased = errors.New("glapi: context released")

// Device is the capability handed to programs and vertex arrays: the loaded
// entry points plus a token recording whether the context is still alive.
// Resources keep the Device, never the renderer that issued them.
type Device struct {
	API
	released bool
}

// NewDevice wraps api in a live device.
func NewDevice(api API) *Device {
	return &Device{API: api}
}

// Alive reports whether the context backing the device is still usable.
func (d *Device) Alive() bool {
	return d != nil && !d.released
}

// Check returns ErrContextReleased once the device has been released.
func (d *Device) Check() error {
	if !d.Alive() {
		return ErrContextReleased
	}
	return nil
}

// Release marks the device dead. Subsequent Check calls fail.
func (d *Device) Release() {
	if d != nil {
		d.released = true
	}
}
