//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glrender/graphics"
)

// NewHeadless reports that EGL pbuffers are unavailable on this platform.
func NewHeadless(width, height int) (graphics.Window, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
