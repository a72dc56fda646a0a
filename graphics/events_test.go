package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionString(t *testing.T) {
	assert.Equal(t, "release", Release.String())
	assert.Equal(t, "press", Press.String())
	assert.Equal(t, "repeat", Repeat.String())
	assert.Equal(t, "Action(7)", Action(7).String())
}

func TestEventTime(t *testing.T) {
	events := []Event{
		KeyEvent{Stamp: 1.5, Key: KeyEscape, Action: Press},
		CursorPosEvent{Stamp: 2, X: 10, Y: 20},
		CloseEvent{Stamp: 3},
	}
	var times []float64
	for _, e := range events {
		times = append(times, e.Time())
	}
	assert.Equal(t, []float64{1.5, 2, 3}, times)
}
