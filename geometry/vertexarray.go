// Package geometry manages vertex array objects: per-attribute vertex buffers,
// an index buffer and indexed draws.
package geometry

import (
	"errors"
	"fmt"

	"github.com/richinsley/glrender/glapi"
)

// floatSize is sizeof(GLfloat).
const floatSize = 4

var (
	// ErrInvalidAttributeSlot is returned when data is uploaded to a slot that
	// AddBuffer has not allocated.
	ErrInvalidAttributeSlot = errors.New("invalid attribute slot")
	// ErrDeleted is returned when a deleted vertex array is used.
	ErrDeleted = errors.New("geometry: vertex array deleted")
)

// AttributeSlotError reports the slot that was out of range.
type AttributeSlotError struct {
	Slot  int
	Count int
}

func (e *AttributeSlotError) Error() string {
	return fmt.Sprintf("%v: slot %d, %d buffers allocated", ErrInvalidAttributeSlot, e.Slot, e.Count)
}

func (e *AttributeSlotError) Unwrap() error { return ErrInvalidAttributeSlot }

// VertexArray owns a vertex array object, one vertex buffer per attribute
// slot and an index buffer. The slot of a buffer is the order in which
// AddBuffer allocated it and must match the shader's attribute locations.
type VertexArray struct {
	dev        *glapi.Device
	id         uint32
	buffers    []uint32
	ebo        uint32
	indexCount int32
}

// New allocates an empty vertex array with an empty index buffer.
func New(dev *glapi.Device) (*VertexArray, error) {
	if err := dev.Check(); err != nil {
		return nil, err
	}
	va := &VertexArray{dev: dev}
	va.id = dev.GenVertexArray()
	dev.BindVertexArray(va.id)
	va.ebo = dev.GenBuffer()
	dev.BindBuffer(glapi.ElementArrayBuffer, va.ebo)
	dev.BindVertexArray(0)
	dev.BindBuffer(glapi.ElementArrayBuffer, 0)
	return va, nil
}

// ID returns the native vertex array handle.
func (va *VertexArray) ID() uint32 { return va.id }

// BufferCount returns the number of attribute buffers allocated so far.
func (va *VertexArray) BufferCount() int { return len(va.buffers) }

// IndexCount returns the number of indices the next Render draws.
func (va *VertexArray) IndexCount() int { return int(va.indexCount) }

// AddBuffer allocates an empty attribute buffer and returns its slot.
func (va *VertexArray) AddBuffer() (int, error) {
	if err := va.check(); err != nil {
		return 0, err
	}
	va.dev.BindVertexArray(va.id)
	id := va.dev.GenBuffer()
	va.dev.BindBuffer(glapi.ArrayBuffer, id)
	va.dev.BindBuffer(glapi.ArrayBuffer, 0)
	va.buffers = append(va.buffers, id)
	va.dev.BindVertexArray(0)
	return len(va.buffers) - 1, nil
}

// SetBuffer replaces the contents of the buffer at slot and points attribute
// location slot at it.
func (va *VertexArray) SetBuffer(slot int, data Attribute) error {
	if err := va.check(); err != nil {
		return err
	}
	if slot < 0 || slot >= len(va.buffers) {
		return &AttributeSlotError{Slot: slot, Count: len(va.buffers)}
	}
	stride := data.Stride()

	va.dev.BindVertexArray(va.id)
	va.dev.BindBuffer(glapi.ArrayBuffer, va.buffers[slot])
	va.dev.BufferDataFloat32(glapi.ArrayBuffer, data.Flatten(), glapi.StaticDraw)
	va.dev.VertexAttribPointer(uint32(slot), stride, glapi.Float, false, stride*floatSize, 0)
	va.dev.EnableVertexAttribArray(uint32(slot))
	va.dev.BindVertexArray(0)
	va.dev.BindBuffer(glapi.ArrayBuffer, 0)
	return nil
}

// SetIndices replaces the index buffer. Indices address vertices as
// unsigned values; negative entries are a caller error.
func (va *VertexArray) SetIndices(indices []int32) error {
	if err := va.check(); err != nil {
		return err
	}
	va.indexCount = int32(len(indices))

	va.dev.BindVertexArray(va.id)
	va.dev.BindBuffer(glapi.ElementArrayBuffer, va.ebo)
	va.dev.BufferDataInt32(glapi.ElementArrayBuffer, indices, glapi.StaticDraw)
	va.dev.BindVertexArray(0)
	va.dev.BindBuffer(glapi.ElementArrayBuffer, 0)
	return nil
}

// Render issues one indexed triangle-list draw of IndexCount indices. Before
// SetIndices it draws nothing.
func (va *VertexArray) Render() error {
	if err := va.check(); err != nil {
		return err
	}
	va.dev.BindVertexArray(va.id)
	va.dev.BindBuffer(glapi.ElementArrayBuffer, va.ebo)
	va.dev.DrawElements(glapi.Triangles, va.indexCount, glapi.UnsignedInt, 0)
	va.dev.BindVertexArray(0)
	va.dev.BindBuffer(glapi.ElementArrayBuffer, 0)
	return nil
}

// Delete releases every buffer and the vertex array. It is safe to call
// more than once and after the context has been closed.
func (va *VertexArray) Delete() {
	if va.id == 0 {
		return
	}
	if va.dev.Alive() {
		for _, b := range va.buffers {
			va.dev.DeleteBuffer(b)
		}
		va.dev.DeleteBuffer(va.ebo)
		va.dev.DeleteVertexArray(va.id)
	}
	va.id, va.ebo, va.buffers, va.indexCount = 0, 0, nil, 0
}

func (va *VertexArray) check() error {
	if err := va.dev.Check(); err != nil {
		return err
	}
	if va.id == 0 {
		return ErrDeleted
	}
	return nil
}
