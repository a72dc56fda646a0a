package geometry

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glrender/glapi"
	"github.com/richinsley/glrender/glapi/glapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVertexArray(t *testing.T) (*glapitest.API, *VertexArray) {
	t.Helper()
	fake := glapitest.New()
	va, err := New(glapi.NewDevice(fake))
	require.NoError(t, err)
	return fake, va
}

func TestNewVertexArray(t *testing.T) {
	fake, va := newVertexArray(t)

	assert.NotZero(t, va.ID())
	assert.Equal(t, 0, va.BufferCount())
	assert.Equal(t, 0, va.IndexCount())
	assert.Equal(t, va.ebo, fake.VertexArrays[va.ID()].ElementBuffer)
	assert.Zero(t, fake.BoundVertexArray)
}

func TestAddBufferSlots(t *testing.T) {
	_, va := newVertexArray(t)

	for want := 0; want < 3; want++ {
		slot, err := va.AddBuffer()
		require.NoError(t, err)
		assert.Equal(t, want, slot)
	}
	assert.Equal(t, 3, va.BufferCount())
}

func TestSetBufferSlotBounds(t *testing.T) {
	fake, va := newVertexArray(t)
	const n = 2
	for i := 0; i < n; i++ {
		_, err := va.AddBuffer()
		require.NoError(t, err)
	}

	for k := 0; k < n; k++ {
		assert.NoError(t, va.SetBuffer(k, Floats{1, 2, 3}))
	}

	before := len(fake.Calls)
	err := va.SetBuffer(n, Floats{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAttributeSlot)
	var slotErr *AttributeSlotError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, n, slotErr.Slot)
	assert.Equal(t, n, slotErr.Count)
	assert.Len(t, fake.Calls, before, "no native calls on an invalid slot")

	assert.ErrorIs(t, va.SetBuffer(-1, Floats{1}), ErrInvalidAttributeSlot)
}

func TestSetBufferUploadsElementMajor(t *testing.T) {
	fake, va := newVertexArray(t)
	slot, err := va.AddBuffer()
	require.NoError(t, err)

	positions := Vec3s{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	require.NoError(t, va.SetBuffer(slot, positions))

	buf := fake.Buffers[va.buffers[slot]]
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, buf.Floats)
	assert.Equal(t, 9*4, buf.Bytes)
	assert.Equal(t, uint32(glapi.StaticDraw), buf.Usage)

	attr := fake.VertexArrays[va.ID()].Attribs[uint32(slot)]
	require.NotNil(t, attr)
	assert.Equal(t, glapitest.Attrib{
		Buffer:  va.buffers[slot],
		Size:    3,
		Type:    glapi.Float,
		Stride:  12,
		Offset:  0,
		Enabled: true,
	}, *attr)
	assert.Zero(t, fake.BoundVertexArray)
}

func TestSetBufferReplacesContents(t *testing.T) {
	fake, va := newVertexArray(t)
	_, err := va.AddBuffer()
	require.NoError(t, err)
	_, err = va.AddBuffer()
	require.NoError(t, err)

	require.NoError(t, va.SetBuffer(1, Vec2s{{1, 2}, {3, 4}}))
	require.NoError(t, va.SetBuffer(1, Vec2s{{5, 6}}))

	assert.Equal(t, []float32{5, 6}, fake.Buffers[va.buffers[1]].Floats)
	attr := fake.VertexArrays[va.ID()].Attribs[1]
	assert.Equal(t, int32(2), attr.Size)
	assert.Equal(t, int32(8), attr.Stride)
}

func TestSetBufferEmpty(t *testing.T) {
	fake, va := newVertexArray(t)
	_, err := va.AddBuffer()
	require.NoError(t, err)

	require.NoError(t, va.SetBuffer(0, Floats{}))
	assert.Empty(t, fake.Buffers[va.buffers[0]].Floats)
}

func TestSetIndicesAndRender(t *testing.T) {
	fake, va := newVertexArray(t)

	require.NoError(t, va.SetIndices([]int32{0, 1, 2}))
	assert.Equal(t, 3, va.IndexCount())
	ebo := fake.Buffers[va.ebo]
	assert.Equal(t, []int32{0, 1, 2}, ebo.Ints)
	assert.Equal(t, 3*4, ebo.Bytes)

	require.NoError(t, va.Render())
	require.Len(t, fake.Draws, 1)
	assert.Equal(t, glapitest.Draw{
		Mode:          glapi.Triangles,
		Count:         3,
		Type:          glapi.UnsignedInt,
		VertexArray:   va.ID(),
		ElementBuffer: va.ebo,
	}, fake.Draws[0])
	assert.Zero(t, fake.BoundVertexArray)
}

func TestRenderWithoutIndices(t *testing.T) {
	fake, va := newVertexArray(t)

	require.NoError(t, va.Render())
	require.Len(t, fake.Draws, 1)
	assert.Zero(t, fake.Draws[0].Count)
}

func TestDelete(t *testing.T) {
	fake, va := newVertexArray(t)
	_, err := va.AddBuffer()
	require.NoError(t, err)
	id, ebo, vbo := va.ID(), va.ebo, va.buffers[0]

	va.Delete()
	va.Delete()
	assert.True(t, fake.VertexArrays[id].Deleted)
	assert.True(t, fake.Buffers[ebo].Deleted)
	assert.True(t, fake.Buffers[vbo].Deleted)
	assert.Equal(t, 1, fake.CallCount("DeleteVertexArray"))
	assert.ErrorIs(t, va.Render(), ErrDeleted)
}

func TestUseAfterRelease(t *testing.T) {
	fake := glapitest.New()
	dev := glapi.NewDevice(fake)
	va, err := New(dev)
	require.NoError(t, err)

	dev.Release()
	_, err = va.AddBuffer()
	assert.ErrorIs(t, err, glapi.ErrContextReleased)
	assert.ErrorIs(t, va.SetIndices([]int32{0}), glapi.ErrContextReleased)
	assert.ErrorIs(t, va.Render(), glapi.ErrContextReleased)
	assert.Empty(t, fake.Draws)

	va.Delete()
	assert.Equal(t, 0, fake.CallCount("DeleteVertexArray"))

	_, err = New(dev)
	assert.ErrorIs(t, err, glapi.ErrContextReleased)
}

func TestAttributeFlatten(t *testing.T) {
	assert.Equal(t, int32(1), Floats{}.Stride())
	assert.Equal(t, []float32{1, 2}, Floats{1, 2}.Flatten())
	assert.Equal(t, []float32{1, 2, 3, 4}, Vec2s{{1, 2}, {3, 4}}.Flatten())
	assert.Equal(t, []float32{1, 2, 3}, Vec3s{mgl32.Vec3{1, 2, 3}}.Flatten())
}
