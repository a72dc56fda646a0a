package geometry

import "github.com/go-gl/mathgl/mgl32"

// Attribute is the per-vertex data uploaded to one attribute slot: Floats,
// Vec2s or Vec3s.
type Attribute interface {
	// Stride is the number of float components per element.
	Stride() int32
	// Flatten returns the components element-major: element 0's components,
	// then element 1's, and so on.
	Flatten() []float32
	attribute()
}

type (
	Floats []float32
	Vec2s  []mgl32.Vec2
	Vec3s  []mgl32.Vec3
)

func (Floats) Stride() int32 { return 1 }
func (Vec2s) Stride() int32  { return 2 }
func (Vec3s) Stride() int32  { return 3 }

func (a Floats) Flatten() []float32 {
	return append([]float32(nil), a...)
}

func (a Vec2s) Flatten() []float32 {
	out := make([]float32, 0, len(a)*2)
	for _, v := range a {
		out = append(out, v[0], v[1])
	}
	return out
}

func (a Vec3s) Flatten() []float32 {
	out := make([]float32, 0, len(a)*3)
	for _, v := range a {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

func (Floats) attribute() {}
func (Vec2s) attribute()  {}
func (Vec3s) attribute()  {}
