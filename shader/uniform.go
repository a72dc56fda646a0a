package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glrender/glapi"
)

// Value is a uniform value: one of Float, Vec2, Vec3, Vec4 or Mat4.
type Value interface {
	write(api glapi.API, location int32)
}

type (
	Float float32
	Vec2  mgl32.Vec2
	Vec3  mgl32.Vec3
	Vec4  mgl32.Vec4
	// Mat4 is column-major, as mgl32 stores it and GLSL expects it.
	Mat4 mgl32.Mat4
)

func (v Float) write(api glapi.API, location int32) { api.Uniform1f(location, float32(v)) }
func (v Vec2) write(api glapi.API, location int32)  { api.Uniform2f(location, v[0], v[1]) }
func (v Vec3) write(api glapi.API, location int32)  { api.Uniform3f(location, v[0], v[1], v[2]) }
func (v Vec4) write(api glapi.API, location int32) {
	api.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (v Mat4) write(api glapi.API, location int32) {
	m := [16]float32(v)
	api.UniformMatrix4fv(location, false, &m)
}

// Uniforms writes uniforms of the program made current by Program.With. It
// is only valid inside the With callback; With revokes it on return.
type Uniforms struct {
	program *Program
}

// Set resolves name against the active program and writes v. The location is
// looked up on every call. Unknown names resolve to -1, which the driver
// ignores. Set does nothing once the With callback has returned or the
// context has been closed.
func (u *Uniforms) Set(name string, v Value) {
	p := u.program
	if p == nil || !p.dev.Alive() {
		return
	}
	if mapped, ok := p.names[name]; ok {
		name = mapped
	}
	v.write(p.dev, p.dev.GetUniformLocation(p.id, name))
}

func (u *Uniforms) SetFloat(name string, v float32)   { u.Set(name, Float(v)) }
func (u *Uniforms) SetVec2(name string, v mgl32.Vec2) { u.Set(name, Vec2(v)) }
func (u *Uniforms) SetVec3(name string, v mgl32.Vec3) { u.Set(name, Vec3(v)) }
func (u *Uniforms) SetVec4(name string, v mgl32.Vec4) { u.Set(name, Vec4(v)) }
func (u *Uniforms) SetMat4(name string, v mgl32.Mat4) { u.Set(name, Mat4(v)) }
