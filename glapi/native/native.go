// Package native implements glapi.API on top of the go-gl OpenGL 4.1 core
// bindings.
package native

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glrender/glapi"
)

// GL forwards every glapi.API call to the loaded go-gl entry points.
type GL struct{}

var _ glapi.API = GL{}

// Load resolves the OpenGL entry points through resolve. The context that
// resolve belongs to must be current on the calling thread.
func Load(resolve glapi.ProcAddressFunc) (glapi.API, error) {
	if err := gl.InitWithProcAddrFunc(resolve); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return GL{}, nil
}

func (GL) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (GL) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (GL) GetShaderInfoLog(shader uint32, bufSize int32) []byte {
	if bufSize <= 0 {
		return nil
	}
	buf := make([]byte, bufSize)
	var length int32
	gl.GetShaderInfoLog(shader, bufSize, &length, &buf[0])
	return buf[:length]
}

func (GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (GL) CreateProgram() uint32 { return gl.CreateProgram() }

func (GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (GL) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (GL) GetProgramInfoLog(program uint32, bufSize int32) []byte {
	if bufSize <= 0 {
		return nil
	}
	buf := make([]byte, bufSize)
	var length int32
	gl.GetProgramInfoLog(program, bufSize, &length, &buf[0])
	return buf[:length]
}

func (GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GL) Uniform1f(location int32, v0 float32) { gl.Uniform1f(location, v0) }

func (GL) Uniform2f(location int32, v0, v1 float32) { gl.Uniform2f(location, v0, v1) }

func (GL) Uniform3f(location int32, v0, v1, v2 float32) { gl.Uniform3f(location, v0, v1, v2) }

func (GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (GL) UniformMatrix4fv(location int32, transpose bool, value *[16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &value[0])
}

func (GL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (GL) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (GL) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (GL) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data)*int(unsafe.Sizeof(float32(0))), ptr, usage)
}

func (GL) BufferDataInt32(target uint32, data []int32, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data)*int(unsafe.Sizeof(int32(0))), ptr, usage)
}

func (GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (GL) ClearColor(red, green, blue, alpha float32) { gl.ClearColor(red, green, blue, alpha) }

func (GL) Clear(mask uint32) { gl.Clear(mask) }

func (GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	gl.ReadPixels(x, y, width, height, format, xtype, gl.Ptr(pixels))
}

func (GL) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (GL) GetStringi(name, index uint32) string {
	s := gl.GetStringi(name, index)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (GL) GetIntegerv(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}
