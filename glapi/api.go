// Package glapi is the single choke point between this module and the native
// OpenGL entry points. Nothing outside this package calls into go-gl directly.
package glapi

import "unsafe"

// Enumerants used by this module. Values are the OpenGL tokens.
const (
	False = 0
	True  = 1

	DepthBufferBit = 0x00000100
	ColorBufferBit = 0x00004000

	Triangles = 0x0004

	UnsignedByte = 0x1401
	UnsignedInt  = 0x1405
	Float        = 0x1406
	RGBA         = 0x1908

	Vendor                 = 0x1F00
	Renderer               = 0x1F01
	Version                = 0x1F02
	Extensions             = 0x1F03
	ShadingLanguageVersion = 0x8B8C
	MajorVersion           = 0x821B
	MinorVersion           = 0x821C
	NumExtensions          = 0x821D

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84
)

// API is the subset of OpenGL used by this module. Every method operates on
// the context current on the calling thread.
type API interface {
	CreateShader(xtype uint32) uint32
	// ShaderSource replaces the source of shader. The source must not contain
	// NUL bytes.
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	// GetShaderInfoLog returns at most bufSize-1 bytes of the info log.
	GetShaderInfoLog(shader uint32, bufSize int32) []byte
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	// GetProgramInfoLog returns at most bufSize-1 bytes of the info log.
	GetProgramInfoLog(program uint32, bufSize int32) []byte
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, transpose bool, value *[16]float32)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	// BufferDataFloat32 uploads len(data)*4 bytes to the buffer bound to target.
	BufferDataFloat32(target uint32, data []float32, usage uint32)
	// BufferDataInt32 uploads len(data)*4 bytes to the buffer bound to target.
	BufferDataInt32(target uint32, data []int32, usage uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)

	ClearColor(red, green, blue, alpha float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)

	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetIntegerv(pname uint32) int32
}

// ProcAddressFunc resolves a GL entry point by name.
type ProcAddressFunc func(name string) unsafe.Pointer

// Loader resolves all entry points of API through a window's resolver.
type Loader func(resolve ProcAddressFunc) (API, error)
