// Package glapitest provides a recording glapi.API for tests that run without
// a GPU. It tracks object lifetimes, bindings, buffer contents and draw calls
// closely enough to check call ordering and uploaded data.
package glapitest

import (
	"strings"

	"github.com/richinsley/glrender/glapi"
)

// ShaderObject is a shader created through the fake.
type ShaderObject struct {
	Type     uint32
	Source   string
	Compiled bool
	Log      []byte
	Deleted  bool
}

// ProgramObject is a program created through the fake.
type ProgramObject struct {
	Shaders []uint32
	Linked  bool
	Log     []byte
	Deleted bool
}

// Attrib is the recorded configuration of one vertex attribute location.
type Attrib struct {
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

// VertexArrayObject is a VAO created through the fake.
type VertexArrayObject struct {
	ElementBuffer uint32
	Attribs       map[uint32]*Attrib
	Deleted       bool
}

// BufferObject is a buffer created through the fake.
type BufferObject struct {
	Floats  []float32
	Ints    []int32
	Bytes   int
	Usage   uint32
	Deleted bool
}

// Draw is one recorded DrawElements call.
type Draw struct {
	Mode          uint32
	Count         int32
	Type          uint32
	Offset        int
	VertexArray   uint32
	ElementBuffer uint32
	Program       uint32
}

// UniformWrite is one recorded uniform update.
type UniformWrite struct {
	Program  uint32
	Location int32
	Values   []float32
}

// API is a fake glapi.API. The zero value is not usable; call New.
type API struct {
	// Compile decides the outcome of CompileShader. A nil Compile accepts
	// every source that does not contain "#error".
	Compile func(xtype uint32, source string) (log []byte, ok bool)
	// Link decides the outcome of LinkProgram from the attached shaders. A nil
	// Link accepts every program.
	Link func(shaders []*ShaderObject) (log []byte, ok bool)

	Strings    map[uint32]string
	Integers   map[uint32]int32
	Extensions []string
	// Uniforms maps uniform names to locations for every program.
	Uniforms map[string]int32

	Shaders      map[uint32]*ShaderObject
	Programs     map[uint32]*ProgramObject
	VertexArrays map[uint32]*VertexArrayObject
	Buffers      map[uint32]*BufferObject

	CurrentProgram     uint32
	BoundVertexArray   uint32
	BoundArrayBuffer   uint32
	BoundElementBuffer uint32

	ClearColorValue [4]float32
	ClearMask       uint32
	ViewportValue   [4]int32

	Calls         []string
	Draws         []Draw
	UniformWrites []UniformWrite

	nextID uint32
}

var _ glapi.API = (*API)(nil)

// New returns a fake that reports an OpenGL 4.1 context.
func New() *API {
	return &API{
		Strings: map[uint32]string{
			glapi.Version:                "4.1 Fake",
			glapi.Renderer:               "glapitest",
			glapi.Vendor:                 "glrender",
			glapi.ShadingLanguageVersion: "4.10",
		},
		Integers: map[uint32]int32{
			glapi.MajorVersion: 4,
			glapi.MinorVersion: 1,
		},
		Uniforms:     map[string]int32{},
		Shaders:      map[uint32]*ShaderObject{},
		Programs:     map[uint32]*ProgramObject{},
		VertexArrays: map[uint32]*VertexArrayObject{},
		Buffers:      map[uint32]*BufferObject{},
	}
}

// Loader returns a glapi.Loader that hands out f.
func (f *API) Loader() glapi.Loader {
	return func(glapi.ProcAddressFunc) (glapi.API, error) { return f, nil }
}

// CallCount returns how many times the named entry point was called.
func (f *API) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// LiveShaders returns the number of shader objects not yet deleted.
func (f *API) LiveShaders() int {
	n := 0
	for _, s := range f.Shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

func (f *API) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *API) record(name string) {
	f.Calls = append(f.Calls, name)
}

func (f *API) CreateShader(xtype uint32) uint32 {
	f.record("CreateShader")
	id := f.id()
	f.Shaders[id] = &ShaderObject{Type: xtype}
	return id
}

func (f *API) ShaderSource(shader uint32, source string) {
	f.record("ShaderSource")
	if s, ok := f.Shaders[shader]; ok {
		s.Source = source
	}
}

func (f *API) CompileShader(shader uint32) {
	f.record("CompileShader")
	s, ok := f.Shaders[shader]
	if !ok {
		return
	}
	if f.Compile != nil {
		s.Log, s.Compiled = f.Compile(s.Type, s.Source)
		return
	}
	if strings.Contains(s.Source, "#error") {
		s.Log, s.Compiled = []byte("0:1(1): error: #error directive"), false
		return
	}
	s.Log, s.Compiled = nil, true
}

func (f *API) GetShaderiv(shader uint32, pname uint32) int32 {
	s, ok := f.Shaders[shader]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.CompileStatus:
		if s.Compiled {
			return glapi.True
		}
		return glapi.False
	case glapi.InfoLogLength:
		if len(s.Log) == 0 {
			return 0
		}
		return int32(len(s.Log) + 1)
	}
	return 0
}

func (f *API) GetShaderInfoLog(shader uint32, bufSize int32) []byte {
	s, ok := f.Shaders[shader]
	if !ok {
		return nil
	}
	return truncate(s.Log, bufSize)
}

func (f *API) DeleteShader(shader uint32) {
	f.record("DeleteShader")
	if s, ok := f.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (f *API) CreateProgram() uint32 {
	f.record("CreateProgram")
	id := f.id()
	f.Programs[id] = &ProgramObject{}
	return id
}

func (f *API) AttachShader(program, shader uint32) {
	f.record("AttachShader")
	if p, ok := f.Programs[program]; ok {
		p.Shaders = append(p.Shaders, shader)
	}
}

func (f *API) LinkProgram(program uint32) {
	f.record("LinkProgram")
	p, ok := f.Programs[program]
	if !ok {
		return
	}
	if f.Link == nil {
		p.Log, p.Linked = nil, true
		return
	}
	shaders := make([]*ShaderObject, 0, len(p.Shaders))
	for _, id := range p.Shaders {
		shaders = append(shaders, f.Shaders[id])
	}
	p.Log, p.Linked = f.Link(shaders)
}

func (f *API) GetProgramiv(program uint32, pname uint32) int32 {
	p, ok := f.Programs[program]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.LinkStatus:
		if p.Linked {
			return glapi.True
		}
		return glapi.False
	case glapi.InfoLogLength:
		if len(p.Log) == 0 {
			return 0
		}
		return int32(len(p.Log) + 1)
	}
	return 0
}

func (f *API) GetProgramInfoLog(program uint32, bufSize int32) []byte {
	p, ok := f.Programs[program]
	if !ok {
		return nil
	}
	return truncate(p.Log, bufSize)
}

func (f *API) DeleteProgram(program uint32) {
	f.record("DeleteProgram")
	if p, ok := f.Programs[program]; ok {
		p.Deleted = true
	}
}

func (f *API) UseProgram(program uint32) {
	f.record("UseProgram")
	f.CurrentProgram = program
}

func (f *API) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation")
	if loc, ok := f.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *API) uniform(location int32, values ...float32) {
	f.UniformWrites = append(f.UniformWrites, UniformWrite{
		Program:  f.CurrentProgram,
		Location: location,
		Values:   values,
	})
}

func (f *API) Uniform1f(location int32, v0 float32) {
	f.record("Uniform1f")
	f.uniform(location, v0)
}

func (f *API) Uniform2f(location int32, v0, v1 float32) {
	f.record("Uniform2f")
	f.uniform(location, v0, v1)
}

func (f *API) Uniform3f(location int32, v0, v1, v2 float32) {
	f.record("Uniform3f")
	f.uniform(location, v0, v1, v2)
}

func (f *API) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.record("Uniform4f")
	f.uniform(location, v0, v1, v2, v3)
}

func (f *API) UniformMatrix4fv(location int32, transpose bool, value *[16]float32) {
	f.record("UniformMatrix4fv")
	f.uniform(location, value[:]...)
}

func (f *API) GenVertexArray() uint32 {
	f.record("GenVertexArray")
	id := f.id()
	f.VertexArrays[id] = &VertexArrayObject{Attribs: map[uint32]*Attrib{}}
	return id
}

func (f *API) DeleteVertexArray(array uint32) {
	f.record("DeleteVertexArray")
	if v, ok := f.VertexArrays[array]; ok {
		v.Deleted = true
	}
}

func (f *API) BindVertexArray(array uint32) {
	f.record("BindVertexArray")
	f.BoundVertexArray = array
	f.BoundElementBuffer = 0
	if v, ok := f.VertexArrays[array]; ok {
		f.BoundElementBuffer = v.ElementBuffer
	}
}

func (f *API) GenBuffer() uint32 {
	f.record("GenBuffer")
	id := f.id()
	f.Buffers[id] = &BufferObject{}
	return id
}

func (f *API) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer")
	if b, ok := f.Buffers[buffer]; ok {
		b.Deleted = true
	}
}

func (f *API) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer")
	switch target {
	case glapi.ArrayBuffer:
		f.BoundArrayBuffer = buffer
	case glapi.ElementArrayBuffer:
		f.BoundElementBuffer = buffer
		// element buffer bindings are VAO state
		if v, ok := f.VertexArrays[f.BoundVertexArray]; ok && buffer != 0 {
			v.ElementBuffer = buffer
		}
	}
}

func (f *API) bound(target uint32) *BufferObject {
	switch target {
	case glapi.ArrayBuffer:
		return f.Buffers[f.BoundArrayBuffer]
	case glapi.ElementArrayBuffer:
		return f.Buffers[f.BoundElementBuffer]
	}
	return nil
}

func (f *API) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	f.record("BufferData")
	if b := f.bound(target); b != nil {
		b.Floats = append([]float32(nil), data...)
		b.Ints = nil
		b.Bytes = len(data) * 4
		b.Usage = usage
	}
}

func (f *API) BufferDataInt32(target uint32, data []int32, usage uint32) {
	f.record("BufferData")
	if b := f.bound(target); b != nil {
		b.Ints = append([]int32(nil), data...)
		b.Floats = nil
		b.Bytes = len(data) * 4
		b.Usage = usage
	}
}

func (f *API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.record("VertexAttribPointer")
	v, ok := f.VertexArrays[f.BoundVertexArray]
	if !ok {
		return
	}
	a := v.Attribs[index]
	if a == nil {
		a = &Attrib{}
		v.Attribs[index] = a
	}
	a.Buffer = f.BoundArrayBuffer
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, xtype, normalized, stride, offset
}

func (f *API) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray")
	v, ok := f.VertexArrays[f.BoundVertexArray]
	if !ok {
		return
	}
	a := v.Attribs[index]
	if a == nil {
		a = &Attrib{}
		v.Attribs[index] = a
	}
	a.Enabled = true
}

func (f *API) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	f.record("DrawElements")
	f.Draws = append(f.Draws, Draw{
		Mode:          mode,
		Count:         count,
		Type:          xtype,
		Offset:        offset,
		VertexArray:   f.BoundVertexArray,
		ElementBuffer: f.BoundElementBuffer,
		Program:       f.CurrentProgram,
	})
}

func (f *API) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor")
	f.ClearColorValue = [4]float32{red, green, blue, alpha}
}

func (f *API) Clear(mask uint32) {
	f.record("Clear")
	f.ClearMask = mask
}

func (f *API) Viewport(x, y, width, height int32) {
	f.record("Viewport")
	f.ViewportValue = [4]int32{x, y, width, height}
}

// ReadPixels fills pixels with the clear color, one RGBA8 texel at a time.
func (f *API) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	f.record("ReadPixels")
	texel := [4]byte{}
	for i, c := range f.ClearColorValue {
		texel[i] = byte(c * 255)
	}
	for i := range pixels {
		pixels[i] = texel[i%4]
	}
}

func (f *API) GetString(name uint32) string {
	return f.Strings[name]
}

func (f *API) GetStringi(name, index uint32) string {
	if name != glapi.Extensions || int(index) >= len(f.Extensions) {
		return ""
	}
	return f.Extensions[index]
}

func (f *API) GetIntegerv(pname uint32) int32 {
	if pname == glapi.NumExtensions {
		return int32(len(f.Extensions))
	}
	return f.Integers[pname]
}

func truncate(log []byte, bufSize int32) []byte {
	if bufSize <= 0 {
		return nil
	}
	if n := int(bufSize) - 1; len(log) > n {
		log = log[:n]
	}
	return append([]byte(nil), log...)
}
