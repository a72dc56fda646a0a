package shader

import (
	"strings"
	"unicode/utf8"

	"github.com/richinsley/glrender/glapi"
)

// infoLogSize caps how much of a compile or link log is read back.
const infoLogSize = 512

// Program is a linked vertex+fragment program.
type Program struct {
	dev   *glapi.Device
	id    uint32
	names map[string]string
}

// Option configures Compile.
type Option func(*Program)

// WithUniformNames maps the uniform names callers use to the names present in
// the compiled source. Translated sources rename their uniforms.
func WithUniformNames(names map[string]string) Option {
	return func(p *Program) {
		p.names = names
	}
}

// Compile compiles and links a program from vertex and fragment source.
// The fragment stage is never compiled when the vertex stage fails. Every
// intermediate object is deleted before Compile returns.
func Compile(dev *glapi.Device, vertex, fragment string, opts ...Option) (*Program, error) {
	if err := dev.Check(); err != nil {
		return nil, err
	}

	vs, err := compileStage(dev, vertex, Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := compileStage(dev, fragment, Fragment)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, err
	}
	// shaders are only flagged for deletion while attached; the program keeps them alive
	defer dev.DeleteShader(vs)
	defer dev.DeleteShader(fs)

	id := dev.CreateProgram()
	dev.AttachShader(id, vs)
	dev.AttachShader(id, fs)
	dev.LinkProgram(id)

	if dev.GetProgramiv(id, glapi.LinkStatus) != glapi.True {
		log := dev.GetProgramInfoLog(id, infoLogSize)
		dev.DeleteProgram(id)
		if !utf8.Valid(log) {
			return nil, &CompileError{Kind: ErrInvalidLinkLog}
		}
		return nil, &CompileError{Kind: ErrLink, Log: string(log)}
	}

	p := &Program{dev: dev, id: id}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func compileStage(dev *glapi.Device, source string, stage Stage) (uint32, error) {
	if strings.IndexByte(source, 0) >= 0 {
		return 0, &CompileError{Kind: ErrInvalidShaderCode, Stage: stage}
	}

	xtype := uint32(glapi.VertexShader)
	if stage == Fragment {
		xtype = glapi.FragmentShader
	}
	id := dev.CreateShader(xtype)
	dev.ShaderSource(id, source)
	dev.CompileShader(id)

	if dev.GetShaderiv(id, glapi.CompileStatus) != glapi.True {
		log := dev.GetShaderInfoLog(id, infoLogSize)
		dev.DeleteShader(id)
		if !utf8.Valid(log) {
			return 0, &CompileError{Kind: ErrInvalidShaderLog, Stage: stage}
		}
		return 0, &CompileError{Kind: ErrCompile, Stage: stage, Log: string(log)}
	}
	return id, nil
}

// ID returns the native program handle.
func (p *Program) ID() uint32 { return p.id }

// With makes p the current program, calls fn, and restores no program. The
// program is restored even if fn panics. u must not be kept past fn.
func (p *Program) With(fn func(u *Uniforms)) error {
	if err := p.dev.Check(); err != nil {
		return err
	}
	if p.id == 0 {
		return ErrDeleted
	}
	u := &Uniforms{program: p}
	p.dev.UseProgram(p.id)
	defer func() {
		u.program = nil
		if p.dev.Alive() {
			p.dev.UseProgram(0)
		}
	}()
	fn(u)
	return nil
}

// Delete releases the program. It is safe to call more than once and after
// the context has been closed.
func (p *Program) Delete() {
	if p.id == 0 || !p.dev.Alive() {
		p.id = 0
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
