package shader

import (
	"errors"
	"fmt"
)

// Stage identifies the shader stage an error belongs to.
type Stage int

const (
	Vertex Stage = iota + 1
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "program"
}

// Error kinds returned by Compile. Match them with errors.Is.
var (
	// ErrInvalidShaderCode means the source could not be handed to the driver.
	ErrInvalidShaderCode = errors.New("invalid shader source")
	// ErrCompile means the driver rejected a stage.
	ErrCompile = errors.New("shader compilation failed")
	// ErrInvalidShaderLog means the compile log was not valid UTF-8.
	ErrInvalidShaderLog = errors.New("shader info log is not valid text")
	// ErrLink means the driver failed to link the program.
	ErrLink = errors.New("program link failed")
	// ErrInvalidLinkLog means the link log was not valid UTF-8.
	ErrInvalidLinkLog = errors.New("program info log is not valid text")
)

// ErrDeleted is returned when a deleted program is activated.
var ErrDeleted = errors.New("shader: program deleted")

// CompileError is the error returned by Compile.
type CompileError struct {
	Kind  error
	Stage Stage // zero for link errors
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("%s: %v: %s", e.Stage, e.Kind, e.Log)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
}

func (e *CompileError) Unwrap() error { return e.Kind }
