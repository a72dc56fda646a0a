// Package translator turns WebGL2 (GLSL ES 3.00) sources into desktop GLSL
// 4.10 using the ANGLE translator compiled to wasm.
package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glrender/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// Get returns the process-wide translator, creating it on first use.
func Get() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Translator adapts the shared ANGLE translator for renderer.ShaderES.
type Translator struct {
	st *gst.ShaderTranslator
}

// New returns a Translator backed by the process-wide instance.
func New() (*Translator, error) {
	st, err := Get()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	return &Translator{st: st}, nil
}

// Translate converts one stage. The returned map goes from the names used in
// source to the names the translated code declares.
func (t *Translator) Translate(source string, stage shader.Stage) (string, map[string]string, error) {
	kind := "vertex"
	if stage == shader.Fragment {
		kind = "fragment"
	}
	out, err := t.st.TranslateShader(source, kind, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
