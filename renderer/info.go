package renderer

import "github.com/richinsley/glrender/glapi"

// Version is the GL version reported by the context.
type Version struct {
	String string
	Major  int
	Minor  int
}

// ContextInformation is a snapshot of the context's identification strings.
type ContextInformation struct {
	Version                Version
	Renderer               string
	Vendor                 string
	ShadingLanguageVersion string
	Extensions             []string
}

// Information queries the live context. Nothing is cached.
func (r *Renderer) Information() ContextInformation {
	if !r.dev.Alive() {
		return ContextInformation{}
	}
	return ContextInformation{
		Version: Version{
			String: r.dev.GetString(glapi.Version),
			Major:  int(r.dev.GetIntegerv(glapi.MajorVersion)),
			Minor:  int(r.dev.GetIntegerv(glapi.MinorVersion)),
		},
		Renderer:               r.dev.GetString(glapi.Renderer),
		Vendor:                 r.dev.GetString(glapi.Vendor),
		ShadingLanguageVersion: r.dev.GetString(glapi.ShadingLanguageVersion),
		Extensions:             r.Extensions(),
	}
}

// Extensions returns every extension name the context reports, in index
// order.
func (r *Renderer) Extensions() []string {
	if !r.dev.Alive() {
		return nil
	}
	count := int(r.dev.GetIntegerv(glapi.NumExtensions))
	if count <= 0 {
		return nil
	}
	extensions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		extensions = append(extensions, r.dev.GetStringi(glapi.Extensions, uint32(i)))
	}
	return extensions
}
