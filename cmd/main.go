package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glrender/app"
	"github.com/richinsley/glrender/geometry"
	"github.com/richinsley/glrender/graphics"
	"github.com/richinsley/glrender/options"
	"github.com/richinsley/glrender/renderer"
	"github.com/richinsley/glrender/shader"
	"github.com/richinsley/glrender/translator"
)

type scene struct {
	program  *shader.Program
	triangle *geometry.VertexArray
	tint     mgl32.Vec3
}

func newScene(r *renderer.Renderer, essl bool) (*scene, error) {
	var program *shader.Program
	var err error
	if essl {
		tr, terr := translator.New()
		if terr != nil {
			return nil, terr
		}
		program, err = r.ShaderES(tr, shader.VertexSource(true), shader.FragmentSource(true))
	} else {
		program, err = r.Shader(shader.VertexSource(false), shader.FragmentSource(false))
	}
	if err != nil {
		return nil, err
	}

	va, err := r.VertexArray()
	if err != nil {
		program.Delete()
		return nil, err
	}
	if err := fillTriangle(va); err != nil {
		va.Delete()
		program.Delete()
		return nil, err
	}

	return &scene{program: program, triangle: va, tint: mgl32.Vec3{1, 1, 1}}, nil
}

// fillTriangle uploads positions to slot 0 and colors to slot 1, matching the
// attribute locations of the built-in shaders.
func fillTriangle(va *geometry.VertexArray) error {
	positions, err := va.AddBuffer()
	if err != nil {
		return err
	}
	colors, err := va.AddBuffer()
	if err != nil {
		return err
	}
	if err := va.SetBuffer(positions, geometry.Vec3s{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0, 0.5, 0},
	}); err != nil {
		return err
	}
	if err := va.SetBuffer(colors, geometry.Vec3s{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}); err != nil {
		return err
	}
	return va.SetIndices([]int32{0, 1, 2})
}

func (s *scene) handle(a *app.App, events []graphics.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case graphics.KeyEvent:
			if e.Key == graphics.KeyEscape && e.Action == graphics.Press {
				a.RequestClose()
			}
		case graphics.MouseButtonEvent:
			if e.Action == graphics.Press {
				s.tint = mgl32.Vec3{0.5, 0.5, 0.5}
			} else if e.Action == graphics.Release {
				s.tint = mgl32.Vec3{1, 1, 1}
			}
		case graphics.FramebufferSizeEvent:
			log.Printf("Framebuffer resized to %dx%d", e.Width, e.Height)
		}
	}
}

func (s *scene) draw(r *renderer.Renderer) error {
	r.Clear(mgl32.Vec3{0.1, 0.1, 0.12})
	transform := mgl32.HomogRotate3DZ(float32(r.Time()))
	var drawErr error
	err := s.program.With(func(u *shader.Uniforms) {
		u.SetMat4("u_transform", transform)
		u.SetVec3("u_tint", s.tint)
		drawErr = s.triangle.Render()
	})
	if err != nil {
		return err
	}
	return drawErr
}

func (s *scene) release() {
	s.triangle.Delete()
	s.program.Delete()
}

func printInformation(r *renderer.Renderer) {
	info := r.Information()
	fmt.Printf("Version:  %s (%d.%d)\n", info.Version.String, info.Version.Major, info.Version.Minor)
	fmt.Printf("Renderer: %s\n", info.Renderer)
	fmt.Printf("Vendor:   %s\n", info.Vendor)
	fmt.Printf("GLSL:     %s\n", info.ShadingLanguageVersion)
	extensions := r.Extensions()
	fmt.Printf("Extensions (%d):\n", len(extensions))
	for _, ext := range extensions {
		fmt.Printf("  %s\n", ext)
	}
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	a, err := app.New(opts)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	if *opts.Info {
		printInformation(a.Renderer())
		if err := a.Shutdown(); err != nil {
			log.Fatalf("Shutdown failed: %v", err)
		}
		return
	}

	var current *scene
	err = app.Run(a,
		func(r *renderer.Renderer) *scene {
			s, err := newScene(r, *opts.ESSL)
			if err != nil {
				log.Fatalf("Failed to initialize scene: %v", err)
			}
			current = s
			return s
		},
		func(s **scene, events []graphics.Event, r *renderer.Renderer) {
			(*s).handle(a, events)
			if err := (*s).draw(r); err != nil {
				log.Printf("Draw failed: %v", err)
				a.RequestClose()
			}
		})
	if err != nil {
		log.Printf("Render loop stopped: %v", err)
	}
	if current != nil {
		current.release()
	}

	if err := a.Shutdown(); err != nil {
		log.Fatalf("Recording failed: %v", err)
	}
	if *opts.Record != "" {
		log.Printf("Successfully rendered to %s", *opts.Record)
	}
}
