package renderer

import (
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/renderer/components"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
)

/**
 * @brief The renderer frontend: owns the backend, the single shader program
 * and the scene. Every method runs on the render thread.
 */
type Renderer struct {
	backend    RendererBackend
	program    *Program
	scene      *Scene
	clearColor metadata.Colour
}

func New(backend RendererBackend, camera *components.Camera, clearColor metadata.Colour) *Renderer {
	return &Renderer{
		backend:    backend,
		scene:      NewScene(camera),
		clearColor: clearColor,
	}
}

// Initialize sets up backend state and links the program.
func (r *Renderer) Initialize(config metadata.BackendConfig, shader *metadata.ShaderSource) error {
	if err := r.backend.Initialize(config); err != nil {
		return err
	}
	program, err := NewProgram(r.backend, shader)
	if err != nil {
		return err
	}
	r.program = program
	core.LogInfo("Renderer initialized.")
	return nil
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) Scene() *Scene {
	return r.scene
}

func (r *Renderer) Program() *Program {
	return r.program
}

func (r *Renderer) OnResize(width, height uint32) {
	r.backend.Resized(width, height)
	r.scene.Camera.SetViewport(width, height)
}

// DrawFrame clears the framebuffer and draws the scene. Presenting is the window's job.
func (r *Renderer) DrawFrame() {
	r.backend.Clear(r.clearColor)
	r.backend.UseProgram(r.program.Handle)
	r.scene.Draw(r.backend, &r.program.Bindings)
}

// ReloadShader swaps in a program built from source, keeping the old one on error.
func (r *Renderer) ReloadShader(source *metadata.ShaderSource) error {
	return r.program.Reload(r.backend, source)
}

func (r *Renderer) Shutdown() error {
	r.scene.Release(r.backend)
	if r.program != nil {
		r.program.Destroy(r.backend)
	}
	return r.backend.Shutdown()
}
