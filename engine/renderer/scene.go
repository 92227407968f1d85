package renderer

import (
	"github.com/spaghettifunk/lumina/engine/renderer/components"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

/**
 * @brief A flat, ordered list of renderables seen through one camera.
 * Objects are only ever appended, and are drawn in insertion order.
 */
type Scene struct {
	Camera  *components.Camera
	objects []Renderable
}

func NewScene(camera *components.Camera) *Scene {
	return &Scene{Camera: camera}
}

func (s *Scene) Add(r Renderable) {
	s.objects = append(s.objects, r)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

func (s *Scene) Objects() []Renderable {
	return s.objects
}

/**
 * @brief Draws one frame: model, view and projection are computed once, view
 * and projection are set as shared uniforms, then every object is uploaded if
 * needed, given its pending live update and drawn with the shared model.
 */
func (s *Scene) Draw(backend RendererBackend, bindings *metadata.ShaderBindings) {
	model := s.Camera.Model()
	backend.SetUniformMat4(bindings.View, s.Camera.View())
	backend.SetUniformMat4(bindings.Projection, s.Camera.Projection())

	for _, r := range s.objects {
		if !r.Uploaded() {
			r.Upload(backend)
		}
		r.PollUpdate(backend)
		r.Draw(backend, model, bindings)
	}
}

// Release frees the GPU buffers of every object. Render thread only.
func (s *Scene) Release(backend RendererBackend) {
	for _, r := range s.objects {
		r.Release(backend)
	}
}
