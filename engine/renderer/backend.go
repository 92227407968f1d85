package renderer

import (
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

/**
 * @brief The graphics calls the renderer needs. Every method must be called on
 * the thread that owns the graphics context.
 */
type RendererBackend interface {
	Initialize(config metadata.BackendConfig) error
	Shutdown() error
	Resized(width, height uint32)
	Clear(colour metadata.Colour)

	CreateProgram(source *metadata.ShaderSource) (uint32, error)
	DestroyProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) metadata.AttribLocation
	UniformLocation(program uint32, name string) metadata.UniformLocation

	// CreateBuffer allocates a buffer and fills it. data is one of
	// []math.Vec4, []math.Vec3 or []uint16.
	CreateBuffer(target metadata.BufferTarget, usage metadata.BufferUsage, data interface{}) uint32
	// UpdateBuffer overwrites the start of an existing buffer without reallocating.
	UpdateBuffer(target metadata.BufferTarget, buffer uint32, data interface{})
	DeleteBuffers(buffers ...uint32)

	BindAttribute(location metadata.AttribLocation, buffer uint32, components int32)
	SetUniformMat4(location metadata.UniformLocation, m math.Mat4)
	SetUniformMat3(location metadata.UniformLocation, m math.Mat3)
	DrawElements(elements uint32, count int32)
}
