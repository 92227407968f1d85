package renderer

import (
	"github.com/spaghettifunk/lumina/engine/containers"
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

/**
 * @brief Anything the scene can upload and draw. Every method runs on the
 * render thread.
 */
type Renderable interface {
	// Uploaded reports whether GPU buffers exist for the object.
	Uploaded() bool
	// Upload allocates GPU buffers for the object's geometry.
	Upload(backend RendererBackend)
	// PollUpdate applies at most one pending live update without blocking.
	// It reports whether the colours changed.
	PollUpdate(backend RendererBackend) bool
	// RefreshColours re-sends only the colour array to the existing buffer.
	RefreshColours(backend RendererBackend)
	// Draw issues the object's draw call under the shared model matrix.
	Draw(backend RendererBackend, model math.Mat4, bindings *metadata.ShaderBindings)
	// Release frees the object's GPU buffers.
	Release(backend RendererBackend)
}

// ColourMailbox carries live colour updates from the network to one mesh.
type ColourMailbox = containers.Mailbox[metadata.Colour]

/**
 * @brief A static triangle mesh with a live colour. The geometry never
 * changes after construction; only the colour array is rewritten when an
 * update arrives.
 */
type Mesh struct {
	Name string
	/** @brief Object-to-world placement, composed after the shared model matrix. */
	Transform math.Transform

	geometry metadata.Geometry
	handles  metadata.BufferHandles
	mailbox  *ColourMailbox
	// Alpha given to every live update.
	updateAlpha float32
}

/**
 * @brief Creates a mesh over geometry. mailbox may be nil for objects that
 * are never updated live.
 */
func NewMesh(name string, geometry metadata.Geometry, mailbox *ColourMailbox, updateAlpha float32) *Mesh {
	return &Mesh{
		Name:        name,
		Transform:   math.NewTransform(),
		geometry:    geometry,
		mailbox:     mailbox,
		updateAlpha: updateAlpha,
	}
}

func (m *Mesh) Geometry() *metadata.Geometry {
	return &m.geometry
}

func (m *Mesh) Handles() metadata.BufferHandles {
	return m.handles
}

func (m *Mesh) Uploaded() bool {
	return m.handles.Uploaded()
}

/**
 * @brief Uploads positions, colours, normals and indices. Calling Upload on an
 * already uploaded mesh first releases the old buffers, so handles never leak.
 */
func (m *Mesh) Upload(backend RendererBackend) {
	if m.handles != (metadata.BufferHandles{}) {
		core.LogDebug("mesh %q re-uploaded, releasing previous buffers", m.Name)
		m.Release(backend)
	}
	g := &m.geometry
	if len(g.Positions) > 0 {
		m.handles.Vertices = backend.CreateBuffer(metadata.BUFFER_TARGET_ARRAY, metadata.BUFFER_USAGE_STATIC, g.Positions)
	}
	if len(g.Colours) > 0 {
		m.handles.Colours = backend.CreateBuffer(metadata.BUFFER_TARGET_ARRAY, metadata.BUFFER_USAGE_DYNAMIC, g.Colours)
	}
	if len(g.Normals) > 0 {
		m.handles.Normals = backend.CreateBuffer(metadata.BUFFER_TARGET_ARRAY, metadata.BUFFER_USAGE_STATIC, g.Normals)
	}
	if len(g.Elements) > 0 {
		m.handles.Elements = backend.CreateBuffer(metadata.BUFFER_TARGET_ELEMENT_ARRAY, metadata.BUFFER_USAGE_STATIC, g.Elements)
	}
}

func (m *Mesh) RefreshColours(backend RendererBackend) {
	if m.handles.Colours == 0 || len(m.geometry.Colours) == 0 {
		return
	}
	backend.UpdateBuffer(metadata.BUFFER_TARGET_ARRAY, m.handles.Colours, m.geometry.Colours)
}

/**
 * @brief Takes the pending colour, if any, and broadcasts it to every vertex.
 * With nothing pending the colours are left untouched.
 */
func (m *Mesh) PollUpdate(backend RendererBackend) bool {
	if m.mailbox == nil {
		return false
	}
	colour, ok := m.mailbox.Take()
	if !ok {
		return false
	}
	m.geometry.FillColour(colour.WithAlpha(m.updateAlpha))
	if m.Uploaded() {
		m.RefreshColours(backend)
	}
	return true
}

/**
 * @brief Draws the mesh. The final model matrix is the shared model composed
 * with the mesh's own transform; its inverse-transpose carries the normals.
 * Drawing a mesh that was never uploaded is a programming error and panics.
 */
func (m *Mesh) Draw(backend RendererBackend, model math.Mat4, bindings *metadata.ShaderBindings) {
	if !m.Uploaded() {
		panic(core.ErrNotUploaded)
	}

	backend.BindAttribute(bindings.Coord, m.handles.Vertices, 4)
	backend.BindAttribute(bindings.Normal, m.handles.Normals, 3)
	backend.BindAttribute(bindings.Colour, m.handles.Colours, 4)

	final := model.Mul(m.Transform.Model())
	invTransp := math.NewMat3FromMat4(final).TransInv()

	backend.SetUniformMat4(bindings.ModelOrig, final)
	backend.SetUniformMat4(bindings.Model, final)
	backend.SetUniformMat3(bindings.ModelInvTransp, invTransp)

	backend.DrawElements(m.handles.Elements, int32(len(m.geometry.Elements)))
}

// Release deletes every buffer the mesh owns, colours included.
func (m *Mesh) Release(backend RendererBackend) {
	if handles := m.handles.All(); len(handles) > 0 {
		backend.DeleteBuffers(handles...)
	}
	m.handles = metadata.BufferHandles{}
}
