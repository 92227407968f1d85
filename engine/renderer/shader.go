package renderer

import (
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// Program is a linked shader program plus its resolved bindings.
type Program struct {
	Name     string
	Handle   uint32
	Bindings metadata.ShaderBindings
}

/**
 * @brief Compiles and links source, makes it current and resolves every
 * attribute and uniform by name. A name the program does not use is logged
 * and left at -1; the backend skips such slots.
 */
func NewProgram(backend RendererBackend, source *metadata.ShaderSource) (*Program, error) {
	handle, err := backend.CreateProgram(source)
	if err != nil {
		return nil, err
	}
	backend.UseProgram(handle)
	p := &Program{Name: source.Name, Handle: handle}
	p.Bindings = lookupBindings(backend, handle)
	core.LogInfo("shader program %q linked (handle %d)", source.Name, handle)
	return p, nil
}

func lookupBindings(backend RendererBackend, program uint32) metadata.ShaderBindings {
	attrib := func(name string) metadata.AttribLocation {
		loc := backend.AttribLocation(program, name)
		if !loc.Valid() {
			core.LogError("%s attrib not found", name)
		}
		return loc
	}
	uniform := func(name string) metadata.UniformLocation {
		loc := backend.UniformLocation(program, name)
		if !loc.Valid() {
			core.LogError("%s uniform not found", name)
		}
		return loc
	}
	return metadata.ShaderBindings{
		Coord:          attrib(metadata.ATTRIB_COORD),
		Normal:         attrib(metadata.ATTRIB_NORMAL),
		Colour:         attrib(metadata.ATTRIB_COLOUR),
		ModelOrig:      uniform(metadata.UNIFORM_MODEL_ORIG),
		Model:          uniform(metadata.UNIFORM_MODEL),
		View:           uniform(metadata.UNIFORM_VIEW),
		Projection:     uniform(metadata.UNIFORM_PROJECTION),
		ModelInvTransp: uniform(metadata.UNIFORM_MODEL_INV_TRANS),
	}
}

/**
 * @brief Builds a new program from source and swaps it in. On failure the
 * current program stays active and the error is returned.
 */
func (p *Program) Reload(backend RendererBackend, source *metadata.ShaderSource) error {
	next, err := NewProgram(backend, source)
	if err != nil {
		backend.UseProgram(p.Handle)
		return err
	}
	backend.DestroyProgram(p.Handle)
	*p = *next
	return nil
}

func (p *Program) Destroy(backend RendererBackend) {
	if p.Handle != 0 {
		backend.DestroyProgram(p.Handle)
		p.Handle = 0
	}
}
