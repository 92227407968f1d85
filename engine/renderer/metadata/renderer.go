package metadata

type BufferTarget uint8

const (
	BUFFER_TARGET_ARRAY BufferTarget = iota
	BUFFER_TARGET_ELEMENT_ARRAY
)

type BufferUsage uint8

const (
	// Written once, drawn many times.
	BUFFER_USAGE_STATIC BufferUsage = iota
	// Rewritten frequently (live colours).
	BUFFER_USAGE_DYNAMIC
)

/**
 * @brief GPU buffer names owned by one renderable. Zero means "not allocated".
 */
type BufferHandles struct {
	Vertices uint32
	Normals  uint32
	Colours  uint32
	Elements uint32
}

// Uploaded reports whether the buffers needed to draw exist.
func (h BufferHandles) Uploaded() bool {
	return h.Vertices != 0 && h.Normals != 0 && h.Elements != 0
}

// All returns every non-zero handle.
func (h BufferHandles) All() []uint32 {
	out := make([]uint32, 0, 4)
	for _, b := range []uint32{h.Vertices, h.Normals, h.Colours, h.Elements} {
		if b != 0 {
			out = append(out, b)
		}
	}
	return out
}

// BackendConfig carries the fixed pipeline state set up at initialization.
type BackendConfig struct {
	Width  uint32
	Height uint32
	// Alpha blending with SRC_ALPHA / ONE_MINUS_SRC_ALPHA.
	Blend     bool
	DepthTest bool
}
