package metadata

import "fmt"

// Names of the attributes and uniforms of the fixed vertex/fragment program.
const (
	ATTRIB_COORD  = "v_coord"
	ATTRIB_NORMAL = "v_normal"
	ATTRIB_COLOUR = "v_color"

	UNIFORM_MODEL_ORIG      = "m_orig"
	UNIFORM_MODEL           = "m"
	UNIFORM_VIEW            = "v"
	UNIFORM_PROJECTION      = "p"
	UNIFORM_MODEL_INV_TRANS = "m_inv_transp"
)

// AttribLocation is a vertex attribute slot; -1 means the program does not use it.
type AttribLocation int32

// UniformLocation is a uniform slot; -1 means the program does not use it.
type UniformLocation int32

const INVALID_LOCATION = -1

func (l AttribLocation) Valid() bool  { return l != INVALID_LOCATION }
func (l UniformLocation) Valid() bool { return l != INVALID_LOCATION }

/**
 * @brief The shader's attribute and uniform slots, resolved by name once after
 * the program is linked and reused for every draw.
 */
type ShaderBindings struct {
	Coord  AttribLocation
	Normal AttribLocation
	Colour AttribLocation

	ModelOrig      UniformLocation
	Model          UniformLocation
	View           UniformLocation
	Projection     UniformLocation
	ModelInvTransp UniformLocation
}

// ShaderSource is the GLSL text of the vertex and fragment stages of one program.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}

// ShaderStage identifies a programmable stage.
type ShaderStage uint8

const (
	SHADER_STAGE_VERTEX ShaderStage = iota
	SHADER_STAGE_FRAGMENT
)

func (s ShaderStage) String() string {
	switch s {
	case SHADER_STAGE_VERTEX:
		return "vertex"
	case SHADER_STAGE_FRAGMENT:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// FileSuffix is the on-disk suffix of the stage, appended to the shader name.
func (s ShaderStage) FileSuffix() string {
	if s == SHADER_STAGE_FRAGMENT {
		return ".f.glsl"
	}
	return ".v.glsl"
}
