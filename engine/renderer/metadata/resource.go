package metadata

type ResourceType int

/** @brief Resource types known to the asset manager. */
const (
	/** @brief Not an asset. */
	ResourceTypeNone ResourceType = iota
	/** @brief GLSL source of one program stage. */
	ResourceTypeShader
	/** @brief Triangle mesh (Wavefront OBJ). */
	ResourceTypeMesh
	/** @brief Emitter configuration (JSON, YAML or TOML). */
	ResourceTypeConfig
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeConfig:
		return "config"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data: *Geometry, *ShaderSource or []math.Vec3 emitter placements. */
	Data interface{}
}
