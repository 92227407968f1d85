package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A 4x4 matrix stored column-major: Data[col*4+row].
 * This is the layout OpenGL expects, so Flat() can be uploaded as-is.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief A 3x3 matrix stored column-major: Data[col*3+row].
 * Used for the inverse-transpose normal matrix.
 */
type Mat3 struct {
	/** @brief The matrix elements */
	Data [9]float32
}

// Axis selects one of the three basis axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Unit returns the unit vector along the axis.
func (a Axis) Unit() Vec3 {
	switch a {
	case AxisX:
		return Vec3{1, 0, 0}
	case AxisY:
		return Vec3{0, 1, 0}
	default:
		return Vec3{0, 0, 1}
	}
}

/**
 * @brief Represents the placement of an object: a translation plus three
 * Euler angles (radians). The model matrix is derived on demand from the
 * current values and never cached.
 */
type Transform struct {
	/** @brief The translation, applied in the matrix's own local axes. */
	Translation Vec3
	/** @brief Rotation about X, Y and Z in radians. */
	Rotation Vec3
}
