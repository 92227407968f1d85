package math

// RotationOrder is the sequence in which the three Euler rotations of a
// Transform are folded into its model matrix.
type RotationOrder uint8

const (
	// RotationOrderXYZ rotates about X, then Y, then Z in the matrix's local frame.
	RotationOrderXYZ RotationOrder = iota
	RotationOrderZYX
)

// EulerOrder is the order Transform.Model applies rotations in.
const EulerOrder = RotationOrderXYZ

func (o RotationOrder) axes() [3]Axis {
	if o == RotationOrderZYX {
		return [3]Axis{AxisZ, AxisY, AxisX}
	}
	return [3]Axis{AxisX, AxisY, AxisZ}
}

func NewTransform() Transform {
	return Transform{}
}

func NewTransformFromTranslation(translation Vec3) Transform {
	return Transform{Translation: translation}
}

// Translate adds delta to the current translation.
func (t *Transform) Translate(delta Vec3) {
	t.Translation = t.Translation.Add(delta)
}

// Rotate adds delta radians to the rotation about axis.
func (t *Transform) Rotate(delta float32, axis Axis) {
	switch axis {
	case AxisX:
		t.Rotation.X += delta
	case AxisY:
		t.Rotation.Y += delta
	case AxisZ:
		t.Rotation.Z += delta
	}
}

func (t *Transform) component(axis Axis) float32 {
	switch axis {
	case AxisX:
		return t.Rotation.X
	case AxisY:
		return t.Rotation.Y
	default:
		return t.Rotation.Z
	}
}

/**
 * @brief Builds the model matrix from identity: translate first, then the
 * three axis rotations in EulerOrder. Rotations happen about the translated
 * origin.
 */
func (t *Transform) Model() Mat4 {
	m := NewMat4Identity().Translate(t.Translation)
	for _, axis := range EulerOrder.axes() {
		m = m.Rotate(t.component(axis), axis.Unit())
	}
	return m
}
