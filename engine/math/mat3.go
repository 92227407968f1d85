package math

// ------------------------------------------
// Matrix 3
// ------------------------------------------

func NewMat3Identity() Mat3 {
	return Mat3{Data: [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewMat3FromColumns builds a matrix from its three columns, first column first.
func NewMat3FromColumns(c0, c1, c2 Vec3) Mat3 {
	return Mat3{Data: [9]float32{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}}
}

/**
 * @brief Returns the upper-left 3x3 block of m (rotation/scale, no translation).
 */
func NewMat3FromMat4(m Mat4) Mat3 {
	return Mat3{Data: [9]float32{
		m.Data[0], m.Data[1], m.Data[2],
		m.Data[4], m.Data[5], m.Data[6],
		m.Data[8], m.Data[9], m.Data[10],
	}}
}

// At returns the element in column col, row row.
func (mt Mat3) At(col, row int) float32 {
	return mt.Data[col*3+row]
}

func (mt Mat3) Col(i int) Vec3 {
	return Vec3{mt.Data[i*3+0], mt.Data[i*3+1], mt.Data[i*3+2]}
}

func (mt Mat3) Mul(other Mat3) Mat3 {
	out_matrix := Mat3{}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			sum := float32(0)
			for k := 0; k < 3; k++ {
				sum += mt.Data[k*3+row] * other.Data[col*3+k]
			}
			out_matrix.Data[col*3+row] = sum
		}
	}
	return out_matrix
}

func (mt Mat3) MulVec3(v Vec3) Vec3 {
	return mt.Col(0).MulScalar(v.X).
		Add(mt.Col(1).MulScalar(v.Y)).
		Add(mt.Col(2).MulScalar(v.Z))
}

func (mt Mat3) Transposed() Mat3 {
	out_matrix := Mat3{}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out_matrix.Data[row*3+col] = mt.Data[col*3+row]
		}
	}
	return out_matrix
}

func (mt Mat3) DivScalar(scalar float32) Mat3 {
	out_matrix := mt
	for i := range out_matrix.Data {
		out_matrix.Data[i] /= scalar
	}
	return out_matrix
}

// Determinant expands along the first row.
func (mt Mat3) Determinant() float32 {
	a, b, c := mt.At(0, 0), mt.At(1, 0), mt.At(2, 0)
	d, e, f := mt.At(0, 1), mt.At(1, 1), mt.At(2, 1)
	g, h, k := mt.At(0, 2), mt.At(1, 2), mt.At(2, 2)
	return a*(e*k-f*h) - b*(d*k-f*g) + c*(d*h-e*g)
}

/**
 * @brief Returns the transpose of the inverse, computed as cofactor matrix
 * divided by the determinant. This is the matrix that carries normals
 * correctly under non-uniform scale and skew.
 *
 * A singular matrix is not guarded against: the division propagates
 * ±Inf/NaN into the result.
 */
func (mt Mat3) TransInv() Mat3 {
	// Row-major names: a b c / d e f / g h k.
	a, b, c := mt.At(0, 0), mt.At(1, 0), mt.At(2, 0)
	d, e, f := mt.At(0, 1), mt.At(1, 1), mt.At(2, 1)
	g, h, k := mt.At(0, 2), mt.At(1, 2), mt.At(2, 2)

	det := a*(e*k-f*h) - b*(k*d-f*g) + c*(d*h-e*g)

	ap := e*k - f*h
	bp := -(d*k - f*g)
	cp := d*h - e*g
	dp := -(b*k - c*h)
	ep := a*k - c*g
	fp := -(a*h - b*g)
	gp := b*f - c*e
	hp := -(a*f - c*d)
	kp := a*e - b*d

	cofactors := Mat3{Data: [9]float32{
		ap, dp, gp,
		bp, ep, hp,
		cp, fp, kp,
	}}
	return cofactors.DivScalar(det)
}

// Flat returns the elements in column-major order.
func (mt Mat3) Flat() [9]float32 {
	return mt.Data
}

func (mt Mat3) Compare(other Mat3, tolerance float32) bool {
	for i := range mt.Data {
		if d := mt.Data[i] - other.Data[i]; d > tolerance || d < -tolerance {
			return false
		}
	}
	return true
}
