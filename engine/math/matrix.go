package math

import (
	"github.com/chewxy/math32"
)

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

// NewMat4Zero returns a matrix with every element set to zero.
func NewMat4Zero() Mat4 {
	return Mat4{}
}

/**
 * @brief Builds a matrix from its four columns, first column first.
 */
func NewMat4FromColumns(c0, c1, c2, c3 Vec4) Mat4 {
	out_matrix := Mat4{}
	out_matrix.setCol(0, c0)
	out_matrix.setCol(1, c1)
	out_matrix.setCol(2, c2)
	out_matrix.setCol(3, c3)
	return out_matrix
}

// Col returns column i.
func (mt Mat4) Col(i int) Vec4 {
	return Vec4{mt.Data[i*4+0], mt.Data[i*4+1], mt.Data[i*4+2], mt.Data[i*4+3]}
}

// At returns the element in column col, row row.
func (mt Mat4) At(col, row int) float32 {
	return mt.Data[col*4+row]
}

func (mt *Mat4) setCol(i int, v Vec4) {
	mt.Data[i*4+0] = v.X
	mt.Data[i*4+1] = v.Y
	mt.Data[i*4+2] = v.Z
	mt.Data[i*4+3] = v.W
}

/**
 * @brief Returns the element-wise sum of both matrices.
 */
func (mt Mat4) Add(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for i := range mt.Data {
		out_matrix.Data[i] = mt.Data[i] + other.Data[i]
	}
	return out_matrix
}

/**
 * @brief Returns the standard matrix product mt·other: every column of other
 * is mapped through mt. The product does not commute; the right-hand operand
 * is the transform applied first.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += mt.Data[k*4+row] * other.Data[col*4+k]
			}
			out_matrix.Data[col*4+row] = sum
		}
	}
	return out_matrix
}

// MulVec4 maps v through the matrix.
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	return mt.Col(0).MulScalar(v.X).
		Add(mt.Col(1).MulScalar(v.Y)).
		Add(mt.Col(2).MulScalar(v.Z)).
		Add(mt.Col(3).MulScalar(v.W))
}

/**
 * @brief Returns a copy of the matrix with the translation v applied in the
 * matrix's own local axes: the last column becomes mt·(v, 1). The first three
 * columns are copied unchanged.
 */
func (mt Mat4) Translate(v Vec3) Mat4 {
	out_matrix := mt
	out_matrix.setCol(3, mt.MulVec4(v.ToVec4(1.0)))
	return out_matrix
}

/**
 * @brief Returns a copy of the matrix rotated by angle radians about axis.
 * The axis must already be normalized. The rotation is recombined into the
 * first three columns only, so the translation column is preserved and no new
 * translation is ever introduced.
 */
func (mt Mat4) Rotate(angle float32, axis Vec3) Mat4 {
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	t := 1.0 - c

	// r[col][row] of the axis-angle rotation.
	var r [3][3]float32
	r[0][0] = axis.X*axis.X*t + c
	r[0][1] = axis.X*axis.Y*t + axis.Z*s
	r[0][2] = axis.X*axis.Z*t - axis.Y*s
	r[1][0] = axis.Y*axis.X*t - axis.Z*s
	r[1][1] = axis.Y*axis.Y*t + c
	r[1][2] = axis.Y*axis.Z*t + axis.X*s
	r[2][0] = axis.Z*axis.X*t + axis.Y*s
	r[2][1] = axis.Z*axis.Y*t - axis.X*s
	r[2][2] = axis.Z*axis.Z*t + c

	c0, c1, c2 := mt.Col(0), mt.Col(1), mt.Col(2)
	out_matrix := mt
	for i := 0; i < 3; i++ {
		out_matrix.setCol(i, c0.MulScalar(r[i][0]).
			Add(c1.MulScalar(r[i][1])).
			Add(c2.MulScalar(r[i][2])))
	}
	return out_matrix
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out_matrix.Data[row*4+col] = mt.Data[col*4+row]
		}
	}
	return out_matrix
}

/**
 * @brief Returns the elements as a linear column-major buffer, ready for
 * upload to the graphics backend.
 */
func (mt Mat4) Flat() [16]float32 {
	return mt.Data
}

/**
 * @brief Creates and returns a perspective matrix. Typically used to render 3d scenes.
 * Right-handed, with the w-divide convention (column 2, row 3 = -1).
 *
 * @param fov_radians The vertical field of view in radians.
 * @param aspect_ratio The aspect ratio.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fov_radians, aspect_ratio, near_clip, far_clip float32) Mat4 {
	half_tan_fov := math32.Tan(fov_radians * 0.5)
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0 / (aspect_ratio * half_tan_fov)
	out_matrix.Data[5] = 1.0 / half_tan_fov
	out_matrix.Data[10] = -((far_clip + near_clip) / (far_clip - near_clip))
	out_matrix.Data[11] = -1.0
	out_matrix.Data[14] = -((2.0 * far_clip * near_clip) / (far_clip - near_clip))
	return out_matrix
}

/**
 * @brief Creates and returns a look-at matrix, or a matrix looking
 * at center from the perspective of eye.
 *
 * forward = normalize(center-eye), right = normalize(forward x normalize(up)),
 * trueUp = right x forward. The basis goes into the rows of the upper-left
 * 3x3 block. eye must differ from center.
 */
func NewMat4LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up.Normalize()).Normalize()
	u := s.Cross(f)

	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = s.X
	out_matrix.Data[4] = s.Y
	out_matrix.Data[8] = s.Z
	out_matrix.Data[1] = u.X
	out_matrix.Data[5] = u.Y
	out_matrix.Data[9] = u.Z
	out_matrix.Data[2] = -f.X
	out_matrix.Data[6] = -f.Y
	out_matrix.Data[10] = -f.Z
	out_matrix.Data[12] = -s.Dot(eye)
	out_matrix.Data[13] = -u.Dot(eye)
	out_matrix.Data[14] = f.Dot(eye)
	return out_matrix
}

// Compare reports whether every element differs by at most tolerance.
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if math32.Abs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}
