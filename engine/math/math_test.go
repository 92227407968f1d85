package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1.0e-5

func cols4(c ...[4]float32) Mat4 {
	m := Mat4{}
	for i, col := range c {
		copy(m.Data[i*4:i*4+4], col[:])
	}
	return m
}

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.MulScalar(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, NewVec3(0, 0, 1), NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)))
	assert.InDelta(t, 1.0, NewVec3(3, 4, 12).Normalize().Length(), tol)
	assert.True(t, math32.IsNaN(NewVec3Zero().Normalize().X))
}

func TestMat4Identity(t *testing.T) {
	id := NewMat4Identity()
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			want := float32(0)
			if col == row {
				want = 1
			}
			assert.Equal(t, want, id.At(col, row))
		}
	}
	assert.Equal(t, [16]float32{}, NewMat4Zero().Flat())
}

func TestMat4Mul(t *testing.T) {
	a := cols4([4]float32{9, 4, 9, 6}, [4]float32{0, 7, 6, 7}, [4]float32{8, 9, 1, 5}, [4]float32{0, 0, 9, 1})
	b := cols4([4]float32{0, 7, 1, 6}, [4]float32{6, 6, 3, 6}, [4]float32{2, 2, 3, 9}, [4]float32{0, 9, 9, 1})
	want := cols4([4]float32{8, 58, 97, 60}, [4]float32{78, 93, 147, 99}, [4]float32{42, 49, 114, 50}, [4]float32{72, 144, 72, 109})
	assert.Equal(t, want, a.Mul(b))

	id := NewMat4Identity()
	assert.Equal(t, a, a.Mul(id))
	assert.Equal(t, a, id.Mul(a))
	assert.NotEqual(t, a.Mul(b), b.Mul(a))
}

func TestMat4MulAssociative(t *testing.T) {
	a := cols4([4]float32{9, 4, 9, 6}, [4]float32{0, 7, 6, 7}, [4]float32{8, 9, 1, 5}, [4]float32{0, 0, 9, 1})
	b := cols4([4]float32{0, 7, 1, 6}, [4]float32{6, 6, 3, 6}, [4]float32{2, 2, 3, 9}, [4]float32{0, 9, 9, 1})
	c := cols4([4]float32{1, 0, 2, 0}, [4]float32{3, 1, 0, 1}, [4]float32{0, 2, 1, 4}, [4]float32{5, 0, 1, 2})
	// Small integers stay exact in float32.
	assert.Equal(t, a.Mul(b).Mul(c), a.Mul(b.Mul(c)))

	r := NewMat4Identity().Rotate(0.3, NewVec3(0, 1, 0))
	tr := NewMat4Identity().Translate(NewVec3(1, -2, 0.5))
	p := NewMat4Perspective(K_QUARTER_PI, 4.0/3.0, 0.1, 10)
	assert.True(t, p.Mul(tr).Mul(r).Compare(p.Mul(tr.Mul(r)), 1e-5))
}

func TestMat4Add(t *testing.T) {
	a := NewMat4Identity()
	b := cols4([4]float32{1, 2, 3, 4}, [4]float32{5, 6, 7, 8}, [4]float32{9, 10, 11, 12}, [4]float32{13, 14, 15, 16})
	sum := a.Add(b)
	assert.Equal(t, float32(2), sum.At(0, 0))
	assert.Equal(t, float32(2), sum.At(0, 1))
	assert.Equal(t, float32(17), sum.At(3, 3))
	assert.Equal(t, b, NewMat4Zero().Add(b))
}

func TestMat4Translate(t *testing.T) {
	m := NewMat4Identity().Translate(NewVec3(1, 2, 3))
	assert.Equal(t, NewVec4(1, 2, 3, 1), m.Col(3))
	assert.Equal(t, NewVec4(1, 0, 0, 0), m.Col(0))

	// Translation follows the matrix's local axes.
	scaled := NewMat4Identity()
	scaled.Data[0] = 2
	scaled = scaled.Translate(NewVec3(1, 1, 1))
	assert.Equal(t, NewVec4(2, 1, 1, 1), scaled.Col(3))

	p := m.MulVec4(NewVec4(0, 0, 0, 1))
	assert.Equal(t, NewVec4(1, 2, 3, 1), p)
}

func TestMat4Rotate(t *testing.T) {
	m := NewMat4Identity().Rotate(K_HALF_PI, AxisZ.Unit())
	got := m.MulVec4(NewVec4(1, 0, 0, 1))
	assert.True(t, got.Compare(NewVec4(0, 1, 0, 1), tol), "got %v", got)

	// Rotation preserves the translation column.
	tr := NewMat4Identity().Translate(NewVec3(4, 5, 6))
	rot := tr.Rotate(1.234, NewVec3(1, 1, 0).Normalize())
	assert.Equal(t, tr.Col(3), rot.Col(3))

	// A full turn comes back to the start.
	full := NewMat4Identity().Rotate(K_PI_2, AxisX.Unit())
	assert.True(t, full.Compare(NewMat4Identity(), tol))

	zero := tr.Rotate(0, AxisY.Unit())
	assert.True(t, zero.Compare(tr, tol))
}

func TestMat4Perspective(t *testing.T) {
	p := NewMat4Perspective(K_QUARTER_PI, 800.0/600.0, 0.1, 10)
	half := math32.Tan(K_QUARTER_PI / 2)
	assert.InDelta(t, 1/(800.0/600.0*half), p.Data[0], tol)
	assert.InDelta(t, 1/half, p.Data[5], tol)
	assert.InDelta(t, -(10.1 / 9.9), p.Data[10], tol)
	assert.Equal(t, float32(-1), p.Data[11])
	assert.InDelta(t, -(2.0/9.9), p.Data[14], tol)
	assert.Equal(t, float32(0), p.Data[15])
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	v := NewMat4LookAt(eye, NewVec3Zero(), NewVec3(0, 1, 0))

	// Looking down -Z from +Z: the view matrix is a pure translation.
	want := NewMat4Identity().Translate(NewVec3(0, 0, -5))
	assert.True(t, v.Compare(want, tol), "got %v", v.Data)

	// The eye maps to the origin.
	o := v.MulVec4(eye.ToVec4(1))
	assert.True(t, o.Compare(NewVec4(0, 0, 0, 1), tol))

	// The target ends up on the negative Z axis.
	c := NewMat4LookAt(NewVec3(0, 1, 0), NewVec3(0, -2, -2), NewVec3(0, 0, 1))
	target := c.MulVec4(NewVec4(0, -2, -2, 1))
	assert.InDelta(t, 0, target.X, tol)
	assert.InDelta(t, 0, target.Y, tol)
	assert.Less(t, target.Z, float32(0))
}

func TestMat4Transposed(t *testing.T) {
	a := cols4([4]float32{1, 2, 3, 4}, [4]float32{5, 6, 7, 8}, [4]float32{9, 10, 11, 12}, [4]float32{13, 14, 15, 16})
	tr := a.Transposed()
	assert.Equal(t, a.At(1, 0), tr.At(0, 1))
	assert.Equal(t, a, tr.Transposed())
}

func TestMat3FromMat4(t *testing.T) {
	m := NewMat4Identity().Translate(NewVec3(7, 8, 9))
	assert.Equal(t, NewMat3Identity(), NewMat3FromMat4(m))
}

func TestMat3TransInv(t *testing.T) {
	m := NewMat3FromColumns(NewVec3(5, 2, 7), NewVec3(4, 7, 6), NewVec3(2, 3, 3))
	assert.Equal(t, float32(1), m.Determinant())

	want := NewMat3FromColumns(NewVec3(3, 0, -2), NewVec3(15, 1, -11), NewVec3(-37, -2, 27))
	assert.True(t, m.TransInv().Compare(want, tol), "got %v", m.TransInv().Data)

	// (M^-1)^T · M^T = I
	prod := m.TransInv().Mul(m.Transposed())
	assert.True(t, prod.Compare(NewMat3Identity(), tol))
}

func TestMat3TransInvSingular(t *testing.T) {
	m := NewMat3FromColumns(NewVec3(1, 2, 3), NewVec3(2, 4, 6), NewVec3(0, 0, 1))
	inv := m.TransInv()
	bad := false
	for _, v := range inv.Data {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			bad = true
		}
	}
	assert.True(t, bad)
}

func TestTransformModel(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, NewMat4Identity(), tr.Model())

	tr.Translate(NewVec3(1, 0, 0))
	tr.Translate(NewVec3(0, 2, 0))
	assert.Equal(t, NewVec3(1, 2, 0), tr.Translation)

	tr.Rotate(K_HALF_PI, AxisY)
	tr.Rotate(-K_HALF_PI, AxisY)
	tr.Rotate(K_HALF_PI, AxisZ)
	assert.InDelta(t, 0, tr.Rotation.Y, tol)

	m := tr.Model()
	// Rotation happens about the translated origin.
	p := m.MulVec4(NewVec4(1, 0, 0, 1))
	assert.True(t, p.Compare(NewVec4(1, 3, 0, 1), tol), "got %v", p)

	want := NewMat4Identity().Translate(tr.Translation).
		Rotate(tr.Rotation.X, AxisX.Unit()).
		Rotate(tr.Rotation.Y, AxisY.Unit()).
		Rotate(tr.Rotation.Z, AxisZ.Unit())
	assert.True(t, m.Compare(want, tol))
}

func TestGenerateFaceNormals(t *testing.T) {
	positions := []Vec4{
		NewVec4(0, 0, 0, 1),
		NewVec4(1, 0, 0, 1),
		NewVec4(0, 1, 0, 1),
		NewVec4(0, 0, 1, 1),
	}
	// Second triangle shares vertex 0 and overwrites its normal.
	indices := []uint16{0, 1, 2, 0, 3, 1}
	normals := GenerateFaceNormals(positions, indices)
	assert.Len(t, normals, 4)
	assert.True(t, normals[2].Compare(NewVec3(0, 0, 1), tol))
	assert.True(t, normals[3].Compare(NewVec3(0, 1, 0), tol))
	assert.True(t, normals[0].Compare(NewVec3(0, 1, 0), tol))
	assert.True(t, normals[1].Compare(NewVec3(0, 1, 0), tol))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, uint8(3), Clamp(uint8(3), 0, 9))
}
