package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat3 is a row-major 3x3 matrix. Rotation matrices are never
// renormalized; callers supply orthonormal inputs.
type Mat3 [3][3]float64

// Identity returns the 3x3 identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Rows builds a matrix from its three rows.
func Rows(a, b, c Vec3) Mat3 {
	return Mat3{
		{a.X, a.Y, a.Z},
		{b.X, b.Y, b.Z},
		{c.X, c.Y, c.Z},
	}
}

// Row returns row i as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// Col returns column j as a vector.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Mul returns m·n. Applied to a vector, n acts first.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// T returns the transpose.
func (m Mat3) T() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TMulVec returns mᵀ·v.
func (m Mat3) TMulVec(v Vec3) Vec3 {
	return m.T().MulVec(v)
}

// RotX is the frame rotation by a about the X axis.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{1, 0, 0}, {0, c, s}, {0, -s, c}}
}

// RotY is the frame rotation by a about the Y axis.
func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{c, 0, -s}, {0, 1, 0}, {s, 0, c}}
}

// RotZ is the frame rotation by a about the Z axis.
func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
}

// Dense copies m into a gonum matrix.
func (m Mat3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// FromDense copies a 3x3 gonum matrix.
func FromDense(d mat.Matrix) Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return mat.Det(m.Dense())
}

// IsOrthonormal reports whether m·mᵀ equals the identity within tol and
// m is a proper rotation.
func (m Mat3) IsOrthonormal(tol float64) bool {
	d := m.Dense()
	var p mat.Dense
	p.Mul(d, d.T())
	id := mat.NewDiagDense(3, []float64{1, 1, 1})
	return mat.EqualApprox(&p, id, tol) && math.Abs(mat.Det(d)-1) <= tol
}

// EqualApprox compares two matrices element-wise.
func (m Mat3) EqualApprox(n Mat3, tol float64) bool {
	return mat.EqualApprox(m.Dense(), n.Dense(), tol)
}
