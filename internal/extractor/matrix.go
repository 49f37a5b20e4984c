package extractor

import "fmt"

// Matrix is a PDF transformation matrix, the six live entries of the 3x3
// homogeneous form [a b 0; c d 0; e f 1]. The receiver composes these for
// the CTM stack (cm/q/Q) and the text matrix (Tm/Td).
type Matrix struct {
	A, B, C, D, E, F float64
}

// NewMatrix builds a Matrix from the operand order of the cm and Tm
// operators: a b c d e f.
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Identity returns the no-op transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns the transform that moves by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Transform maps a point through the matrix:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Multiply composes transforms; m.Multiply(n) applies n first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// String returns the matrix in operand order.
func (m Matrix) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f %.3f %.3f %.3f]", m.A, m.B, m.C, m.D, m.E, m.F)
}
