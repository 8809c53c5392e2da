// Package tensor provides the dense float32 matrix the model's parameters
// live in.
package tensor

import "math/rand"

// Mat is a dense row-major matrix of float32 values. Stride is the number
// of elements between the starts of two consecutive rows; for matrices
// allocated here it equals C. No bounds checking happens beyond what Go's
// slices already do.
type Mat struct {
	R, C   int
	Stride int
	Data   []float32
}

// NewMat allocates a zero-initialised matrix with r rows and c columns.
func NewMat(r, c int) Mat {
	if r < 0 || c < 0 {
		panic("tensor: negative matrix dimension")
	}
	return Mat{R: r, C: c, Stride: c, Data: make([]float32, r*c)}
}

// NewMatFromData wraps existing data as an r x c matrix. It panics if the
// data length does not match.
func NewMatFromData(r, c int, data []float32) Mat {
	if r*c != len(data) {
		panic("tensor: data length mismatch")
	}
	return Mat{R: r, C: c, Stride: c, Data: data}
}

// Row returns row i as a slice sharing the matrix's backing array.
func (m *Mat) Row(i int) []float32 {
	off := i * m.Stride
	return m.Data[off : off+m.C]
}

// FillRand fills the matrix with normally distributed values scaled by
// scale, deterministically derived from seed.
func FillRand(m *Mat, seed int64, scale float32) {
	rng := rand.New(rand.NewSource(seed))
	for i := range m.Data {
		m.Data[i] = float32(rng.NormFloat64()) * scale
	}
}
