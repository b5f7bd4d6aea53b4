package similarity

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows × cols table of pairwise scores.
type Matrix struct {
	rows, cols int
	data       []float32
}

// NewMatrix allocates a zeroed matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// IsEmpty reports whether the matrix has no cells.
func (m *Matrix) IsEmpty() bool { return m.rows == 0 || m.cols == 0 }

// At returns the score at row i and column j.
func (m *Matrix) At(i, j int) float32 { return m.data[i*m.cols+j] }

// Set stores the score at row i and column j.
func (m *Matrix) Set(i, j int, v float32) { m.data[i*m.cols+j] = v }

// Row returns row i. The slice aliases the matrix.
func (m *Matrix) Row(i int) []float32 { return m.data[i*m.cols : (i+1)*m.cols] }

// RowMaxima returns the maximum of every row.
func (m *Matrix) RowMaxima() []float32 {
	out := make([]float32, m.rows)
	for i := range m.rows {
		for j, v := range m.Row(i) {
			if j == 0 || v > out[i] {
				out[i] = v
			}
		}
	}
	return out
}

// ColMaxima returns the maximum of every column.
func (m *Matrix) ColMaxima() []float32 {
	out := make([]float32, m.cols)
	for i := range m.rows {
		for j, v := range m.Row(i) {
			if i == 0 || v > out[j] {
				out[j] = v
			}
		}
	}
	return out
}

// Dense returns a float64 copy for use with gonum.
func (m *Matrix) Dense() *mat.Dense {
	if m.IsEmpty() {
		return &mat.Dense{}
	}
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data)
}
