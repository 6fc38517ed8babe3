package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// CSR wraps a compressed sparse row matrix whose structure comes from an adjacency graph
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// NewCSRPattern creates an nr x nc matrix with a 1 at every (i, ja[k]) for ia[i] <= k < ia[i+1]
func NewCSRPattern(nr, nc int, ia, ja []int) (R CSR, err error) {
	if len(ia) != nr+1 {
		err = fmt.Errorf("row offsets must have %d entries, got %d", nr+1, len(ia))
		return
	}
	if ia[nr] != len(ja) {
		err = fmt.Errorf("last row offset %d does not match column index count %d", ia[nr], len(ja))
		return
	}
	for _, j := range ja {
		if j < 0 || j >= nc {
			err = fmt.Errorf("column index %d out of range [0,%d)", j, nc)
			return
		}
	}
	data := make([]float64, len(ja))
	for i := range data {
		data[i] = 1
	}
	R = CSR{
		sparse.NewCSR(nr, nc, ia, ja, data),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims and At satisfy the read side of the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

// RowPattern returns the column indices stored for row i
func (m CSR) RowPattern(i int) []int {
	raw := m.RawMatrix()
	return raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]]
}

// SetRowValues overwrites the stored values of row i, values align with RowPattern(i)
func (m CSR) SetRowValues(i int, values []float64) (err error) {
	m.checkWritable()
	raw := m.RawMatrix()
	row := raw.Data[raw.Indptr[i]:raw.Indptr[i+1]]
	if len(row) != len(values) {
		err = fmt.Errorf("row %d holds %d values, got %d", i, len(row), len(values))
		return
	}
	copy(row, values)
	return
}

// MulVec returns m*x using the sparse kernel, cost is proportional to NNZ
func (m CSR) MulVec(x []float64) (y []float64) {
	nr, nc := m.Dims()
	if len(x) != nc {
		panic(fmt.Errorf("%w: matrix has %d columns, vector has %d entries", mat.ErrShape, nc, len(x)))
	}
	y = make([]float64, nr)
	if nr == 0 || nc == 0 {
		return
	}
	sparse.MulMatRawVec(m.M, x, y)
	return
}

func (m *CSR) SetReadOnly(name ...string) {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
}

func (m CSR) IsReadOnly() bool { return m.readOnly }

func (m CSR) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
