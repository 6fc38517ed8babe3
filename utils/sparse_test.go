package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRPattern(t *testing.T) {
	// Path graph 0-1-2 with self adjacency
	ia := []int{0, 2, 5, 7}
	ja := []int{0, 1, 0, 1, 2, 1, 2}
	m, err := NewCSRPattern(3, 3, ia, ja)
	require.NoError(t, err)

	nr, nc := m.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 7, m.NNZ())
	assert.Equal(t, 1., m.At(0, 1))
	assert.Equal(t, 0., m.At(0, 2))
	assert.Equal(t, []int{0, 1, 2}, m.RowPattern(1))
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1}, m.Data())

	// Row sums of the pattern are the degrees
	assert.Equal(t, []float64{2, 3, 2}, m.MulVec([]float64{1, 1, 1}))

	// Assemble a 1D Laplacian stencil into the pattern
	require.NoError(t, m.SetRowValues(0, []float64{2, -1}))
	require.NoError(t, m.SetRowValues(1, []float64{-1, 2, -1}))
	require.NoError(t, m.SetRowValues(2, []float64{-1, 2}))
	assert.Equal(t, []float64{0, 0, 0}, m.MulVec([]float64{0, 0, 0}))
	assert.Equal(t, []float64{1, 0, 1}, m.MulVec([]float64{1, 1, 1}))
	assert.Error(t, m.SetRowValues(0, []float64{1}))

	assert.False(t, m.IsReadOnly())
	m.SetReadOnly("Laplacian")
	assert.True(t, m.IsReadOnly())
	assert.Panics(t, func() { _ = m.SetRowValues(0, []float64{1, 1}) })
	assert.Panics(t, func() { m.MulVec([]float64{1}) })
}

func TestCSRPatternErrors(t *testing.T) {
	_, err := NewCSRPattern(2, 2, []int{0, 1}, []int{0})
	assert.Error(t, err)
	_, err = NewCSRPattern(2, 2, []int{0, 1, 3}, []int{0, 1})
	assert.Error(t, err)
	_, err = NewCSRPattern(2, 2, []int{0, 1, 2}, []int{0, 2})
	assert.Error(t, err)
}
