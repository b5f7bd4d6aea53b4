package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/testutil"
)

func fixedMatrix() *Matrix {
	m := NewMatrix(3, 2)
	vals := [][]float32{{1, 0.5}, {0.2, 0.4}, {0, 0.9}}
	for i, row := range vals {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

func TestMatrix(t *testing.T) {
	m := fixedMatrix()
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, []float32{1, 0.4, 0.9}, m.RowMaxima())
	assert.Equal(t, []float32{1, 0.9}, m.ColMaxima())

	d := m.Dense()
	r, c := d.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.InDelta(t, 0.9, d.At(2, 1), 1e-6)

	assert.True(t, NewMatrix(0, 4).IsEmpty())
	assert.True(t, NewMatrix(0, 0).Dense().IsEmpty())
}

func TestCombiners(t *testing.T) {
	m := fixedMatrix()
	assert.InDelta(t, (2.3/3+0.95)/2, FunSimAvg{}.Combine(m), 1e-6)
	assert.InDelta(t, 0.95, FunSimMax{}.Combine(m), 1e-6)
	assert.InDelta(t, 4.2/5, BWA{}.Combine(m), 1e-6)

	empty := NewMatrix(0, 3)
	for _, c := range []Combiner{FunSimAvg{}, FunSimMax{}, BWA{}} {
		assert.Zero(t, c.Combine(empty), c.Name())
	}
}

func TestGroup(t *testing.T) {
	ont := testutil.Small()
	a, err := ont.TermSet(1250, 234)
	require.NoError(t, err)
	b, err := ont.TermSet(11097)
	require.NoError(t, err)

	g := NewGroup(Distance{}, BWA{})
	m := g.Matrix(a, b)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 1, m.Cols())
	// Rows follow ascending ids: HP:0000234 then HP:0001250.
	assert.InDelta(t, 1.0/6.0, m.At(0, 0), 1e-6)
	assert.InDelta(t, 0.5, m.At(1, 0), 1e-6)

	assert.InDelta(t, (1.0/6.0+0.5+0.5)/3, g.Score(a, b), 1e-6)
	assert.InDelta(t, g.Score(a, b), g.Score(b, a), 1e-6)

	self := NewGroup(GraphIC{Kind: model.ICGene}, FunSimAvg{})
	assert.InDelta(t, 1.0, self.Score(a, a), 1e-6)

	empty, err := ont.TermSet()
	require.NoError(t, err)
	assert.Zero(t, g.Score(a, empty))
	assert.Zero(t, g.Score(empty, empty))
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		alg, err := ByName(name, model.ICOmim)
		require.NoError(t, err)
		assert.Equal(t, name, alg.Name())
	}
	alg, err := ByName(" Resnik ", model.ICOrpha)
	require.NoError(t, err)
	assert.Equal(t, Resnik{Kind: model.ICOrpha}, alg)

	_, err = ByName("cosine", model.ICGene)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	for _, name := range CombinerNames() {
		c, err := CombinerByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	_, err = CombinerByName("median")
	require.ErrorIs(t, err, ErrUnknownCombiner)
}
