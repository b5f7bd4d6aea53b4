package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/model"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Intn(1000)
	rng.Reset()
	assert.Equal(t, a, rng.Intn(1000))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)
	counts := make([]int, 10)
	for range 2000 {
		v := rng.Zipf(10, 1.5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
		counts[v]++
	}
	assert.Greater(t, counts[0], counts[9])
}

func TestChain(t *testing.T) {
	ont := Chain()
	assert.Equal(t, 4, ont.Len())
	leaf := ont.MustTerm(ChainLeaf)
	assert.Equal(t, 3, leaf.Ancestors().Len())
	assert.True(t, leaf.Genes().Contains(ChainGene))
}

func TestSmall(t *testing.T) {
	ont := Small()
	assert.Equal(t, len(SmallTerms), ont.Len())
	assert.Equal(t, len(SmallGenes), ont.GeneCount())
	assert.Equal(t, len(SmallOmim), ont.DiseaseCount(model.Omim))
	assert.Equal(t, len(SmallOrpha), ont.DiseaseCount(model.Orpha))
}

func TestRandomOntology_Deterministic(t *testing.T) {
	opts := RandomOptions{Terms: 200, MaxParents: 3, Genes: 40, Omim: 20, Orpha: 10, ObsoleteEvery: 17}

	a := NewRNG(42).Ontology(opts)
	b := NewRNG(42).Ontology(opts)

	require.Equal(t, 200, a.Len())
	for ta := range a.Terms() {
		tb := b.MustTerm(ta.ID())
		assert.True(t, ta.Ancestors().Equal(tb.Ancestors()))
		assert.Equal(t, ta.InformationContent(), tb.InformationContent())
	}
	assert.Equal(t, 40, a.GeneCount())
}
