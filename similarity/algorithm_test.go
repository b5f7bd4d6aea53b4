package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
	"github.com/hupe1980/hpograph/testutil"
)

func allAlgorithms(kind model.InformationContentKind) []Algorithm {
	return []Algorithm{
		Resnik{Kind: kind},
		Lin{Kind: kind},
		Jc{Kind: kind},
		GraphIC{Kind: kind},
		Relevance{Kind: kind},
		InformationCoefficient{Kind: kind},
		Distance{},
	}
}

func TestChainScenario_GraphICSelf(t *testing.T) {
	ont := testutil.Chain()
	leaf := ont.MustTerm(testutil.ChainLeaf)
	assert.Equal(t, float32(1.0), GraphIC{Kind: model.ICOmim}.Score(leaf, leaf))
}

func TestAlgorithms_KnownValues(t *testing.T) {
	ont := testutil.Small()
	seizure := ont.MustTerm(1250)
	spasm := ont.MustTerm(11097)
	morph := ont.MustTerm(12639)
	kind := model.ICGene

	ln3 := math.Log(3)
	ln15 := math.Log(1.5)

	assert.InDelta(t, ln15, Resnik{Kind: kind}.Score(seizure, spasm), 1e-5)
	assert.InDelta(t, 2*ln15/(ln15+ln3), Lin{Kind: kind}.Score(seizure, spasm), 1e-5)
	assert.InDelta(t, 1-(ln3-ln15), Jc{Kind: kind}.Score(seizure, spasm), 1e-5)
	assert.InDelta(t, 0.5, GraphIC{Kind: kind}.Score(seizure, spasm), 1e-5)
	assert.InDelta(t, 0.5, Distance{}.Score(seizure, spasm), 1e-6)

	lin := 2 * ln15 / (ln15 + ln3)
	assert.InDelta(t, lin*(1-math.Exp(-ln15)), Relevance{Kind: kind}.Score(seizure, spasm), 1e-5)
	assert.InDelta(t, lin*(1-1/(1+ln15)), InformationCoefficient{Kind: kind}.Score(seizure, spasm), 1e-5)

	// Siblings below a zero-IC ancestor share nothing informative.
	assert.Zero(t, Resnik{Kind: kind}.Score(seizure, morph))
	assert.Zero(t, Lin{Kind: kind}.Score(seizure, morph))
	assert.Zero(t, GraphIC{Kind: kind}.Score(seizure, morph))
	assert.InDelta(t, 1.0/3.0, Distance{}.Score(seizure, morph), 1e-6)
}

func TestAlgorithms_ZeroDenominators(t *testing.T) {
	ont := testutil.Small()
	root := ont.MustTerm(model.RootTermID)
	obsolete := ont.MustTerm(9998)

	for _, alg := range allAlgorithms(model.ICOrpha) {
		v := alg.Score(root, obsolete)
		assert.False(t, math.IsNaN(float64(v)), alg.Name())
		assert.False(t, math.IsInf(float64(v), 0), alg.Name())
	}
	assert.Zero(t, Lin{Kind: model.ICOrpha}.Score(root, root))
	assert.Zero(t, GraphIC{Kind: model.ICOrpha}.Score(root, obsolete))
}

func TestAlgorithms_SelfIdentity(t *testing.T) {
	ont := testutil.NewRNG(11).Ontology(testutil.RandomOptions{Terms: 250, MaxParents: 3, Genes: 60, Omim: 30, Orpha: 20})

	for term := range ont.Terms() {
		for _, kind := range []model.InformationContentKind{model.ICGene, model.ICOmim, model.ICOrpha} {
			require.Equal(t, float32(1), GraphIC{Kind: kind}.Score(term, term))
			require.Equal(t, float32(1), Jc{Kind: kind}.Score(term, term))
			require.Equal(t, term.IC(kind), Resnik{Kind: kind}.Score(term, term), "term %s", term.ID())
		}
		require.Equal(t, float32(1), Distance{}.Score(term, term))
	}
}

func TestAlgorithms_Symmetry(t *testing.T) {
	ont := testutil.NewRNG(5).Ontology(testutil.RandomOptions{Terms: 120, MaxParents: 3, Genes: 40, Omim: 20, Orpha: 10})
	rng := testutil.NewRNG(6)

	for range 300 {
		a := ont.MustTerm(model.TermID(1 + rng.Intn(ont.Len())))
		b := ont.MustTerm(model.TermID(1 + rng.Intn(ont.Len())))
		for _, alg := range allAlgorithms(model.ICGene) {
			require.Equal(t, alg.Score(a, b), alg.Score(b, a), "%s(%s, %s)", alg.Name(), a.ID(), b.ID())
		}
	}
}

func TestAlgorithms_Bounds(t *testing.T) {
	ont := testutil.NewRNG(21).Ontology(testutil.RandomOptions{Terms: 100, Genes: 30})
	bounded := []Algorithm{Lin{}, GraphIC{}, Relevance{}, InformationCoefficient{}, Distance{}}
	for a := range ont.Terms() {
		for b := range ont.Terms() {
			for _, alg := range bounded {
				v := alg.Score(a, b)
				require.GreaterOrEqual(t, v, float32(0), alg.Name())
				require.LessOrEqual(t, v, float32(1.0001), alg.Name())
			}
		}
	}
}

func TestFunc(t *testing.T) {
	ont := testutil.Chain()
	f := Func{Label: "const", Fn: func(_, _ ontology.Term) float32 { return 0.25 }}
	assert.Equal(t, "const", f.Name())
	assert.Equal(t, float32(0.25), f.Score(ont.MustTerm(1), ont.MustTerm(118)))
}
