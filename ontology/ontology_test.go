package ontology_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
	"github.com/hupe1980/hpograph/testutil"
)

func TestChainScenario(t *testing.T) {
	ont := testutil.Chain()

	for _, id := range []model.TermID{testutil.ChainRoot, testutil.ChainPheno, testutil.ChainMiddle, testutil.ChainLeaf} {
		term := ont.MustTerm(id)
		assert.True(t, term.Genes().Contains(testutil.ChainGene), "term %s", id)
	}

	g, err := ont.Gene(testutil.ChainGene)
	require.NoError(t, err)
	assert.Equal(t, "FooBar", g.Name)
	assert.Equal(t, idset.New(testutil.ChainLeaf), g.Terms)
}

func TestOntology_Lookup(t *testing.T) {
	ont := testutil.Small()

	_, err := ont.Term(4242)
	require.ErrorIs(t, err, ontology.ErrNotFound)
	assert.Panics(t, func() { ont.MustTerm(4242) })

	_, err = ont.Gene(1)
	require.ErrorIs(t, err, ontology.ErrNotFound)
	_, err = ont.Disease(model.Omim, 558)
	require.ErrorIs(t, err, ontology.ErrNotFound)

	d, err := ont.Disease(model.Orpha, 558)
	require.NoError(t, err)
	assert.Equal(t, "Marfan syndrome", d.Name)
	assert.Equal(t, model.Orpha, d.Kind)

	root, err := ont.Root()
	require.NoError(t, err)
	assert.Equal(t, "All", root.Name())
	assert.Equal(t, "HP:0000001 | All", root.String())
	assert.Equal(t, model.ReleaseVersion{Year: 2025, Month: 1, Day: 16}, ont.Release())
}

func TestOntology_IterationOrder(t *testing.T) {
	ont := testutil.Small()

	var ids []model.TermID
	for term := range ont.Terms() {
		ids = append(ids, term.ID())
	}
	assert.True(t, slices.IsSorted(ids))
	assert.Equal(t, ids, ont.TermIDs())

	var genes []model.GeneID
	for g := range ont.Genes() {
		genes = append(genes, g.ID)
	}
	assert.Equal(t, []model.GeneID{5, 2200, 4000, 7000}, genes)

	var orpha []model.DiseaseID
	for d := range ont.Diseases(model.Orpha) {
		orpha = append(orpha, d.ID)
	}
	assert.Equal(t, []model.DiseaseID{166, 558}, orpha)
}

func TestOntology_EdgeSymmetryAndClosure(t *testing.T) {
	ont := testutil.NewRNG(7).Ontology(testutil.RandomOptions{Terms: 300, MaxParents: 3})

	for term := range ont.Terms() {
		expected := idset.Set[model.TermID]{}
		for pid := range term.Parents().All() {
			parent := ont.MustTerm(pid)
			assert.True(t, parent.Children().Contains(term.ID()))
			expected.Merge(parent.Ancestors())
			expected.Insert(pid)
		}
		assert.True(t, expected.Equal(term.Ancestors()), "term %s", term.ID())
		assert.False(t, term.Ancestors().Contains(term.ID()))
		for cid := range term.Children().All() {
			assert.True(t, ont.MustTerm(cid).Parents().Contains(term.ID()))
		}
	}
}

func TestOntology_AnnotationPropagation(t *testing.T) {
	ont := testutil.Small()

	// FBN1 is linked to HP:0000234 and HP:0001250.
	withFBN1 := idset.New[model.TermID](234, 152, 118, 1, 1250, 707)
	for term := range ont.Terms() {
		assert.Equal(t, withFBN1.Contains(term.ID()), term.Genes().Contains(2200), "term %s", term.ID())
	}

	omim := ont.MustTerm(6).Diseases(model.Omim)
	assert.True(t, omim.Contains(154700))
	assert.True(t, ont.MustTerm(5).Diseases(model.Omim).Contains(154700))
	assert.False(t, ont.MustTerm(118).Diseases(model.Orpha).Contains(154700))
}

func TestOntology_InformationContent(t *testing.T) {
	ont := testutil.Small()
	assert.Equal(t, ontology.AnnotationCounts{Genes: 3, Omim: 2, Orpha: 2}, ont.Population())

	root := ont.MustTerm(model.RootTermID)
	assert.Zero(t, root.IC(model.ICGene))
	assert.Zero(t, root.IC(model.ICOmim))
	assert.Zero(t, root.IC(model.ICOrpha))

	assert.InDelta(t, 0.405465, ont.MustTerm(1250).IC(model.ICGene), 1e-5)
	assert.InDelta(t, 1.098612, ont.MustTerm(6).IC(model.ICGene), 1e-5)

	rnd := testutil.NewRNG(3).Ontology(testutil.RandomOptions{Terms: 500, Genes: 100, Omim: 50, Orpha: 30})
	for term := range rnd.Terms() {
		ic := term.InformationContent()
		assert.GreaterOrEqual(t, ic.Gene, float32(0))
		assert.GreaterOrEqual(t, ic.Omim, float32(0))
		assert.GreaterOrEqual(t, ic.Orpha, float32(0))
	}
	assert.Zero(t, rnd.MustTerm(model.RootTermID).IC(model.ICGene))
}

func TestTerm_Relations(t *testing.T) {
	ont := testutil.Small()
	spasm := ont.MustTerm(11097)
	seizure := ont.MustTerm(1250)
	nervous := ont.MustTerm(707)
	head := ont.MustTerm(234)

	assert.True(t, seizure.IsParentOf(spasm))
	assert.True(t, spasm.IsChildOf(seizure))
	assert.True(t, nervous.IsAncestorOf(spasm))
	assert.False(t, nervous.IsParentOf(spasm))
	assert.True(t, spasm.IsDescendantOf(nervous))
	assert.False(t, head.IsAncestorOf(spasm))

	assert.Equal(t, idset.New[model.TermID](1, 118, 707), seizure.CommonAncestors(ont.MustTerm(12639)))
	assert.Equal(t, idset.New[model.TermID](1, 118, 707), nervous.CommonAncestors(spasm))
	assert.Equal(t, idset.New[model.TermID](1, 118, 707), spasm.CommonAncestors(nervous))
	assert.Equal(t, idset.New[model.TermID](1, 118, 707, 1250), seizure.CommonAncestors(seizure))
	assert.Equal(t, idset.New[model.TermID](1, 118, 152, 707), head.UnionAncestors(seizure))
}

func TestTerm_ShortestPathLength(t *testing.T) {
	ont := testutil.Small()

	tests := []struct {
		a, b model.TermID
		want int
	}{
		{1250, 1250, 0},
		{1250, 12639, 2},
		{234, 1250, 4},
		{6, 234, 5},
		{11097, 707, 2},
		{707, 11097, 2},
		{11097, 1, 4},
	}
	for _, tt := range tests {
		got, ok := ont.MustTerm(tt.a).ShortestPathLength(ont.MustTerm(tt.b))
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.a, tt.b)
	}
}

func TestTerm_Obsolete(t *testing.T) {
	ont := testutil.Small()

	fits := ont.MustTerm(9999)
	assert.True(t, fits.IsObsolete())
	r, ok := fits.Replacement()
	require.True(t, ok)
	assert.Equal(t, model.TermID(1250), r.ID())

	head := ont.MustTerm(9998)
	assert.True(t, head.IsObsolete())
	_, ok = head.Replacement()
	assert.False(t, ok)
	assert.Zero(t, head.ReplacementID())

	assert.False(t, ont.MustTerm(1250).IsObsolete())
}
