package testutil

import (
	"fmt"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

// Term ids of the Chain fixture.
const (
	ChainRoot   model.TermID = 1
	ChainPheno  model.TermID = 118
	ChainMiddle model.TermID = 707
	ChainLeaf   model.TermID = 12639

	// ChainGene is linked to ChainLeaf.
	ChainGene model.GeneID = 5
)

// Chain returns a four-term chain with gene 5 "FooBar" linked to the leaf.
func Chain() *ontology.Ontology {
	b := ontology.NewBuilder(4)
	b.SetRelease(model.ReleaseVersion{Year: 2024, Month: 4, Day: 26})
	must(b.AddTerm(ChainRoot, "All"))
	must(b.AddTerm(ChainPheno, "Phenotypic abnormality"))
	must(b.AddTerm(ChainMiddle, "Abnormality of the nervous system"))
	must(b.AddTerm(ChainLeaf, "Abnormal nervous system morphology"))

	tb := b.Terms()
	must(tb.Connect(ChainRoot, ChainPheno))
	must(tb.Connect(ChainPheno, ChainMiddle))
	must(tb.Connect(ChainMiddle, ChainLeaf))

	cb, err := tb.CacheAncestors()
	must(err)
	must(cb.AddGene(ChainGene, "FooBar"))
	must(cb.LinkGene(ChainGene, ChainLeaf))
	must(cb.AddDisease(model.Omim, 100, "Chain syndrome"))
	must(cb.LinkDisease(model.Omim, 100, ChainLeaf))

	return cb.Build()
}

// SmallTerm is a term of the Small fixture.
type SmallTerm struct {
	ID          model.TermID
	Name        string
	Parents     []model.TermID
	Obsolete    bool
	Replacement model.TermID
}

// SmallTerms lists the terms of the Small fixture. HP:0011097 has two
// parents and forms a diamond below HP:0000707.
var SmallTerms = []SmallTerm{
	{ID: 1, Name: "All"},
	{ID: 5, Name: "Mode of inheritance", Parents: []model.TermID{1}},
	{ID: 6, Name: "Autosomal dominant inheritance", Parents: []model.TermID{5}},
	{ID: 118, Name: "Phenotypic abnormality", Parents: []model.TermID{1}},
	{ID: 152, Name: "Abnormality of head or neck", Parents: []model.TermID{118}},
	{ID: 234, Name: "Abnormality of the head", Parents: []model.TermID{152}},
	{ID: 707, Name: "Abnormality of the nervous system", Parents: []model.TermID{118}},
	{ID: 1250, Name: "Seizure", Parents: []model.TermID{707}},
	{ID: 12639, Name: "Abnormal nervous system morphology", Parents: []model.TermID{707}},
	{ID: 11097, Name: "Epileptic spasm", Parents: []model.TermID{1250, 12639}},
	{ID: 9998, Name: "obsolete Head finding", Parents: []model.TermID{152}, Obsolete: true},
	{ID: 9999, Name: "obsolete Fits", Parents: []model.TermID{707}, Obsolete: true, Replacement: 1250},
}

// SmallAnnotation is a gene or disease of the Small fixture.
type SmallAnnotation struct {
	ID    uint32
	Name  string
	Terms []model.TermID
}

// Annotations of the Small fixture. Gene 7000 has no terms.
var (
	SmallGenes = []SmallAnnotation{
		{ID: 5, Name: "FooBar", Terms: []model.TermID{12639}},
		{ID: 2200, Name: "FBN1", Terms: []model.TermID{234, 1250}},
		{ID: 4000, Name: "LMNA", Terms: []model.TermID{11097, 6}},
		{ID: 7000, Name: "ORPHANGENE"},
	}
	SmallOmim = []SmallAnnotation{
		{ID: 154700, Name: "Marfan syndrome", Terms: []model.TermID{234, 6}},
		{ID: 607939, Name: "Epilepsy, familial", Terms: []model.TermID{1250, 11097}},
	}
	SmallOrpha = []SmallAnnotation{
		{ID: 558, Name: "Marfan syndrome", Terms: []model.TermID{234}},
		{ID: 166, Name: "West syndrome", Terms: []model.TermID{11097}},
	}
)

// Small returns a fixture with two branches, a diamond, obsolete terms,
// genes and diseases of both kinds.
func Small() *ontology.Ontology {
	return SmallWith()
}

// SmallWith is Small with custom build options.
func SmallWith(optFns ...func(o *ontology.BuildOptions)) *ontology.Ontology {
	b := ontology.NewBuilder(len(SmallTerms))
	b.SetRelease(model.ReleaseVersion{Year: 2025, Month: 1, Day: 16})
	for _, t := range SmallTerms {
		must(b.AddTerm(t.ID, t.Name))
	}

	tb := b.Terms()
	for _, t := range SmallTerms {
		for _, p := range t.Parents {
			must(tb.Connect(p, t.ID))
		}
		if t.Obsolete {
			must(tb.SetObsolete(t.ID, t.Replacement))
		}
	}

	cb, err := tb.CacheAncestors()
	must(err)
	for _, g := range SmallGenes {
		must(cb.AddGene(model.GeneID(g.ID), g.Name))
		for _, t := range g.Terms {
			must(cb.LinkGene(model.GeneID(g.ID), t))
		}
	}
	for _, kind := range []model.DiseaseKind{model.Omim, model.Orpha} {
		list := SmallOmim
		if kind == model.Orpha {
			list = SmallOrpha
		}
		for _, d := range list {
			must(cb.AddDisease(kind, model.DiseaseID(d.ID), d.Name))
			for _, t := range d.Terms {
				must(cb.LinkDisease(kind, model.DiseaseID(d.ID), t))
			}
		}
	}
	return cb.Build(optFns...)
}

// RandomOptions controls the shape of a random ontology.
type RandomOptions struct {
	Terms      int
	MaxParents int
	Genes      int
	Omim       int
	Orpha      int
	// TermsPerAnnotation is the maximum number of terms linked to each
	// gene or disease.
	TermsPerAnnotation int
	// ObsoleteEvery marks every n-th term obsolete. 0 disables it.
	ObsoleteEvery int
}

// Ontology generates a random DAG rooted at HP:0000001. Term i only gets
// parents with smaller ids, so the graph is acyclic. Annotations pick
// terms with a Zipf distribution.
func (r *RNG) Ontology(opts RandomOptions) *ontology.Ontology {
	if opts.Terms < 1 {
		opts.Terms = 1
	}
	if opts.MaxParents < 1 {
		opts.MaxParents = 2
	}
	if opts.TermsPerAnnotation < 1 {
		opts.TermsPerAnnotation = 4
	}

	b := ontology.NewBuilder(opts.Terms)
	b.SetRelease(model.ReleaseVersion{Year: 2024, Month: 1, Day: 1})
	for i := 1; i <= opts.Terms; i++ {
		must(b.AddTerm(model.TermID(i), fmt.Sprintf("Term %d", i))) //nolint:gosec // bounded by opts.Terms
	}

	tb := b.Terms()
	for i := 2; i <= opts.Terms; i++ {
		child := model.TermID(i) //nolint:gosec // bounded by opts.Terms
		n := 1 + r.Intn(opts.MaxParents)
		for range n {
			must(tb.Connect(model.TermID(1+r.Intn(i-1)), child)) //nolint:gosec // bounded by opts.Terms
		}
		if opts.ObsoleteEvery > 0 && i%opts.ObsoleteEvery == 0 {
			must(tb.SetObsolete(child, model.TermID(1+r.Intn(i-1)))) //nolint:gosec // bounded by opts.Terms
		}
	}

	cb, err := tb.CacheAncestors()
	must(err)

	pick := func() model.TermID {
		// Zipf over the reversed id range favors deep, specific terms.
		return model.TermID(opts.Terms - r.Zipf(opts.Terms, 1.1)) //nolint:gosec // bounded by opts.Terms
	}
	for g := 1; g <= opts.Genes; g++ {
		id := model.GeneID(g) //nolint:gosec // bounded by opts.Genes
		must(cb.AddGene(id, fmt.Sprintf("GENE%d", g)))
		for range 1 + r.Intn(opts.TermsPerAnnotation) {
			must(cb.LinkGene(id, pick()))
		}
	}
	for _, kind := range []model.DiseaseKind{model.Omim, model.Orpha} {
		count := opts.Omim
		if kind == model.Orpha {
			count = opts.Orpha
		}
		for d := 1; d <= count; d++ {
			id := model.DiseaseID(d) //nolint:gosec // bounded by the disease count
			must(cb.AddDisease(kind, id, fmt.Sprintf("%s disease %d", kind, d)))
			for range 1 + r.Intn(opts.TermsPerAnnotation) {
				must(cb.LinkDisease(kind, id, pick()))
			}
		}
	}
	return cb.Build()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
