package ontology

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/arena"
	"github.com/hupe1980/hpograph/model"
)

// Gene is a gene and the terms it is directly annotated with.
type Gene struct {
	ID    model.GeneID
	Name  string
	Terms idset.Set[model.TermID]
}

// Disease is a disease of one namespace and the terms it is directly
// annotated with.
type Disease struct {
	Kind  model.DiseaseKind
	ID    model.DiseaseID
	Name  string
	Terms idset.Set[model.TermID]
}

type diseaseTable struct {
	byID map[model.DiseaseID]*Disease
	ids  []model.DiseaseID
}

// Ontology is a frozen term graph with gene and disease annotations.
type Ontology struct {
	terms   *arena.Arena
	termIDs []model.TermID

	genes   map[model.GeneID]*Gene
	geneIDs []model.GeneID

	diseases [2]diseaseTable
	release  model.ReleaseVersion
	totals   AnnotationCounts
}

func freeze(st *state) *Ontology {
	for n := range st.terms.All() {
		clip(&n.Parents)
		clip(&n.Children)
		clip(&n.Ancestors)
		clip(&n.Genes)
		clip(&n.Omim)
		clip(&n.Orpha)
	}

	o := &Ontology{
		terms:   st.terms,
		termIDs: st.terms.IDs(),
		genes:   st.genes,
		release: st.release,
		totals:  populationOf(st),
	}

	o.geneIDs = make([]model.GeneID, 0, len(st.genes))
	for id, g := range st.genes {
		clip(&g.Terms)
		o.geneIDs = append(o.geneIDs, id)
	}
	slices.Sort(o.geneIDs)

	for k, table := range st.diseases {
		ids := make([]model.DiseaseID, 0, len(table))
		for id, d := range table {
			clip(&d.Terms)
			ids = append(ids, id)
		}
		slices.Sort(ids)
		o.diseases[k] = diseaseTable{byID: table, ids: ids}
	}
	return o
}

// Len returns the number of terms.
func (o *Ontology) Len() int { return len(o.termIDs) }

// Release returns the release version stamp. It is zero if unknown.
func (o *Ontology) Release() model.ReleaseVersion { return o.release }

// Population returns the number of genes and diseases that are linked to
// at least one term. These are the totals used for information content.
func (o *Ontology) Population() AnnotationCounts { return o.totals }

// Term returns the term with the given id.
func (o *Ontology) Term(id model.TermID) (Term, error) {
	n, ok := o.terms.Get(id)
	if !ok {
		return Term{}, fmt.Errorf("%w: term %s", ErrNotFound, id)
	}
	return Term{o: o, n: n}, nil
}

// MustTerm returns the term with the given id. It panics if the term
// does not exist.
func (o *Ontology) MustTerm(id model.TermID) Term {
	t, err := o.Term(id)
	if err != nil {
		panic(err)
	}
	return t
}

// HasTerm reports whether a term with the given id exists.
func (o *Ontology) HasTerm(id model.TermID) bool { return o.terms.Contains(id) }

// Root returns the root term HP:0000001.
func (o *Ontology) Root() (Term, error) { return o.Term(model.RootTermID) }

// Terms iterates over all terms in ascending id order.
func (o *Ontology) Terms() iter.Seq[Term] {
	return func(yield func(Term) bool) {
		for _, id := range o.termIDs {
			if !yield(Term{o: o, n: o.terms.MustGet(id)}) {
				return
			}
		}
	}
}

// TermIDs returns all term ids in ascending order.
func (o *Ontology) TermIDs() []model.TermID { return slices.Clone(o.termIDs) }

// Gene returns the gene with the given id.
func (o *Ontology) Gene(id model.GeneID) (Gene, error) {
	g, ok := o.genes[id]
	if !ok {
		return Gene{}, fmt.Errorf("%w: gene %s", ErrNotFound, id)
	}
	return *g, nil
}

// Genes iterates over all genes in ascending id order.
func (o *Ontology) Genes() iter.Seq[Gene] {
	return func(yield func(Gene) bool) {
		for _, id := range o.geneIDs {
			if !yield(*o.genes[id]) {
				return
			}
		}
	}
}

// GeneCount returns the number of genes.
func (o *Ontology) GeneCount() int { return len(o.geneIDs) }

// Disease returns the disease of the given kind and id.
func (o *Ontology) Disease(kind model.DiseaseKind, id model.DiseaseID) (Disease, error) {
	d, ok := o.diseases[kindIndex(kind)].byID[id]
	if !ok {
		return Disease{}, fmt.Errorf("%w: disease %s", ErrNotFound, model.FormatDiseaseID(kind, id))
	}
	return *d, nil
}

// Diseases iterates over all diseases of one kind in ascending id order.
func (o *Ontology) Diseases(kind model.DiseaseKind) iter.Seq[Disease] {
	table := &o.diseases[kindIndex(kind)]
	return func(yield func(Disease) bool) {
		for _, id := range table.ids {
			if !yield(*table.byID[id]) {
				return
			}
		}
	}
}

// DiseaseCount returns the number of diseases of one kind.
func (o *Ontology) DiseaseCount(kind model.DiseaseKind) int {
	return len(o.diseases[kindIndex(kind)].ids)
}

// TermSet returns a set of the given terms. All ids must exist.
func (o *Ontology) TermSet(ids ...model.TermID) (TermSet, error) {
	for _, id := range ids {
		if !o.terms.Contains(id) {
			return TermSet{}, fmt.Errorf("%w: term %s", ErrNotFound, id)
		}
	}
	return TermSet{o: o, ids: idset.New(ids...)}, nil
}

// GeneTerms returns the terms a gene is directly annotated with.
func (o *Ontology) GeneTerms(id model.GeneID) (TermSet, error) {
	g, ok := o.genes[id]
	if !ok {
		return TermSet{}, fmt.Errorf("%w: gene %s", ErrNotFound, id)
	}
	return TermSet{o: o, ids: g.Terms}, nil
}

// DiseaseTerms returns the terms a disease is directly annotated with.
func (o *Ontology) DiseaseTerms(kind model.DiseaseKind, id model.DiseaseID) (TermSet, error) {
	d, ok := o.diseases[kindIndex(kind)].byID[id]
	if !ok {
		return TermSet{}, fmt.Errorf("%w: disease %s", ErrNotFound, model.FormatDiseaseID(kind, id))
	}
	return TermSet{o: o, ids: d.Terms}, nil
}
