package ontology

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/model"
)

// TermSet is a collection of terms of one ontology, such as the findings
// of a patient or the annotations of a disease.
type TermSet struct {
	o   *Ontology
	ids idset.Set[model.TermID]
}

// Ontology returns the ontology the set belongs to.
func (s TermSet) Ontology() *Ontology { return s.o }

// Len returns the number of terms.
func (s TermSet) Len() int { return s.ids.Len() }

// IsEmpty reports whether the set holds no terms.
func (s TermSet) IsEmpty() bool { return s.ids.IsEmpty() }

// IDs returns the term ids in ascending order.
func (s TermSet) IDs() idset.Set[model.TermID] { return s.ids }

// Contains reports whether id is in the set.
func (s TermSet) Contains(id model.TermID) bool { return s.ids.Contains(id) }

// Terms iterates over the terms in ascending id order.
func (s TermSet) Terms() iter.Seq[Term] {
	return func(yield func(Term) bool) {
		for id := range s.ids.All() {
			if !yield(s.o.MustTerm(id)) {
				return
			}
		}
	}
}

// Union returns the terms present in either set.
func (s TermSet) Union(other TermSet) TermSet {
	return TermSet{o: s.o, ids: s.ids.Union(other.ids)}
}

// Intersection returns the terms present in both sets.
func (s TermSet) Intersection(other TermSet) TermSet {
	return TermSet{o: s.o, ids: s.ids.Intersection(other.ids)}
}

// WithoutObsolete returns the set without obsolete terms.
func (s TermSet) WithoutObsolete() TermSet {
	out := idset.WithCapacity[model.TermID](s.ids.Len())
	for t := range s.Terms() {
		if !t.IsObsolete() {
			out.Insert(t.ID())
		}
	}
	return TermSet{o: s.o, ids: out}
}

// ReplaceObsolete returns the set with every obsolete term swapped for its
// replacement. Obsolete terms without a replacement are kept.
func (s TermSet) ReplaceObsolete() TermSet {
	out := idset.WithCapacity[model.TermID](s.ids.Len())
	for t := range s.Terms() {
		if r, ok := t.Replacement(); ok && t.IsObsolete() {
			out.Insert(r.ID())
			continue
		}
		out.Insert(t.ID())
	}
	return TermSet{o: s.o, ids: out}
}

// MostSpecific returns the set without terms that are ancestors of other
// members.
func (s TermSet) MostSpecific() TermSet {
	var covered idset.Set[model.TermID]
	for t := range s.Terms() {
		covered.Merge(t.Ancestors())
	}
	return TermSet{o: s.o, ids: s.ids.Difference(covered)}
}

// Genes returns the genes linked to any term of the set.
func (s TermSet) Genes() idset.Set[model.GeneID] {
	var out idset.Set[model.GeneID]
	for t := range s.Terms() {
		out.Merge(t.Genes())
	}
	return out
}

// Diseases returns the diseases of one kind linked to any term of the
// set.
func (s TermSet) Diseases(kind model.DiseaseKind) idset.Set[model.DiseaseID] {
	var out idset.Set[model.DiseaseID]
	for t := range s.Terms() {
		out.Merge(t.Diseases(kind))
	}
	return out
}

// GeneBitmap returns the genes of Genes as a bitmap, for fast coverage
// tests over many candidates.
func (s TermSet) GeneBitmap() *roaring.Bitmap {
	bm := roaring.New()
	for t := range s.Terms() {
		addAll(bm, t.Genes())
	}
	return bm
}

// DiseaseBitmap returns the diseases of Diseases(kind) as a bitmap.
func (s TermSet) DiseaseBitmap(kind model.DiseaseKind) *roaring.Bitmap {
	bm := roaring.New()
	for t := range s.Terms() {
		addAll(bm, t.Diseases(kind))
	}
	return bm
}

func addAll[T idset.ID](bm *roaring.Bitmap, ids idset.Set[T]) {
	for id := range ids.All() {
		bm.Add(uint32(id))
	}
}
