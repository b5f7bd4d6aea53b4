package ontology

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/arena"
	"github.com/hupe1980/hpograph/model"
)

// Changes lists the ids that were added, removed or modified between two
// ontologies. Every list is in ascending order.
type Changes[T idset.ID] struct {
	Added   []T
	Removed []T
	Changed []T
}

// IsEmpty reports whether nothing changed.
func (c Changes[T]) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Comparison is the difference between two ontologies.
type Comparison struct {
	OldRelease model.ReleaseVersion
	NewRelease model.ReleaseVersion

	// Terms changed if their name, parents, obsolete flag or replacement differ.
	Terms Changes[model.TermID]
	// Genes and diseases changed if their name or directly linked terms differ.
	Genes Changes[model.GeneID]
	Omim  Changes[model.DiseaseID]
	Orpha Changes[model.DiseaseID]
}

// IsEmpty reports whether both ontologies hold the same data.
func (c Comparison) IsEmpty() bool {
	return c.Terms.IsEmpty() && c.Genes.IsEmpty() && c.Omim.IsEmpty() && c.Orpha.IsEmpty()
}

// Diseases returns the disease changes of one kind.
func (c Comparison) Diseases(kind model.DiseaseKind) Changes[model.DiseaseID] {
	if kind == model.Orpha {
		return c.Orpha
	}
	return c.Omim
}

// Compare reports the differences from old to cur.
func Compare(old, cur *Ontology) Comparison {
	return Comparison{
		OldRelease: old.release,
		NewRelease: cur.release,
		Terms: diff(old.termIDs, cur.termIDs, func(id model.TermID) bool {
			return termChanged(old.terms.MustGet(id), cur.terms.MustGet(id))
		}),
		Genes: diff(old.geneIDs, cur.geneIDs, func(id model.GeneID) bool {
			a, b := old.genes[id], cur.genes[id]
			return a.Name != b.Name || !a.Terms.Equal(b.Terms)
		}),
		Omim:  diffDiseases(old, cur, model.Omim),
		Orpha: diffDiseases(old, cur, model.Orpha),
	}
}

func diffDiseases(old, cur *Ontology, kind model.DiseaseKind) Changes[model.DiseaseID] {
	ot, nt := &old.diseases[kindIndex(kind)], &cur.diseases[kindIndex(kind)]
	return diff(ot.ids, nt.ids, func(id model.DiseaseID) bool {
		a, b := ot.byID[id], nt.byID[id]
		return a.Name != b.Name || !a.Terms.Equal(b.Terms)
	})
}

func termChanged(a, b *arena.Node) bool {
	return a.Name != b.Name ||
		a.Obsolete != b.Obsolete ||
		a.Replacement != b.Replacement ||
		!a.Parents.Equal(b.Parents)
}

func diff[T idset.ID](old, cur []T, changed func(T) bool) Changes[T] {
	ob, nb := bitmapOf(old), bitmapOf(cur)

	c := Changes[T]{
		Added:   idsOf[T](roaring.AndNot(nb, ob)),
		Removed: idsOf[T](roaring.AndNot(ob, nb)),
	}
	it := roaring.And(ob, nb).Iterator()
	for it.HasNext() {
		if id := T(it.Next()); changed(id) {
			c.Changed = append(c.Changed, id)
		}
	}
	return c
}

func bitmapOf[T idset.ID](ids []T) *roaring.Bitmap {
	bm := roaring.New()
	for _, id := range ids {
		bm.Add(uint32(id))
	}
	return bm
}

func idsOf[T idset.ID](bm *roaring.Bitmap) []T {
	if bm.IsEmpty() {
		return nil
	}
	out := make([]T, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, T(it.Next()))
	}
	return out
}
