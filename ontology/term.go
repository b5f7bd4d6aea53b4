package ontology

import (
	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/arena"
	"github.com/hupe1980/hpograph/model"
)

// Term is a read-only view of one term of an Ontology. The zero Term is
// not usable.
type Term struct {
	o *Ontology
	n *arena.Node
}

// ID returns the term id.
func (t Term) ID() model.TermID { return t.n.ID }

// Name returns the term name.
func (t Term) Name() string { return t.n.Name }

// String returns "HP:0000118 | Phenotypic abnormality".
func (t Term) String() string { return t.n.ID.String() + " | " + t.n.Name }

// Ontology returns the ontology the term belongs to.
func (t Term) Ontology() *Ontology { return t.o }

// Parents returns the direct parents.
func (t Term) Parents() idset.Set[model.TermID] { return t.n.Parents }

// Children returns the direct children.
func (t Term) Children() idset.Set[model.TermID] { return t.n.Children }

// Ancestors returns all transitive parents. The term itself is never
// included.
func (t Term) Ancestors() idset.Set[model.TermID] { return t.n.Ancestors }

// Genes returns the genes annotated to this term or any descendant.
func (t Term) Genes() idset.Set[model.GeneID] { return t.n.Genes }

// Diseases returns the diseases of one kind annotated to this term or any
// descendant.
func (t Term) Diseases(kind model.DiseaseKind) idset.Set[model.DiseaseID] {
	return t.n.Diseases(kind)
}

// Counts returns the number of linked genes and diseases.
func (t Term) Counts() AnnotationCounts {
	return AnnotationCounts(arena.CountsOf(t.n))
}

// InformationContent returns the IC values of every kind.
func (t Term) InformationContent() model.InformationContent { return t.n.IC }

// IC returns the information content of one kind.
func (t Term) IC(kind model.InformationContentKind) float32 { return t.n.IC.Get(kind) }

// IsObsolete reports whether the term is marked obsolete.
func (t Term) IsObsolete() bool { return t.n.Obsolete }

// Replacement returns the term that replaces an obsolete term.
func (t Term) Replacement() (Term, bool) {
	if t.n.Replacement == 0 {
		return Term{}, false
	}
	return t.o.MustTerm(t.n.Replacement), true
}

// ReplacementID returns the replacement id, or 0 if there is none.
func (t Term) ReplacementID() model.TermID { return t.n.Replacement }

// IsParentOf reports whether t is a direct parent of other.
func (t Term) IsParentOf(other Term) bool { return other.n.Parents.Contains(t.n.ID) }

// IsChildOf reports whether t is a direct child of other.
func (t Term) IsChildOf(other Term) bool { return t.n.Parents.Contains(other.n.ID) }

// IsAncestorOf reports whether t is a transitive parent of other.
func (t Term) IsAncestorOf(other Term) bool { return other.n.Ancestors.Contains(t.n.ID) }

// IsDescendantOf reports whether other is a transitive parent of t.
func (t Term) IsDescendantOf(other Term) bool { return t.n.Ancestors.Contains(other.n.ID) }

// CommonAncestors returns the ancestors shared by both terms. If one term
// is an ancestor of the other, or both are the same term, that term is
// included as well.
func (t Term) CommonAncestors(other Term) idset.Set[model.TermID] {
	common := t.n.Ancestors.Intersection(other.n.Ancestors)
	if t.n.ID == other.n.ID || other.n.Ancestors.Contains(t.n.ID) {
		common.Insert(t.n.ID)
	}
	if t.n.Ancestors.Contains(other.n.ID) {
		common.Insert(other.n.ID)
	}
	return common
}

// UnionAncestors returns the ancestors of either term.
func (t Term) UnionAncestors(other Term) idset.Set[model.TermID] {
	return t.n.Ancestors.Union(other.n.Ancestors)
}

// ShortestPathLength returns the number of edges on the shortest path
// between both terms that passes through a common ancestor. It reports
// false if the terms share no ancestor.
func (t Term) ShortestPathLength(other Term) (int, bool) {
	if t.n.ID == other.n.ID {
		return 0, true
	}
	da := t.o.distancesUp(t.n.ID)
	db := t.o.distancesUp(other.n.ID)
	if len(db) < len(da) {
		da, db = db, da
	}

	best, found := 0, false
	for id, d := range da {
		if e, ok := db[id]; ok && (!found || d+e < best) {
			best, found = d+e, true
		}
	}
	return best, found
}

// distancesUp returns the edge distance from id to itself and to each of
// its ancestors.
func (o *Ontology) distancesUp(id model.TermID) map[model.TermID]int {
	start := o.terms.MustGet(id)
	dist := make(map[model.TermID]int, start.Ancestors.Len()+1)
	dist[id] = 0
	queue := []model.TermID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for pid := range o.terms.MustGet(cur).Parents.All() {
			if _, seen := dist[pid]; !seen {
				dist[pid] = dist[cur] + 1
				queue = append(queue, pid)
			}
		}
	}
	return dist
}
