package similarity

import (
	"github.com/hupe1980/hpograph/ontology"
)

// Pairwise scores every term of a against every term of b. Rows follow a
// and columns follow b, both in ascending id order.
func Pairwise(alg Algorithm, a, b ontology.TermSet) *Matrix {
	m := NewMatrix(a.Len(), b.Len())
	if m.IsEmpty() {
		return m
	}
	cols := make([]ontology.Term, 0, b.Len())
	for t := range b.Terms() {
		cols = append(cols, t)
	}
	i := 0
	for ta := range a.Terms() {
		row := m.Row(i)
		for j, tb := range cols {
			row[j] = alg.Score(ta, tb)
		}
		i++
	}
	return m
}

// Group scores two term sets with a pair algorithm and a combiner.
type Group struct {
	Algorithm Algorithm
	Combiner  Combiner
}

// NewGroup returns a Group.
func NewGroup(alg Algorithm, c Combiner) Group {
	return Group{Algorithm: alg, Combiner: c}
}

// Matrix returns the pairwise scores of a and b.
func (g Group) Matrix(a, b ontology.TermSet) *Matrix {
	return Pairwise(g.Algorithm, a, b)
}

// Score returns the combined similarity of a and b. Either set being
// empty yields 0.
func (g Group) Score(a, b ontology.TermSet) float32 {
	return g.Combiner.Combine(g.Matrix(a, b))
}
