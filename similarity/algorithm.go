package similarity

import (
	"math"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

// Algorithm scores a pair of terms of the same ontology.
// Implementations must be symmetric and safe for concurrent use.
type Algorithm interface {
	Name() string
	Score(a, b ontology.Term) float32
}

// Resnik is the highest IC among the common ancestors. A term counts as
// its own ancestor when compared with itself or with a descendant, so
// Resnik(t, t) equals IC(t).
type Resnik struct {
	Kind model.InformationContentKind
}

// Name returns "resnik".
func (Resnik) Name() string { return "resnik" }

// Score implements Algorithm.
func (r Resnik) Score(a, b ontology.Term) float32 {
	return resnik(a, b, r.Kind)
}

func resnik(a, b ontology.Term, kind model.InformationContentKind) float32 {
	o := a.Ontology()
	var best float32
	for id := range a.CommonAncestors(b).All() {
		if ic := o.MustTerm(id).IC(kind); ic > best {
			best = ic
		}
	}
	return best
}

// Lin normalizes Resnik by the IC of both terms.
type Lin struct {
	Kind model.InformationContentKind
}

// Name returns "lin".
func (Lin) Name() string { return "lin" }

// Score implements Algorithm.
func (l Lin) Score(a, b ontology.Term) float32 {
	return lin(a, b, l.Kind)
}

func lin(a, b ontology.Term, kind model.InformationContentKind) float32 {
	denom := a.IC(kind) + b.IC(kind)
	if denom == 0 {
		return 0
	}
	return 2 * resnik(a, b, kind) / denom
}

// Jc is the Jiang-Conrath similarity.
type Jc struct {
	Kind model.InformationContentKind
}

// Name returns "jc".
func (Jc) Name() string { return "jc" }

// Score implements Algorithm.
func (j Jc) Score(a, b ontology.Term) float32 {
	if a.ID() == b.ID() {
		return 1
	}
	return 1 - (a.IC(j.Kind) + b.IC(j.Kind) - 2*resnik(a, b, j.Kind))
}

// GraphIC is the IC of the shared ancestry relative to the IC of the
// combined ancestry.
type GraphIC struct {
	Kind model.InformationContentKind
}

// Name returns "graphic".
func (GraphIC) Name() string { return "graphic" }

// Score implements Algorithm.
func (g GraphIC) Score(a, b ontology.Term) float32 {
	if a.ID() == b.ID() {
		return 1
	}
	o := a.Ontology()

	var union float32
	for id := range a.UnionAncestors(b).All() {
		union += o.MustTerm(id).IC(g.Kind)
	}
	if union == 0 {
		return 0
	}

	var common float32
	for id := range a.CommonAncestors(b).All() {
		common += o.MustTerm(id).IC(g.Kind)
	}
	return common / union
}

// Relevance weights Lin by the probability mass of the Resnik ancestor.
type Relevance struct {
	Kind model.InformationContentKind
}

// Name returns "relevance".
func (Relevance) Name() string { return "relevance" }

// Score implements Algorithm.
func (r Relevance) Score(a, b ontology.Term) float32 {
	res := resnik(a, b, r.Kind)
	return lin(a, b, r.Kind) * (1 - float32(math.Exp(float64(-res))))
}

// InformationCoefficient weights Lin by 1 - 1/(1+Resnik).
type InformationCoefficient struct {
	Kind model.InformationContentKind
}

// Name returns "ic".
func (InformationCoefficient) Name() string { return "ic" }

// Score implements Algorithm.
func (c InformationCoefficient) Score(a, b ontology.Term) float32 {
	res := resnik(a, b, c.Kind)
	return lin(a, b, c.Kind) * (1 - 1/(1+res))
}

// Distance is 1/(1+d) where d is the number of edges on the shortest path
// between both terms through a common ancestor. It does not use IC.
type Distance struct{}

// Name returns "distance".
func (Distance) Name() string { return "distance" }

// Score implements Algorithm.
func (Distance) Score(a, b ontology.Term) float32 {
	d, ok := a.ShortestPathLength(b)
	if !ok {
		return 0
	}
	return 1 / (1 + float32(d))
}

// Func adapts an ordinary function to Algorithm.
type Func struct {
	Label string
	Fn    func(a, b ontology.Term) float32
}

// Name returns the label.
func (f Func) Name() string { return f.Label }

// Score calls Fn.
func (f Func) Score(a, b ontology.Term) float32 { return f.Fn(a, b) }
