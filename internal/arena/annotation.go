package arena

import (
	"math"

	"github.com/hupe1980/hpograph/model"
)

// LinkGene annotates term and all of its cached ancestors with gene. It
// panics if term is unknown.
func (a *Arena) LinkGene(gene model.GeneID, term model.TermID) {
	n := a.MustGet(term)
	if !n.Genes.Insert(gene) {
		return
	}
	for pid := range n.Ancestors.All() {
		a.MustGet(pid).Genes.Insert(gene)
	}
}

// LinkDisease annotates term and all of its cached ancestors with a
// disease of the given kind. It panics if term is unknown.
func (a *Arena) LinkDisease(kind model.DiseaseKind, disease model.DiseaseID, term model.TermID) {
	n := a.MustGet(term)
	if !n.diseases(kind).Insert(disease) {
		return
	}
	for pid := range n.Ancestors.All() {
		a.MustGet(pid).diseases(kind).Insert(disease)
	}
}

// Totals is the annotated population per kind.
type Totals struct {
	Genes int
	Omim  int
	Orpha int
}

// Counts is the number of annotations of a single term.
type Counts struct {
	Genes int
	Omim  int
	Orpha int
}

// CountsOf returns the annotation counts of n.
func CountsOf(n *Node) Counts {
	return Counts{Genes: n.Genes.Len(), Omim: n.Omim.Len(), Orpha: n.Orpha.Len()}
}

// CustomFunc derives a custom IC value for a term.
type CustomFunc func(id model.TermID, counts Counts, totals Totals) float32

// ComputeInformationContent sets the gene, OMIM and ORPHA IC of every node.
// If custom is not nil it also sets the custom IC.
func (a *Arena) ComputeInformationContent(totals Totals, custom CustomFunc) {
	for i := range a.nodes {
		n := &a.nodes[i]
		n.IC.Gene = InformationContent(n.Genes.Len(), totals.Genes)
		n.IC.Omim = InformationContent(n.Omim.Len(), totals.Omim)
		n.IC.Orpha = InformationContent(n.Orpha.Len(), totals.Orpha)
		if custom != nil {
			v := custom(n.ID, CountsOf(n), totals)
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				v = 0
			}
			n.IC.Custom = v
		}
	}
}

// InformationContent returns -ln(local/total), or 0 if either count is zero.
func InformationContent(local, total int) float32 {
	if total <= 0 || local <= 0 || local >= total {
		return 0
	}
	return float32(math.Log(float64(total) / float64(local)))
}
