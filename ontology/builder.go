package ontology

import (
	"fmt"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/arena"
	"github.com/hupe1980/hpograph/model"
)

// state is the data shared by all builder stages. Exactly one stage owns
// it at any time.
type state struct {
	terms    *arena.Arena
	release  model.ReleaseVersion
	genes    map[model.GeneID]*Gene
	diseases [2]map[model.DiseaseID]*Disease
}

func consumed(stage string) {
	panic(fmt.Errorf("%w: %s", ErrBuilderConsumed, stage))
}

// LooseBuilder collects raw terms. It is the first stage.
type LooseBuilder struct {
	st *state
}

// NewBuilder starts a new ontology. capacity is a hint for the number of
// terms.
func NewBuilder(capacity int) *LooseBuilder {
	return &LooseBuilder{st: &state{
		terms: arena.New(capacity),
		genes: make(map[model.GeneID]*Gene),
		diseases: [2]map[model.DiseaseID]*Disease{
			make(map[model.DiseaseID]*Disease),
			make(map[model.DiseaseID]*Disease),
		},
	}}
}

func (b *LooseBuilder) state() *state {
	if b.st == nil {
		consumed("loose builder")
	}
	return b.st
}

// SetRelease stamps the ontology with the release it was built from.
func (b *LooseBuilder) SetRelease(v model.ReleaseVersion) {
	b.state().release = v
}

// AddTerm inserts a term. Id 0 is reserved.
func (b *LooseBuilder) AddTerm(id model.TermID, name string) error {
	st := b.state()
	if id == 0 {
		return fmt.Errorf("%w: term id 0 is reserved", model.ErrInvalidID)
	}
	if !st.terms.Insert(id, name) {
		return fmt.Errorf("%w: term %s", ErrDuplicate, id)
	}
	return nil
}

// Len returns the number of terms added so far.
func (b *LooseBuilder) Len() int {
	return b.state().terms.Len()
}

// Terms declares that every term is present and advances to the edge
// stage.
func (b *LooseBuilder) Terms() *TermsBuilder {
	st := b.state()
	b.st = nil
	return &TermsBuilder{st: st}
}

// TermsBuilder adds parent edges and obsolete markers. It is the second
// stage.
type TermsBuilder struct {
	st *state
}

func (b *TermsBuilder) state() *state {
	if b.st == nil {
		consumed("terms builder")
	}
	return b.st
}

// Connect adds a parent -> child edge.
func (b *TermsBuilder) Connect(parent, child model.TermID) error {
	st := b.state()
	if !st.terms.Contains(parent) {
		return fmt.Errorf("%w: parent term %s", ErrNotFound, parent)
	}
	if !st.terms.Contains(child) {
		return fmt.Errorf("%w: child term %s", ErrNotFound, child)
	}
	st.terms.Connect(parent, child)
	return nil
}

// SetObsolete marks a term obsolete. replacement is 0 if the term has no
// replacement.
func (b *TermsBuilder) SetObsolete(id, replacement model.TermID) error {
	st := b.state()
	n, ok := st.terms.Get(id)
	if !ok {
		return fmt.Errorf("%w: term %s", ErrNotFound, id)
	}
	if replacement != 0 && !st.terms.Contains(replacement) {
		return fmt.Errorf("%w: replacement %s of %s", ErrNotFound, replacement, id)
	}
	n.Obsolete = true
	n.Replacement = replacement
	return nil
}

// CacheAncestors computes the ancestor closure of every term and advances
// to the annotation stage. The builder is consumed even if the closure
// fails.
func (b *TermsBuilder) CacheAncestors() (*ConnectedBuilder, error) {
	st := b.state()
	b.st = nil
	if err := st.terms.CacheAncestors(); err != nil {
		return nil, err
	}
	return &ConnectedBuilder{st: st}, nil
}

// ConnectedBuilder adds genes and diseases and links them to terms. It is
// the last stage.
type ConnectedBuilder struct {
	st *state
}

func (b *ConnectedBuilder) state() *state {
	if b.st == nil {
		consumed("connected builder")
	}
	return b.st
}

// AddGene inserts a gene without term links.
func (b *ConnectedBuilder) AddGene(id model.GeneID, name string) error {
	st := b.state()
	if _, ok := st.genes[id]; ok {
		return fmt.Errorf("%w: gene %s", ErrDuplicate, id)
	}
	st.genes[id] = &Gene{ID: id, Name: name}
	return nil
}

// AddDisease inserts a disease without term links.
func (b *ConnectedBuilder) AddDisease(kind model.DiseaseKind, id model.DiseaseID, name string) error {
	st := b.state()
	table := st.diseases[kindIndex(kind)]
	if _, ok := table[id]; ok {
		return fmt.Errorf("%w: disease %s", ErrDuplicate, model.FormatDiseaseID(kind, id))
	}
	table[id] = &Disease{Kind: kind, ID: id, Name: name}
	return nil
}

// LinkGene annotates term with gene. The annotation propagates to every
// ancestor of term.
func (b *ConnectedBuilder) LinkGene(gene model.GeneID, term model.TermID) error {
	st := b.state()
	g, ok := st.genes[gene]
	if !ok {
		return fmt.Errorf("%w: gene %s", ErrNotFound, gene)
	}
	if !st.terms.Contains(term) {
		return fmt.Errorf("%w: term %s", ErrNotFound, term)
	}
	g.Terms.Insert(term)
	st.terms.LinkGene(gene, term)
	return nil
}

// LinkDisease annotates term with a disease. The annotation propagates to
// every ancestor of term.
func (b *ConnectedBuilder) LinkDisease(kind model.DiseaseKind, disease model.DiseaseID, term model.TermID) error {
	st := b.state()
	d, ok := st.diseases[kindIndex(kind)][disease]
	if !ok {
		return fmt.Errorf("%w: disease %s", ErrNotFound, model.FormatDiseaseID(kind, disease))
	}
	if !st.terms.Contains(term) {
		return fmt.Errorf("%w: term %s", ErrNotFound, term)
	}
	d.Terms.Insert(term)
	st.terms.LinkDisease(kind, disease, term)
	return nil
}

// AnnotationCounts is the number of genes and diseases linked to a term,
// or the total annotated population of an ontology.
type AnnotationCounts struct {
	Genes int
	Omim  int
	Orpha int
}

// CustomInformationContentFunc derives the custom IC of a term from its
// annotation counts and the annotated population.
type CustomInformationContentFunc func(id model.TermID, counts, totals AnnotationCounts) float32

// BuildOptions configures the final build step.
type BuildOptions struct {
	// CustomInformationContent fills the custom IC kind. If nil, the custom
	// IC of every term is 0.
	CustomInformationContent CustomInformationContentFunc
}

// DefaultBuildOptions are used by Build.
var DefaultBuildOptions = BuildOptions{}

// WithCustomInformationContent sets the function deriving the custom IC.
func WithCustomInformationContent(fn CustomInformationContentFunc) func(o *BuildOptions) {
	return func(o *BuildOptions) {
		o.CustomInformationContent = fn
	}
}

// Build computes the information content of every term and freezes the
// ontology.
func (b *ConnectedBuilder) Build(optFns ...func(o *BuildOptions)) *Ontology {
	st := b.state()
	b.st = nil

	opts := DefaultBuildOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	totals := populationOf(st)
	var custom arena.CustomFunc
	if fn := opts.CustomInformationContent; fn != nil {
		custom = func(id model.TermID, c arena.Counts, t arena.Totals) float32 {
			return fn(id, AnnotationCounts(c), AnnotationCounts(t))
		}
	}
	st.terms.ComputeInformationContent(arena.Totals(totals), custom)

	return freeze(st)
}

// populationOf counts the annotations that are linked to at least one term.
func populationOf(st *state) AnnotationCounts {
	var c AnnotationCounts
	for _, g := range st.genes {
		if !g.Terms.IsEmpty() {
			c.Genes++
		}
	}
	for _, d := range st.diseases[kindIndex(model.Omim)] {
		if !d.Terms.IsEmpty() {
			c.Omim++
		}
	}
	for _, d := range st.diseases[kindIndex(model.Orpha)] {
		if !d.Terms.IsEmpty() {
			c.Orpha++
		}
	}
	return c
}

func kindIndex(kind model.DiseaseKind) int {
	if kind == model.Orpha {
		return 1
	}
	return 0
}

func clip[T idset.ID](s *idset.Set[T]) {
	*s = s.Clip()
}
