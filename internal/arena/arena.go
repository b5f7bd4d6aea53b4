package arena

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/model"
)

// Node is a single term of the ontology.
type Node struct {
	ID   model.TermID
	Name string

	Parents   idset.Set[model.TermID]
	Children  idset.Set[model.TermID]
	Ancestors idset.Set[model.TermID]

	Genes idset.Set[model.GeneID]
	Omim  idset.Set[model.DiseaseID]
	Orpha idset.Set[model.DiseaseID]

	IC model.InformationContent

	Obsolete    bool
	Replacement model.TermID // 0 if none
}

// Diseases returns the disease annotations of the given kind.
func (n *Node) Diseases(kind model.DiseaseKind) idset.Set[model.DiseaseID] {
	if kind == model.Orpha {
		return n.Orpha
	}
	return n.Omim
}

func (n *Node) diseases(kind model.DiseaseKind) *idset.Set[model.DiseaseID] {
	if kind == model.Orpha {
		return &n.Orpha
	}
	return &n.Omim
}

// Arena maps term ids to nodes.
type Arena struct {
	nodes []Node
	index map[model.TermID]uint32
}

// New creates an arena with room for capacity terms.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{
		nodes: make([]Node, 0, capacity),
		index: make(map[model.TermID]uint32, capacity),
	}
}

// Insert adds a term and reports whether it was new. An existing term is
// left untouched.
func (a *Arena) Insert(id model.TermID, name string) bool {
	if _, ok := a.index[id]; ok {
		return false
	}
	a.index[id] = uint32(len(a.nodes)) //nolint:gosec // term count is bounded by the uint32 id space
	a.nodes = append(a.nodes, Node{ID: id, Name: name})
	return true
}

// Len returns the number of terms.
func (a *Arena) Len() int { return len(a.nodes) }

// Contains reports whether id is present.
func (a *Arena) Contains(id model.TermID) bool {
	_, ok := a.index[id]
	return ok
}

// Get returns the node for id.
func (a *Arena) Get(id model.TermID) (*Node, bool) {
	idx, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return &a.nodes[idx], true
}

// MustGet returns the node for id. It panics if id is unknown.
func (a *Arena) MustGet(id model.TermID) *Node {
	n, ok := a.Get(id)
	if !ok {
		panic(fmt.Sprintf("arena: unknown term %s", id))
	}
	return n
}

// All iterates over the nodes in insertion order.
func (a *Arena) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for i := range a.nodes {
			if !yield(&a.nodes[i]) {
				return
			}
		}
	}
}

// IDs returns all term ids in ascending order.
func (a *Arena) IDs() []model.TermID {
	ids := make([]model.TermID, 0, len(a.nodes))
	for i := range a.nodes {
		ids = append(ids, a.nodes[i].ID)
	}
	slices.Sort(ids)
	return ids
}

// Connect records a parent -> child edge on both nodes. It panics if
// either id is unknown.
func (a *Arena) Connect(parent, child model.TermID) {
	p := a.MustGet(parent)
	c := a.MustGet(child)
	p.Children.Insert(child)
	c.Parents.Insert(parent)
}
