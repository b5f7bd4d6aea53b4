package arena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/visited"
	"github.com/hupe1980/hpograph/model"
)

// ErrCycle is returned when the parent edges do not form a DAG.
var ErrCycle = errors.New("cycle in term hierarchy")

type frame struct {
	idx  uint32
	next int
}

// CacheAncestors computes the ancestor closure of every node. Existing
// closures are discarded, so calling it again yields the same result.
func (a *Arena) CacheAncestors() error {
	done := visited.New(len(a.nodes))
	onStack := visited.New(len(a.nodes))
	stack := make([]frame, 0, 32)

	for i := range a.nodes {
		a.nodes[i].Ancestors = idset.Set[model.TermID]{}
	}

	for root := range a.nodes {
		r := uint32(root) //nolint:gosec // bounded by len(a.nodes)
		if done.Marked(r) {
			continue
		}
		onStack.Mark(r)
		stack = append(stack[:0], frame{idx: r})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			node := &a.nodes[top.idx]

			if top.next < node.Parents.Len() {
				pid := node.Parents.At(top.next)
				top.next++

				pidx, ok := a.index[pid]
				if !ok {
					panic(fmt.Sprintf("arena: unknown parent %s of %s", pid, node.ID))
				}
				if done.Marked(pidx) {
					continue
				}
				if onStack.Marked(pidx) {
					return fmt.Errorf("%w: %s is its own ancestor", ErrCycle, pid)
				}
				onStack.Mark(pidx)
				stack = append(stack, frame{idx: pidx})
				continue
			}

			a.resolve(node)
			onStack.Unmark(top.idx)
			done.Mark(top.idx)
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// resolve sets the ancestors of n from its already resolved parents.
func (a *Arena) resolve(n *Node) {
	var anc idset.Set[model.TermID]
	for pid := range n.Parents.All() {
		p := &a.nodes[a.index[pid]]
		anc.Merge(p.Ancestors)
		anc.Insert(pid)
	}
	n.Ancestors = anc
}
