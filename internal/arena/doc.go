// Package arena stores the term nodes of an ontology in a dense slice.
//
// Every term gets a small integer index on insertion; parents, children,
// ancestors and annotations are kept as sorted id sets on the node. The
// arena owns the three build passes that operate on the whole graph:
//
//   - CacheAncestors resolves the transitive closure of every node with an
//     iterative depth-first walk and rejects cycles.
//   - LinkGene and LinkDisease attach an annotation to a term and all of its
//     cached ancestors.
//   - ComputeInformationContent derives the per-kind IC values from the
//     annotation counts.
//
// The arena is not synchronized. It is mutated by a single builder and
// only read once the ontology is frozen.
package arena
