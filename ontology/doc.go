// Package ontology builds and serves a frozen phenotype ontology.
//
// Construction is split into three builder stages that must be used in
// order:
//
//	b := ontology.NewBuilder(0)           // raw terms
//	b.AddTerm(1, "All")
//	tb := b.Terms()                       // all terms present: edges, obsolete flags
//	tb.Connect(1, 118)
//	cb, err := tb.CacheAncestors()        // closure cached: genes, diseases, links
//	cb.AddGene(2200, "FBN1")
//	cb.LinkGene(2200, 118)
//	ont := cb.Build()                     // information content, frozen
//
// Each transition consumes the previous builder. Calling any method on a
// consumed builder panics with an error wrapping ErrBuilderConsumed.
//
// An Ontology is immutable once built and safe for concurrent use by any
// number of readers. Sets returned by its views share memory with the
// ontology and must not be modified; Clone them first.
package ontology
