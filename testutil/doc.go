// Package testutil provides ontology fixtures for tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Fixtures
//
//	ont := testutil.Chain()   // All -> Phenotypic abnormality -> ... -> leaf, gene 5 "FooBar"
//	ont := testutil.Small()   // branches, a diamond, obsolete terms, genes, OMIM and ORPHA
//
// # Random Ontologies
//
//	rng := testutil.NewRNG(seed)
//	ont := rng.Ontology(testutil.RandomOptions{Terms: 2000, Genes: 300})
package testutil
