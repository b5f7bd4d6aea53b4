// Package hpograph provides an in-memory engine for the Human Phenotype
// Ontology: a frozen term graph with cached ancestor closures, information
// content per annotation kind, and semantic similarity over terms and term
// sets.
//
// # Quick Start
//
// Load a snapshot and score two terms:
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//	g, _ := hpograph.Open(ctx, store, "hp.hpo")
//	defer g.Close()
//
//	score, _ := g.Similarity(similarity.Resnik{Kind: model.ICGene},
//	    model.MustParseTermID("HP:0001250"), model.MustParseTermID("HP:0011097"))
//
// Rank genes for a set of findings:
//
//	query, _ := g.TermSet(1250, 11097)
//	group := similarity.NewGroup(similarity.GraphIC{Kind: model.ICGene}, similarity.FunSimAvg{})
//	genes, _ := g.GeneSimilarities(ctx, group, query)
//
// # Building
//
// Ontologies are built in three stages, each stage consuming the previous
// builder:
//
//	b := ontology.NewBuilder(n)
//	b.AddTerm(1, "All")                // 1. terms
//	tb := b.Terms()
//	tb.Connect(1, 118)                 // 2. parent edges
//	cb, _ := tb.CacheAncestors()
//	cb.AddGene(5, "FooBar")            // 3. annotations
//	cb.LinkGene(5, 118)
//	ont := cb.Build()
//
// # Storage
//
// Snapshots use the versioned big-endian HPO binary format (package codec),
// optionally wrapped in an lz4 or zstd envelope. Any blobstore.BlobStore can
// hold them: local files (memory-mapped on open), memory, S3 or MinIO.
//
//	g.Save(ctx, store, "hp.hpo")
//	g.Publish(ctx, store, true)        // records the release in the catalog
//	g, _ = hpograph.OpenCurrent(ctx, store)
//
// # Concurrency
//
// A Graph is immutable after construction and safe for concurrent use.
// Batch operations (Pairs, GeneSimilarities, DiseaseSimilarities,
// PairwiseMatrix) fan out over a bounded worker pool and stop at the next
// outer element when the context is cancelled.
//
// # Configuration
//
// Options can be set in code or loaded from YAML:
//
//	cfg, _ := hpograph.LoadConfig("hpograph.yaml")
//	store, _ := cfg.OpenStore(ctx)
//	opts, _ := cfg.Options()
//	g, _ := hpograph.OpenCurrent(ctx, store, opts...)
package hpograph
