// Package batch runs similarity queries over many pairs or term sets in
// parallel.
//
// A Runner fans work out with errgroup, one goroutine per outer element
// (a pair, a gene, a disease or a matrix row) up to the worker limit.
// Results land in their input position, so the output order never depends
// on scheduling. Cancellation is checked before each outer element is
// started. An optional resource.Controller admits jobs, paces items and
// bounds pairwise matrix memory, and an optional LRU caches term pair
// scores across calls.
//
//	r, err := batch.New(func(o *batch.Options) {
//	    o.Workers = 8
//	    o.CacheSize = 1 << 16
//	})
//	group := similarity.NewGroup(similarity.Resnik{Kind: model.ICGene}, similarity.FunSimAvg{})
//	scores, err := r.GeneSimilarities(ctx, group, query)
package batch
