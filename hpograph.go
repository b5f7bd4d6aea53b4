package hpograph

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/hpograph/batch"
	"github.com/hupe1980/hpograph/blobstore"
	"github.com/hupe1980/hpograph/catalog"
	"github.com/hupe1980/hpograph/codec"
	"github.com/hupe1980/hpograph/internal/resource"
	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
	"github.com/hupe1980/hpograph/similarity"
)

// Graph is a frozen ontology together with the logger, metrics and batch
// runner used to query and persist it. It is safe for concurrent use.
type Graph struct {
	ont    *ontology.Ontology
	opts   options
	runner *batch.Runner
	closed atomic.Bool
}

// New wraps a built ontology.
func New(ont *ontology.Ontology, optFns ...Option) (*Graph, error) {
	if ont == nil {
		return nil, fmt.Errorf("hpograph: nil ontology")
	}
	return newGraph(ont, applyOptions(optFns))
}

func newGraph(ont *ontology.Ontology, o options) (*Graph, error) {
	var ctl *resource.Controller
	if o.limits != nil {
		ctl = resource.NewController(*o.limits)
	}

	runner, err := batch.New(func(bo *batch.Options) {
		bo.Logger = o.logger.Logger
		bo.Workers = o.workers
		bo.CacheSize = o.pairCacheSize
		bo.Controller = ctl
	})
	if err != nil {
		return nil, err
	}

	return &Graph{
		ont:    ont,
		opts:   o,
		runner: runner,
	}, nil
}

// FromBytes decodes a snapshot, compressed or not.
func FromBytes(data []byte, optFns ...Option) (*Graph, error) {
	o := applyOptions(optFns)
	start := time.Now()

	ont, err := decode(data, o)
	o.metricsCollector.RecordOpen(time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}

	return newGraph(ont, o)
}

func decode(data []byte, o options) (*ontology.Ontology, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	return codec.Decode(raw, o.buildOptions...)
}

// Open loads the snapshot stored under name.
func Open(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Graph, error) {
	o := applyOptions(optFns)
	start := time.Now()

	var ont *ontology.Ontology
	err := blobstore.View(ctx, store, name, func(data []byte) error {
		var derr error
		ont, derr = decode(data, o)
		return derr
	})

	return finishOpen(ctx, o, name, ont, start, err)
}

// OpenRelease loads the snapshot of release from the catalog of store.
func OpenRelease(ctx context.Context, store blobstore.BlobStore, release model.ReleaseVersion, optFns ...Option) (*Graph, error) {
	return openEntry(ctx, store, applyOptions(optFns), func(c *catalog.Catalog) (catalog.Entry, error) {
		return c.ByRelease(release)
	})
}

// OpenCurrent loads the snapshot the catalog of store marks as current.
func OpenCurrent(ctx context.Context, store blobstore.BlobStore, optFns ...Option) (*Graph, error) {
	return openEntry(ctx, store, applyOptions(optFns), func(c *catalog.Catalog) (catalog.Entry, error) {
		return c.CurrentEntry()
	})
}

func openEntry(ctx context.Context, store blobstore.BlobStore, o options, pick func(*catalog.Catalog) (catalog.Entry, error)) (*Graph, error) {
	start := time.Now()
	cs := catalog.NewStore(store)

	c, err := cs.Load(ctx)
	if err != nil {
		return nil, ioError("load catalog", catalog.BlobName, err)
	}

	e, err := pick(c)
	if err != nil {
		return nil, translateError(err)
	}

	data, err := cs.Fetch(ctx, e)
	if err != nil {
		return finishOpen(ctx, o, e.Name, nil, start, err)
	}

	ont, err := decode(data, o)
	return finishOpen(ctx, o, e.Name, ont, start, err)
}

func finishOpen(ctx context.Context, o options, name string, ont *ontology.Ontology, start time.Time, err error) (*Graph, error) {
	elapsed := time.Since(start)
	o.metricsCollector.RecordOpen(elapsed, err)

	if err != nil {
		o.logger.LogOpen(ctx, name, 0, elapsed, err)
		return nil, ioError("open", name, err)
	}

	o.logger.WithRelease(ont.Release()).LogOpen(ctx, name, ont.Len(), elapsed, nil)

	return newGraph(ont, o)
}

func (g *Graph) checkOpen() error {
	if g.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Ontology returns the wrapped ontology.
func (g *Graph) Ontology() *ontology.Ontology { return g.ont }

// Release returns the release version of the ontology.
func (g *Graph) Release() model.ReleaseVersion { return g.ont.Release() }

// Bytes encodes the ontology with the configured format version and
// compression.
func (g *Graph) Bytes() ([]byte, error) {
	if err := g.checkOpen(); err != nil {
		return nil, err
	}

	raw, err := codec.Encode(g.ont, codec.WithVersion(g.opts.formatVersion))
	if err != nil {
		return nil, translateError(err)
	}

	return codec.Compress(raw, g.opts.compression)
}

// Save writes the snapshot to store under name.
func (g *Graph) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	_, err := g.save(ctx, store, name)
	return err
}

func (g *Graph) save(ctx context.Context, store blobstore.BlobStore, name string) ([]byte, error) {
	start := time.Now()

	data, err := g.Bytes()
	if err == nil {
		err = store.Put(ctx, name, data)
	}

	g.opts.metricsCollector.RecordSave(len(data), time.Since(start), err)
	g.opts.logger.LogSave(ctx, name, len(data), err)

	if err != nil {
		return nil, ioError("save", name, err)
	}
	return data, nil
}

// Publish saves the snapshot under its catalog name and records it in the
// release catalog of store. With makeCurrent the entry becomes the one
// OpenCurrent loads.
func (g *Graph) Publish(ctx context.Context, store blobstore.BlobStore, makeCurrent bool) (catalog.Entry, error) {
	name := catalog.BlobNameFor(g.Release(), g.opts.compression)

	data, err := g.save(ctx, store, name)
	if err != nil {
		return catalog.Entry{}, err
	}

	e := catalog.NewEntry(name, g.Release(), g.opts.formatVersion, g.opts.compression, data)

	c, err := catalog.NewStore(store).Update(ctx, func(c *catalog.Catalog) error {
		c.Add(e, makeCurrent)
		return nil
	})

	var generation uint64
	if c != nil {
		generation = c.Generation
	}
	g.opts.logger.LogPublish(ctx, name, makeCurrent, generation, err)

	if err != nil {
		return catalog.Entry{}, ioError("publish", catalog.BlobName, err)
	}
	return e, nil
}

// Term returns the term with id.
func (g *Graph) Term(id model.TermID) (ontology.Term, error) {
	if err := g.checkOpen(); err != nil {
		return ontology.Term{}, err
	}
	t, err := g.ont.Term(id)
	return t, translateError(err)
}

// ParseTerm parses an identifier such as "HP:0000118" and returns the term.
func (g *Graph) ParseTerm(s string) (ontology.Term, error) {
	id, err := model.ParseTermID(s)
	if err != nil {
		return ontology.Term{}, translateError(err)
	}
	return g.Term(id)
}

// TermSet builds a set of terms of this graph.
func (g *Graph) TermSet(ids ...model.TermID) (ontology.TermSet, error) {
	if err := g.checkOpen(); err != nil {
		return ontology.TermSet{}, err
	}
	s, err := g.ont.TermSet(ids...)
	return s, translateError(err)
}

// Similarity scores two terms with alg.
func (g *Graph) Similarity(alg similarity.Algorithm, a, b model.TermID) (float32, error) {
	start := time.Now()
	score, err := g.similarity(alg, a, b)
	g.opts.metricsCollector.RecordSimilarity(time.Since(start), err)
	return score, err
}

func (g *Graph) similarity(alg similarity.Algorithm, a, b model.TermID) (float32, error) {
	ta, err := g.Term(a)
	if err != nil {
		return 0, err
	}
	tb, err := g.Term(b)
	if err != nil {
		return 0, err
	}
	return alg.Score(ta, tb), nil
}

// GroupSimilarity scores two term sets of this graph.
func (g *Graph) GroupSimilarity(group similarity.Group, a, b ontology.TermSet) (float32, error) {
	start := time.Now()
	score, err := g.groupSimilarity(group, a, b)
	g.opts.metricsCollector.RecordSimilarity(time.Since(start), err)
	return score, err
}

func (g *Graph) groupSimilarity(group similarity.Group, a, b ontology.TermSet) (float32, error) {
	if err := g.checkOpen(); err != nil {
		return 0, err
	}
	if err := g.owns(a, b); err != nil {
		return 0, err
	}
	return group.Score(a, b), nil
}

func (g *Graph) owns(sets ...ontology.TermSet) error {
	for _, s := range sets {
		if o := s.Ontology(); o != nil && o != g.ont {
			return batch.ErrMixedOntologies
		}
	}
	return nil
}

// Pairs scores many term pairs in parallel.
func (g *Graph) Pairs(ctx context.Context, alg similarity.Algorithm, pairs []batch.Pair) ([]float32, error) {
	var out []float32
	err := g.batch(ctx, "pairs", len(pairs), func() error {
		var err error
		out, err = g.runner.Pairs(ctx, g.ont, alg, pairs)
		return err
	})
	return out, err
}

// GeneSimilarities scores query against every gene, highest score first.
// batch.WithCoveredOnly keeps only genes annotated under the query.
func (g *Graph) GeneSimilarities(ctx context.Context, group similarity.Group, query ontology.TermSet, optFns ...func(o *batch.QueryOptions)) ([]batch.GeneScore, error) {
	var out []batch.GeneScore
	err := g.batch(ctx, "genes", g.ont.GeneCount(), func() error {
		if err := g.owns(query); err != nil {
			return err
		}
		var err error
		out, err = g.runner.GeneSimilarities(ctx, group, query, optFns...)
		if err == nil {
			batch.RankGenes(out)
		}
		return err
	})
	return out, err
}

// DiseaseSimilarities scores query against every disease of kind, highest
// score first.
func (g *Graph) DiseaseSimilarities(ctx context.Context, group similarity.Group, query ontology.TermSet, kind model.DiseaseKind, optFns ...func(o *batch.QueryOptions)) ([]batch.DiseaseScore, error) {
	var out []batch.DiseaseScore
	err := g.batch(ctx, "diseases", g.ont.DiseaseCount(kind), func() error {
		if err := g.owns(query); err != nil {
			return err
		}
		var err error
		out, err = g.runner.DiseaseSimilarities(ctx, group, query, kind, optFns...)
		if err == nil {
			batch.RankDiseases(out)
		}
		return err
	})
	return out, err
}

// PairwiseMatrix scores every pair of sets. Cells are counted against the
// matrix budget of WithLimits while the matrix is computed.
func (g *Graph) PairwiseMatrix(ctx context.Context, group similarity.Group, sets []ontology.TermSet) (*mat.SymDense, error) {
	var out *mat.SymDense
	err := g.batch(ctx, "matrix", len(sets), func() error {
		if err := g.owns(sets...); err != nil {
			return err
		}
		var err error
		out, err = g.runner.PairwiseMatrix(ctx, group, sets)
		return err
	})
	return out, err
}

func (g *Graph) batch(ctx context.Context, op string, items int, fn func() error) error {
	if err := g.checkOpen(); err != nil {
		return err
	}

	start := time.Now()
	err := translateError(fn())
	elapsed := time.Since(start)

	g.opts.metricsCollector.RecordBatch(op, items, elapsed, err)
	g.opts.logger.LogBatch(ctx, op, items, elapsed, err)

	return err
}

// Compare reports the differences from g to other.
func (g *Graph) Compare(ctx context.Context, other *Graph) (ontology.Comparison, error) {
	if err := g.checkOpen(); err != nil {
		return ontology.Comparison{}, err
	}
	if err := other.checkOpen(); err != nil {
		return ontology.Comparison{}, err
	}

	c := ontology.Compare(g.ont, other.ont)
	g.opts.logger.LogCompare(ctx, c)
	return c, nil
}

// Close drops cached scores. Further calls on g return ErrClosed.
// Close is idempotent.
func (g *Graph) Close() error {
	if g.closed.Swap(true) {
		return nil
	}
	g.runner.PurgeCache()
	return nil
}
