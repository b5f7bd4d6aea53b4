package batch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
	"github.com/hupe1980/hpograph/similarity"
)

// ErrMixedOntologies is returned when term sets of different ontologies
// are scored together.
var ErrMixedOntologies = errors.New("term sets belong to different ontologies")

// Pair is an unordered pair of terms.
type Pair struct {
	A, B model.TermID
}

// GeneScore is the similarity of a query to one gene.
type GeneScore struct {
	ID    model.GeneID
	Name  string
	Score float32
	// Covered is set when the gene is annotated to a query term or one of
	// its descendants.
	Covered bool
}

// DiseaseScore is the similarity of a query to one disease.
type DiseaseScore struct {
	Kind    model.DiseaseKind
	ID      model.DiseaseID
	Name    string
	Score   float32
	Covered bool
}

// Runner executes batch similarity jobs. It is safe for concurrent use.
type Runner struct {
	opts  Options
	cache *pairCache
}

// New creates a Runner.
func New(optFns ...func(o *Options)) (*Runner, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Runner{opts: opts}

	if opts.CacheSize > 0 {
		c, err := lru.New[pairKey, float32](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}

	return r, nil
}

// CacheLen returns the number of cached pair scores.
func (r *Runner) CacheLen() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

// PurgeCache drops all cached pair scores.
func (r *Runner) PurgeCache() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

func (r *Runner) algorithm(alg similarity.Algorithm) similarity.Algorithm {
	if r.cache == nil {
		return alg
	}
	label, ok := cacheLabel(alg)
	if !ok {
		return alg
	}
	return cachedAlgorithm{inner: alg, label: label, cache: r.cache}
}

func (r *Runner) group(g similarity.Group) similarity.Group {
	return similarity.NewGroup(r.algorithm(g.Algorithm), g.Combiner)
}

// run scores n outer elements with fn and reports the job to the logger.
func (r *Runner) run(ctx context.Context, op string, n int, fn func(i int) error) error {
	ctl := r.opts.Controller
	if err := ctl.AcquireJob(ctx); err != nil {
		return err
	}
	defer ctl.ReleaseJob()

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers())

	var waitErr error
	for i := range n {
		if err := ctl.WaitItem(gctx); err != nil {
			waitErr = err
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	err := g.Wait()
	if err == nil {
		err = waitErr
	}
	if err == nil {
		err = ctx.Err()
	}

	r.opts.logger().LogAttrs(ctx, levelFor(err), "batch job finished",
		slogOp(op), slogItems(n), slogDuration(time.Since(start)), slogErr(err))

	return err
}

// Pairs scores each pair of terms. Scores are returned in input order.
func (r *Runner) Pairs(ctx context.Context, ont *ontology.Ontology, alg similarity.Algorithm, pairs []Pair) ([]float32, error) {
	terms := make([][2]ontology.Term, len(pairs))
	for i, p := range pairs {
		a, err := ont.Term(p.A)
		if err != nil {
			return nil, err
		}
		b, err := ont.Term(p.B)
		if err != nil {
			return nil, err
		}
		terms[i] = [2]ontology.Term{a, b}
	}

	alg = r.algorithm(alg)
	out := make([]float32, len(pairs))

	err := r.run(ctx, "pairs", len(pairs), func(i int) error {
		out[i] = alg.Score(terms[i][0], terms[i][1])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GroupSimilarities scores query against every target. Scores are
// returned in target order.
func (r *Runner) GroupSimilarities(ctx context.Context, group similarity.Group, query ontology.TermSet, targets []ontology.TermSet) ([]float32, error) {
	for i, t := range targets {
		if !t.IsEmpty() && !query.IsEmpty() && t.Ontology() != query.Ontology() {
			return nil, fmt.Errorf("%w: target %d", ErrMixedOntologies, i)
		}
	}

	group = r.group(group)
	out := make([]float32, len(targets))

	err := r.run(ctx, "group", len(targets), func(i int) error {
		out[i] = group.Score(query, targets[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GeneSimilarities scores query against every gene of its ontology.
// Results are in ascending gene id order.
func (r *Runner) GeneSimilarities(ctx context.Context, group similarity.Group, query ontology.TermSet, optFns ...func(o *QueryOptions)) ([]GeneScore, error) {
	ont := query.Ontology()
	if ont == nil {
		return nil, nil
	}

	opts := queryOptions(optFns)
	covered := query.GeneBitmap()

	out := make([]GeneScore, 0, ont.GeneCount())
	targets := make([]ontology.TermSet, 0, ont.GeneCount())
	for g := range ont.Genes() {
		hit := covered.Contains(uint32(g.ID))
		if opts.CoveredOnly && !hit {
			continue
		}
		ts, err := ont.GeneTerms(g.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, GeneScore{ID: g.ID, Name: g.Name, Covered: hit})
		targets = append(targets, ts)
	}

	group = r.group(group)

	err := r.run(ctx, "genes", len(targets), func(i int) error {
		out[i].Score = group.Score(query, targets[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DiseaseSimilarities scores query against every disease of one kind.
// Results are in ascending disease id order.
func (r *Runner) DiseaseSimilarities(ctx context.Context, group similarity.Group, query ontology.TermSet, kind model.DiseaseKind, optFns ...func(o *QueryOptions)) ([]DiseaseScore, error) {
	ont := query.Ontology()
	if ont == nil {
		return nil, nil
	}

	opts := queryOptions(optFns)
	covered := query.DiseaseBitmap(kind)

	out := make([]DiseaseScore, 0, ont.DiseaseCount(kind))
	targets := make([]ontology.TermSet, 0, ont.DiseaseCount(kind))
	for d := range ont.Diseases(kind) {
		hit := covered.Contains(uint32(d.ID))
		if opts.CoveredOnly && !hit {
			continue
		}
		ts, err := ont.DiseaseTerms(kind, d.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, DiseaseScore{Kind: kind, ID: d.ID, Name: d.Name, Covered: hit})
		targets = append(targets, ts)
	}

	group = r.group(group)

	err := r.run(ctx, "diseases", len(targets), func(i int) error {
		out[i].Score = group.Score(query, targets[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PairwiseMatrix scores every pair of sets. The result is symmetric; the
// diagonal holds each set scored against itself. Each row is one outer
// element, so cancellation is observed between rows.
func (r *Runner) PairwiseMatrix(ctx context.Context, group similarity.Group, sets []ontology.TermSet) (*mat.SymDense, error) {
	n := len(sets)
	if n == 0 {
		return &mat.SymDense{}, nil
	}

	cells := int64(n) * int64(n+1) / 2
	ctl := r.opts.Controller
	if err := ctl.AcquireCells(cells); err != nil {
		return nil, fmt.Errorf("pairwise matrix of %d sets: %w", n, err)
	}
	defer ctl.ReleaseCells(cells)

	group = r.group(group)
	data := make([]float64, n*n)

	err := r.run(ctx, "matrix", n, func(i int) error {
		for j := i; j < n; j++ {
			if i != j && (j-i)%64 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			v := float64(group.Score(sets[i], sets[j]))
			data[i*n+j] = v
			data[j*n+i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mat.NewSymDense(n, data), nil
}

// RankGenes orders scores by descending score, breaking ties by id.
func RankGenes(scores []GeneScore) {
	slices.SortStableFunc(scores, func(a, b GeneScore) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.ID, b.ID))
	})
}

// RankDiseases orders scores by descending score, breaking ties by id.
func RankDiseases(scores []DiseaseScore) {
	slices.SortStableFunc(scores, func(a, b DiseaseScore) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.ID, b.ID))
	})
}
