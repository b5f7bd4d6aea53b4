package batch

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/hpograph/internal/resource"
)

// Options configures a Runner.
type Options struct {
	// Logger receives one debug record per finished job. Nil discards.
	Logger *slog.Logger

	// Workers bounds concurrently scored outer elements.
	// If 0, defaults to GOMAXPROCS.
	Workers int

	// CacheSize is the number of term pair scores kept in the LRU.
	// If 0, scores are not cached.
	CacheSize int

	// Controller admits jobs and paces items. Nil means unlimited.
	Controller *resource.Controller
}

// DefaultOptions are used by New before applying option functions.
var DefaultOptions = Options{
	Workers: 0,
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// QueryOptions configures one gene or disease query.
type QueryOptions struct {
	// CoveredOnly drops candidates that are not annotated to any query
	// term or its descendants. Scores of the remaining candidates are
	// unchanged.
	CoveredOnly bool
}

// WithCoveredOnly restricts results to covered candidates.
func WithCoveredOnly() func(o *QueryOptions) {
	return func(o *QueryOptions) {
		o.CoveredOnly = true
	}
}

func queryOptions(optFns []func(o *QueryOptions)) QueryOptions {
	var opts QueryOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
