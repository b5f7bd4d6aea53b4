package hpograph

import (
	"log/slog"

	"github.com/hupe1980/hpograph/codec"
	"github.com/hupe1980/hpograph/internal/resource"
	"github.com/hupe1980/hpograph/ontology"
)

// Limits bounds batch jobs: concurrent jobs, item rate and matrix cells.
type Limits = resource.Config

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	pairCacheSize    int
	limits           *Limits
	compression      codec.Compression
	formatVersion    uint8
	buildOptions     []func(*ontology.BuildOptions)
}

// Option configures Graph constructor and load behavior.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hpograph.BasicMetricsCollector{}
//	g, _ := hpograph.New(ont, hpograph.WithMetricsCollector(metrics))
//	// ... use g ...
//	stats := metrics.GetStats()
//	fmt.Printf("Similarities: %d, Avg latency: %dns\n", stats.SimilarityCount, stats.SimilarityAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hpograph.NewJSONLogger(slog.LevelInfo)
//	g, _ := hpograph.Open(ctx, store, name, hpograph.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers bounds how many outer elements a batch job scores in parallel.
// If 0, defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPairCache keeps up to size term pair scores in an LRU shared by all
// batch jobs of the graph. 0 disables the cache.
func WithPairCache(size int) Option {
	return func(o *options) {
		o.pairCacheSize = size
	}
}

// WithLimits admits batch jobs through a resource controller.
//
// Example:
//
//	g, _ := hpograph.New(ont, hpograph.WithLimits(hpograph.Limits{
//	    MaxConcurrentJobs: 2,
//	    ItemsPerSecond:    50_000,
//	}))
func WithLimits(l Limits) Option {
	return func(o *options) {
		o.limits = &l
	}
}

// WithCompression wraps saved snapshots in a compression envelope.
// Loading detects the envelope regardless of this option.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithFormatVersion selects the binary version written by Save and Bytes.
// Versions 1 and 2 drop ORPHA diseases.
func WithFormatVersion(v uint8) Option {
	return func(o *options) {
		o.formatVersion = v
	}
}

// WithBuildOptions passes build options to the decoder, e.g.
// ontology.WithCustomInformationContent.
func WithBuildOptions(optFns ...func(*ontology.BuildOptions)) Option {
	return func(o *options) {
		o.buildOptions = append(o.buildOptions, optFns...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      codec.CompressionNone,
		formatVersion:    codec.DefaultOptions.Version,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
