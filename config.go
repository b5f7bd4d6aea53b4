package hpograph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/hpograph/blobstore"
	"github.com/hupe1980/hpograph/blobstore/minio"
	"github.com/hupe1980/hpograph/blobstore/s3"
	"github.com/hupe1980/hpograph/catalog"
	"github.com/hupe1980/hpograph/codec"
)

// Config is the file representation of a graph setup.
//
//	store:
//	  type: s3
//	  bucket: ontologies
//	  prefix: hpo/
//	  cache_size: 4
//	log:
//	  level: info
//	  format: json
//	batch:
//	  workers: 8
//	  pair_cache_size: 100000
//	snapshot:
//	  compression: zstd
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Batch    BatchConfig    `yaml:"batch"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// StoreConfig selects and configures the blob store.
type StoreConfig struct {
	// Type is one of "local", "memory", "s3" or "minio".
	Type string `yaml:"type"`
	// Path is the root directory of a local store.
	Path     string `yaml:"path"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	// AccessKey and SecretKey are used by minio. Empty values fall back to
	// MINIO_ACCESS_KEY and MINIO_SECRET_KEY.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Insecure  bool   `yaml:"insecure"`
	// CacheSize wraps the store in a CachingStore holding that many blobs.
	CacheSize int `yaml:"cache_size"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is debug, info, warn or error. Empty disables logging.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// BatchConfig configures the batch runner and its limits.
type BatchConfig struct {
	Workers           int     `yaml:"workers"`
	PairCacheSize     int     `yaml:"pair_cache_size"`
	MaxConcurrentJobs int64   `yaml:"max_concurrent_jobs"`
	ItemsPerSecond    float64 `yaml:"items_per_second"`
	Burst             int     `yaml:"burst"`
	MaxMatrixCells    int64   `yaml:"max_matrix_cells"`
}

// SnapshotConfig configures how snapshots are written.
type SnapshotConfig struct {
	// Compression is none, lz4 or zstd.
	Compression string `yaml:"compression"`
	// FormatVersion is 1, 2 or 3. 0 writes the latest version.
	FormatVersion uint8 `yaml:"format_version"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values without touching the store.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Type) {
	case "", "memory":
	case "local":
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for local stores")
		}
	case "s3":
		if c.Store.Bucket == "" {
			return fmt.Errorf("config: store.bucket is required for s3 stores")
		}
	case "minio":
		if c.Store.Bucket == "" || c.Store.Endpoint == "" {
			return fmt.Errorf("config: store.bucket and store.endpoint are required for minio stores")
		}
	default:
		return fmt.Errorf("config: unknown store type %q", c.Store.Type)
	}

	if c.Store.CacheSize < 0 {
		return fmt.Errorf("config: store.cache_size must not be negative")
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	if c.Batch.Workers < 0 || c.Batch.PairCacheSize < 0 {
		return fmt.Errorf("config: batch sizes must not be negative")
	}

	if _, err := codec.ParseCompression(strings.ToLower(c.Snapshot.Compression)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Snapshot.FormatVersion > codec.LatestVersion {
		return fmt.Errorf("config: %w: %d", ErrUnsupportedVersion, c.Snapshot.FormatVersion)
	}

	return nil
}

func parseLevel(s string) (*slog.Level, error) {
	if s == "" {
		return nil, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	return &level, nil
}

// Options converts the config into Graph options.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var opts []Option

	level, _ := parseLevel(c.Log.Level)
	if level != nil {
		if strings.EqualFold(c.Log.Format, "json") {
			opts = append(opts, WithLogger(NewJSONLogger(*level)))
		} else {
			opts = append(opts, WithLogger(NewTextLogger(*level)))
		}
	}

	b := c.Batch
	if b.Workers > 0 {
		opts = append(opts, WithWorkers(b.Workers))
	}
	if b.PairCacheSize > 0 {
		opts = append(opts, WithPairCache(b.PairCacheSize))
	}
	if b.MaxConcurrentJobs > 0 || b.ItemsPerSecond > 0 || b.MaxMatrixCells > 0 {
		opts = append(opts, WithLimits(Limits{
			MaxConcurrentJobs: b.MaxConcurrentJobs,
			ItemsPerSecond:    b.ItemsPerSecond,
			Burst:             b.Burst,
			MaxMatrixCells:    b.MaxMatrixCells,
		}))
	}

	compression, _ := codec.ParseCompression(strings.ToLower(c.Snapshot.Compression))
	opts = append(opts, WithCompression(compression))
	if c.Snapshot.FormatVersion > 0 {
		opts = append(opts, WithFormatVersion(c.Snapshot.FormatVersion))
	}

	return opts, nil
}

// OpenStore builds the configured blob store.
func (c *Config) OpenStore(ctx context.Context) (blobstore.BlobStore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sc := c.Store

	var (
		store blobstore.BlobStore
		err   error
	)

	switch strings.ToLower(sc.Type) {
	case "", "memory":
		store = blobstore.NewMemoryStore()
	case "local":
		store = blobstore.NewLocalStore(sc.Path)
	case "s3":
		store, err = s3.New(ctx, sc.Bucket, func(o *s3.Options) {
			o.Prefix = sc.Prefix
			o.Region = sc.Region
			o.Endpoint = sc.Endpoint
			o.UsePathStyle = sc.Endpoint != ""
		})
	case "minio":
		store, err = minio.New(sc.Endpoint, sc.Bucket, func(o *minio.Options) {
			o.AccessKey = firstNonEmpty(sc.AccessKey, os.Getenv("MINIO_ACCESS_KEY"))
			o.SecretKey = firstNonEmpty(sc.SecretKey, os.Getenv("MINIO_SECRET_KEY"))
			o.Region = sc.Region
			o.Secure = !sc.Insecure
			o.Prefix = sc.Prefix
		})
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", sc.Type, err)
	}

	if sc.CacheSize > 0 {
		// The catalog is rewritten on every publish, possibly by other processes.
		return blobstore.NewCachingStore(store, sc.CacheSize, func(o *blobstore.CachingOptions) {
			o.Bypass = func(name string) bool { return name == catalog.BlobName }
		})
	}

	return store, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
