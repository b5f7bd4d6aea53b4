package hpograph

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

// Logger wraps slog.Logger with hpograph-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRelease adds the release version to the logger.
func (l *Logger) WithRelease(release model.ReleaseVersion) *Logger {
	return &Logger{
		Logger: l.Logger.With("release", release.String()),
	}
}

// WithName adds a blob name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogOpen logs loading a snapshot.
func (l *Logger) LogOpen(ctx context.Context, name string, terms int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ontology loaded",
			"name", name,
			"terms", terms,
			"elapsed", elapsed,
		)
	}
}

// LogSave logs writing a snapshot.
func (l *Logger) LogSave(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"bytes", size,
		)
	}
}

// LogPublish logs registering a snapshot in the release catalog.
func (l *Logger) LogPublish(ctx context.Context, name string, current bool, generation uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "publish failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "release published",
			"name", name,
			"current", current,
			"generation", generation,
		)
	}
}

// LogBatch logs a batch similarity job.
func (l *Logger) LogBatch(ctx context.Context, op string, items int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch failed",
			"op", op,
			"items", items,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch completed",
			"op", op,
			"items", items,
			"elapsed", elapsed,
		)
	}
}

// LogCompare logs the outcome of a release comparison.
func (l *Logger) LogCompare(ctx context.Context, c ontology.Comparison) {
	if c.IsEmpty() {
		l.InfoContext(ctx, "releases are identical",
			"old", c.OldRelease.String(),
			"new", c.NewRelease.String(),
		)
		return
	}
	l.InfoContext(ctx, "releases compared",
		"old", c.OldRelease.String(),
		"new", c.NewRelease.String(),
		"terms_added", len(c.Terms.Added),
		"terms_removed", len(c.Terms.Removed),
		"terms_changed", len(c.Terms.Changed),
		"genes_added", len(c.Genes.Added),
		"genes_removed", len(c.Genes.Removed),
		"genes_changed", len(c.Genes.Changed),
		"omim_changes", len(c.Omim.Added)+len(c.Omim.Removed)+len(c.Omim.Changed),
		"orpha_changes", len(c.Orpha.Added)+len(c.Orpha.Removed)+len(c.Orpha.Changed),
	)
}
