package hpograph

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("Open", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		l.WithRelease(model.ReleaseVersion{Year: 2025, Month: 1, Day: 16}).
			LogOpen(ctx, "hp.hpo", 12, time.Millisecond, nil)

		out := buf.String()
		assert.Contains(t, out, "ontology loaded")
		assert.Contains(t, out, "release=2025-01-16")
		assert.Contains(t, out, "terms=12")
	})

	t.Run("SaveError", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		l.LogSave(ctx, "hp.hpo", 0, errors.New("disk full"))

		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "disk full")
	})

	t.Run("BatchIsDebug", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		l.LogBatch(ctx, "genes", 10, time.Millisecond, nil)
		assert.Empty(t, buf.String())

		l.LogBatch(ctx, "genes", 10, time.Millisecond, context.Canceled)
		assert.Contains(t, buf.String(), "batch failed")
	})

	t.Run("Compare", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		l.LogCompare(ctx, ontology.Comparison{})
		assert.Contains(t, buf.String(), "releases are identical")

		buf.Reset()
		l.LogCompare(ctx, ontology.Comparison{
			Terms: ontology.Changes[model.TermID]{Added: []model.TermID{1, 2}},
		})
		assert.Contains(t, buf.String(), "terms_added=2")
	})

	t.Run("Noop", func(t *testing.T) {
		l := NoopLogger()
		l.LogSave(ctx, "hp.hpo", 1, errors.New("ignored"))
		assert.False(t, l.Enabled(ctx, slog.LevelError))
	})
}
