package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrank"
)

// Ensure LoggingEmbedder implements docrank.Embedder.
var _ docrank.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   docrank.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docrank.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vecs) > 0 {
			dim = len(vecs[0])
		}
		e.logger.Info("embed texts",
			"count", len(texts),
			"dimensions", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
