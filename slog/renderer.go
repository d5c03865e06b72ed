// Package slog provides logging decorators for docrank services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrank"
)

// Ensure LoggingRenderer implements docrank.Renderer.
var _ docrank.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   docrank.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next docrank.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, path string) (pages []docrank.Page, err error) {
	defer func(begin time.Time) {
		spans := 0
		for _, p := range pages {
			spans += len(p.Spans)
		}
		r.logger.Debug("render document",
			"path", path,
			"pages", len(pages),
			"spans", spans,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, path)
}
