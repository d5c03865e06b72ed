package mock

import (
	"context"

	"github.com/fwojciec/docrank"
)

var _ docrank.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docrank.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, path string) ([]docrank.Page, error)
}

func (r *Renderer) Render(ctx context.Context, path string) ([]docrank.Page, error) {
	return r.RenderFn(ctx, path)
}
