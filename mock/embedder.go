package mock

import (
	"context"

	"github.com/fwojciec/docrank"
)

var _ docrank.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docrank.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

// StaticEmbedder returns an Embedder that looks every text up in vectors.
// Unknown texts embed as the zero vector of the given dimension.
func StaticEmbedder(dim int, vectors map[string][]float32) *Embedder {
	return &Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, t := range texts {
				if v, ok := vectors[t]; ok {
					out[i] = v
					continue
				}
				out[i] = make([]float32, dim)
			}
			return out, nil
		},
	}
}
