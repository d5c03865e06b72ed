package docrank

import (
	"context"
	"fmt"
)

// Embedder converts text into fixed-dimension vectors suitable for cosine
// similarity. Implementations must be safe for concurrent use.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentVector is the embedding of a persona and task. It is computed
// once per run and never modified.
type IntentVector []float32

// IntentPrompt builds the natural-language prompt embedded as the intent.
func IntentPrompt(persona, job string) string {
	return fmt.Sprintf("Persona: %s. Task: %s.", persona, job)
}

// EncodeIntent embeds the persona and job as a single intent vector.
// Any embedder failure is returned as EUNAVAILABLE.
func EncodeIntent(ctx context.Context, emb Embedder, persona, job string) (IntentVector, error) {
	vecs, err := embed(ctx, emb, []string{IntentPrompt(persona, job)})
	if err != nil {
		return nil, err
	}
	if len(vecs[0]) == 0 {
		return nil, Errorf(EUNAVAILABLE, "embedder returned an empty intent vector")
	}
	return IntentVector(vecs[0]), nil
}

// embed calls emb and checks that it returned one vector per text.
func embed(ctx context.Context, emb Embedder, texts []string) ([][]float32, error) {
	if emb == nil {
		return nil, Errorf(EINVALID, "embedder required")
	}
	vecs, err := emb.Embed(ctx, texts)
	if err != nil {
		if ErrorCode(err) != EINTERNAL {
			return nil, err
		}
		return nil, Errorf(EUNAVAILABLE, "embed %d texts: %v", len(texts), err)
	}
	if len(vecs) != len(texts) {
		return nil, Errorf(EUNAVAILABLE, "embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}
