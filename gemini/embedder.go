// Package gemini implements docrank.Embedder on top of the Google Gemini
// embedding API.
package gemini

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrank"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// MaxBatchSize is the largest number of texts sent in one request.
const MaxBatchSize = 100

// taskType asks the model for vectors tuned to cosine comparison.
const taskType = "SEMANTIC_SIMILARITY"

// DefaultRetryDelays returns the backoff delays between request attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Embedder implements docrank.Embedder at compile time.
var _ docrank.Embedder = (*Embedder)(nil)

// Embedder implements docrank.Embedder using Google Gemini.
type Embedder struct {
	client *genai.Client
	model  string

	// Dimensions truncates output vectors when positive.
	Dimensions int32

	// Limiter, if set, is waited on before every request.
	Limiter *rate.Limiter

	// RetryDelays are slept between attempts of a failed request.
	RetryDelays []time.Duration

	// Logger, if set, receives one message per retried request.
	Logger *slog.Logger
}

// NewEmbedder creates a new Embedder. An empty model selects DefaultModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultModel
	}
	return &Embedder{
		client:      client,
		model:       model,
		RetryDelays: DefaultRetryDelays(),
	}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed returns one vector per text. Texts are sent in batches of at most
// MaxBatchSize; each batch is rate limited and retried independently.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if e.client == nil {
		return nil, docrank.Errorf(docrank.EINVALID, "gemini client required")
	}

	var logger *slog.Logger
	if e.Logger != nil {
		logger = e.Logger.With("model", e.model)
	}
	return EmbedInBatches(ctx, texts, MaxBatchSize, e.embedBatch, logger, e.RetryDelays)
}

// BatchFunc embeds one batch of texts, returning one vector per text.
type BatchFunc func(ctx context.Context, batch []string) ([][]float32, error)

// EmbedInBatches splits texts into consecutive batches of at most size
// texts and embeds each with EmbedWithRetryDelays. Vectors are returned
// in input order.
func EmbedInBatches(ctx context.Context, texts []string, size int, embed BatchFunc, logger *slog.Logger, delays []time.Duration) ([][]float32, error) {
	if size <= 0 {
		size = MaxBatchSize
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))

		vecs, err := EmbedWithRetryDelays(ctx, texts[start:end], embed, logger, delays)
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

// EmbedWithRetryDelays calls embed, retrying once per entry in delays and
// sleeping that long before each retry. EINVALID errors and context
// cancellation are returned immediately. When every attempt fails the last
// error is wrapped as EUNAVAILABLE.
func EmbedWithRetryDelays(ctx context.Context, batch []string, embed BatchFunc, logger *slog.Logger, delays []time.Duration) ([][]float32, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		vecs, err := embed(ctx, batch)
		if err == nil {
			return vecs, nil
		}
		lastErr = err

		// Invalid requests will fail the same way again.
		if docrank.ErrorCode(err) == docrank.EINVALID {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retrying embedding request",
				"texts", len(batch),
				"attempt", attempt+2,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, docrank.Errorf(docrank.EUNAVAILABLE, "gemini embed: %v", lastErr)
}

func (e *Embedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	contents := make([]*genai.Content, len(batch))
	for i, text := range batch {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, BuildConfig(e.Dimensions))
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docrank.Errorf(docrank.EINTERNAL, "gemini returned nil result")
	}
	if len(result.Embeddings) != len(batch) {
		return nil, docrank.Errorf(docrank.EINTERNAL, "gemini returned %d embeddings for %d texts", len(result.Embeddings), len(batch))
	}

	vecs := make([][]float32, len(batch))
	for i, emb := range result.Embeddings {
		if emb == nil {
			return nil, docrank.Errorf(docrank.EINTERNAL, "gemini returned nil embedding at %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

// BuildConfig returns the EmbedContentConfig for Gemini API calls.
func BuildConfig(dimensions int32) *genai.EmbedContentConfig {
	config := &genai.EmbedContentConfig{TaskType: taskType}
	if dimensions > 0 {
		config.OutputDimensionality = &dimensions
	}
	return config
}
