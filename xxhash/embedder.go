// Package xxhash implements an offline, deterministic docrank.Embedder
// that hashes word features into a fixed-size vector with xxhash.
package xxhash

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docrank"
)

// DefaultDimensions is the vector size used when none is configured.
const DefaultDimensions = 384

// Feature weights. Stems let inflected forms of a word share a bucket.
const (
	wordWeight   = 1.0
	stemWeight   = 0.5
	bigramWeight = 0.5
	stemLength   = 5
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true, "your": true, "you": true, "this": true, "that": true,
}

// Ensure Embedder implements docrank.Embedder at compile time.
var _ docrank.Embedder = (*Embedder)(nil)

// Embedder maps text to L2-normalised feature-hashed vectors. The same
// text always yields the same vector. It is safe for concurrent use.
type Embedder struct {
	dim int
}

// NewEmbedder creates an Embedder producing vectors of dim components.
// A non-positive dim selects DefaultDimensions.
func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDimensions
	}
	return &Embedder{dim: dim}
}

// Dimensions returns the vector size.
func (e *Embedder) Dimensions() int {
	return e.dim
}

// Embed returns one vector per text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	acc := make([]float64, e.dim)
	add := func(feature string, weight float64) {
		h := xxhash.Sum64String(feature)
		idx := h % uint64(e.dim)
		if h>>63 == 1 {
			weight = -weight
		}
		acc[idx] += weight
	}

	words := Tokenize(text)
	for i, w := range words {
		add("w:"+w, wordWeight)
		if r := []rune(w); len(r) > stemLength {
			add("s:"+string(r[:stemLength]), stemWeight)
		}
		if i > 0 {
			add("b:"+words[i-1]+" "+w, bigramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make([]float32, e.dim)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// Tokenize lowercases text and splits it into words of letters and
// digits, dropping common stopwords.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if !stopwords[f] {
			words = append(words, f)
		}
	}
	return words
}
