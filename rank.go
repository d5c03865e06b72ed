package docrank

import (
	"context"
	"math"
	"sort"
)

// RankHeadings scores every heading by cosine similarity to intent and
// returns a new slice ordered by descending score. Headings with equal
// scores keep their input order. All heading texts are embedded in a
// single call; an empty input returns nil without calling emb. A heading
// vector whose dimension differs from intent is an EUNAVAILABLE error.
func RankHeadings(ctx context.Context, emb Embedder, intent IntentVector, headings []Heading) ([]Heading, error) {
	if len(headings) == 0 {
		return nil, nil
	}

	texts := make([]string, len(headings))
	for i, h := range headings {
		texts[i] = h.Text
	}

	vecs, err := embed(ctx, emb, texts)
	if err != nil {
		return nil, err
	}

	ranked := make([]Heading, len(headings))
	for i, h := range headings {
		if len(vecs[i]) != len(intent) {
			return nil, Errorf(EUNAVAILABLE, "embedder returned %d dimensions for %q, intent has %d", len(vecs[i]), h.Text, len(intent))
		}
		h.Score = CosineSimilarity(intent, vecs[i])
		ranked[i] = h
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// CosineSimilarity returns the cosine of the angle between a and b.
// It returns 0 when the vectors differ in length or either has zero
// magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
