package docrank_test

import (
	"testing"

	"github.com/fwojciec/docrank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractedSections(t *testing.T) {
	t.Parallel()

	ranked := make([]docrank.Heading, 7)
	for i := range ranked {
		ranked[i] = docrank.Heading{Document: "d.pdf", Text: string(rune('A' + i)), Page: i + 1}
	}

	t.Run("truncates to k with one-based ranks", func(t *testing.T) {
		t.Parallel()

		got := docrank.ExtractedSections(ranked, 3)

		require.Len(t, got, 3)
		for i, s := range got {
			assert.Equal(t, i+1, s.ImportanceRank)
			assert.Equal(t, ranked[i].Text, s.SectionTitle)
			assert.Equal(t, ranked[i].Page, s.PageNumber)
			assert.Equal(t, "d.pdf", s.Document)
		}
	})

	t.Run("defaults to five", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, docrank.ExtractedSections(ranked, 0), docrank.DefaultTopK)
	})

	t.Run("fewer headings than k", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, docrank.ExtractedSections(ranked[:2], 5), 2)
	})

	t.Run("no headings", func(t *testing.T) {
		t.Parallel()

		got := docrank.ExtractedSections(nil, 5)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
