package docrank_test

import (
	"testing"

	"github.com/fwojciec/docrank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Preheat oven", want: "Preheat oven"},
		{name: "round bullet", in: "• 2 cups flour", want: "2 cups flour"},
		{name: "private use bullet", in: "\uf0b7 1 egg", want: "1 egg"},
		{name: "o bullet", in: "  o Salt to taste", want: "Salt to taste"},
		{name: "bullet then o bullet", in: "• o pepper", want: "pepper"},
		{name: "only bullet", in: " • ", want: ""},
		{name: "o without space kept", in: "olive oil", want: "olive oil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docrank.CleanLine(tt.in))
		})
	}
}

func recipeDocument() *docrank.Document {
	lines := []docrank.Line{
		{Text: "PASTA DISHES", FontSize: 18, Bold: true, Page: 1},
		{Text: "Classic Lasagna", FontSize: 14, Bold: true, Page: 1},
		{Text: "Ingredients:", FontSize: 10, Bold: true, Page: 1},
		{Text: "• 12   lasagna noodles", FontSize: 10, Page: 1},
		{Text: "o 2 cups ricotta", FontSize: 10, Page: 1},
		{Text: "bake for 45 minutes.", FontSize: 10, Page: 1},
		{Text: "Quick Pesto", FontSize: 14, Bold: true, Page: 1},
		{Text: "blend basil and garlic.", FontSize: 10, Page: 1},
		{Text: "continues on the next page.", FontSize: 10, Page: 2},
	}
	for i := range lines {
		lines[i].Index = i
		lines[i].BBox = docrank.BBox{X0: 10, Y0: float64(i * 20), X1: 200, Y1: float64(i*20 + 12)}
	}
	return docrank.NewDocument("recipes.pdf", lines)
}

func headingAt(t *testing.T, doc *docrank.Document, i int) docrank.Heading {
	t.Helper()
	h, ok := docrank.NewClassifier().Classify(doc.Lines[i], doc.BodyFontSize)
	require.True(t, ok, "line %d should be a heading", i)
	h.Document = doc.Name
	return h
}

func TestClassifier_Refine(t *testing.T) {
	t.Parallel()

	c := docrank.NewClassifier()

	t.Run("collects cleaned lines until the next heading", func(t *testing.T) {
		t.Parallel()

		doc := recipeDocument()

		got := c.Refine(headingAt(t, doc, 1), doc)

		assert.Equal(t, "Classic Lasagna Ingredients: 12 lasagna noodles 2 cups ricotta bake for 45 minutes.", got)
	})

	t.Run("stops at the page boundary", func(t *testing.T) {
		t.Parallel()

		doc := recipeDocument()

		got := c.Refine(headingAt(t, doc, 6), doc)

		assert.Equal(t, "Quick Pesto blend basil and garlic.", got)
	})

	t.Run("heading followed by heading yields its own text", func(t *testing.T) {
		t.Parallel()

		doc := recipeDocument()

		got := c.Refine(headingAt(t, doc, 0), doc)

		assert.Equal(t, "PASTA DISHES", got)
	})

	t.Run("last line of document", func(t *testing.T) {
		t.Parallel()

		doc := docrank.NewDocument("a.pdf", []docrank.Line{
			{Index: 0, Text: "body text here", FontSize: 10, Page: 1},
			{Index: 1, Text: "Closing Remarks", FontSize: 16, Bold: true, Page: 1},
		})

		got := c.Refine(headingAt(t, doc, 1), doc)

		assert.Equal(t, "Closing Remarks", got)
	})

	t.Run("missing heading line yields empty text", func(t *testing.T) {
		t.Parallel()

		doc := recipeDocument()
		h := headingAt(t, doc, 1)

		stale := h
		stale.LineIndex = 42
		assert.Empty(t, c.Refine(stale, doc))

		moved := h
		moved.Page = 3
		assert.Empty(t, c.Refine(moved, doc))

		renamed := h
		renamed.Text = "Other"
		assert.Empty(t, c.Refine(renamed, doc))

		assert.Empty(t, c.Refine(h, nil))
	})
}

func TestClassifier_RefineTop(t *testing.T) {
	t.Parallel()

	c := docrank.NewClassifier()
	doc := recipeDocument()
	docs := map[string]*docrank.Document{doc.Name: doc}

	ranked := []docrank.Heading{
		headingAt(t, doc, 6),
		{Document: "missing.pdf", Text: "Gone", Page: 1},
		headingAt(t, doc, 1),
		headingAt(t, doc, 0),
	}
	stale := headingAt(t, doc, 1)
	stale.LineIndex = 99
	ranked = append([]docrank.Heading{stale}, ranked...)

	t.Run("refines in ranked order and omits empty results", func(t *testing.T) {
		t.Parallel()

		got := c.RefineTop(ranked, docs, 4)

		require.Len(t, got, 2)
		assert.Equal(t, "Quick Pesto blend basil and garlic.", got[0].RefinedText)
		assert.Equal(t, "recipes.pdf", got[0].Document)
		assert.Equal(t, 1, got[0].PageNumber)
		assert.Contains(t, got[1].RefinedText, "Classic Lasagna")
	})

	t.Run("non-positive k uses the default", func(t *testing.T) {
		t.Parallel()

		got := c.RefineTop(ranked, docs, 0)

		assert.Len(t, got, 3)
	})
}
