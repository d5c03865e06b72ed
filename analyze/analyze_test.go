package analyze_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docrank"
	"github.com/fwojciec/docrank/analyze"
	"github.com/fwojciec/docrank/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page builds a page from (text, size, font) lines laid out top to bottom.
func page(number int, lines ...docrank.Span) docrank.Page {
	for i := range lines {
		y := float64(100 + i*20)
		lines[i].BBox = docrank.BBox{X0: 72, Y0: y - lines[i].FontSize, X1: 300, Y1: y}
	}
	return docrank.Page{Number: number, Spans: lines}
}

func heading(text string) docrank.Span {
	return docrank.Span{Text: text, FontName: "Arial-Bold", FontSize: 16}
}

func body(text string) docrank.Span {
	return docrank.Span{Text: text, FontName: "Arial", FontSize: 10}
}

func fixtureRenderer() *mock.Renderer {
	docs := map[string][]docrank.Page{
		"/docs/france.pdf": {
			page(1,
				heading("Coastal Adventures"),
				body("beaches along the riviera."),
				body("o kayaking tours."),
				heading("Nightlife"),
				body("bars open late."),
			),
		},
		"/docs/cuisine.pdf": {
			page(1,
				heading("Regional Cuisine"),
				body("try the bouillabaisse."),
			),
			page(2,
				heading("Wine Tasting"),
				body("visit bordeaux."),
			),
		},
	}
	return &mock.Renderer{
		RenderFn: func(_ context.Context, path string) ([]docrank.Page, error) {
			pages, ok := docs[path]
			if !ok {
				return nil, docrank.Errorf(docrank.ENOTFOUND, "document %q not found", path)
			}
			return pages, nil
		},
	}
}

const (
	persona = "Travel Planner"
	job     = "Plan a beach trip"
)

func fixtureEmbedder() *mock.Embedder {
	return mock.StaticEmbedder(3, map[string][]float32{
		docrank.IntentPrompt(persona, job): {1, 0, 0},
		"Coastal Adventures":               {0.9, 0.1, 0},
		"Nightlife":                        {0.2, 0.9, 0},
		"Regional Cuisine":                 {0.5, 0.5, 0},
		"Wine Tasting":                     {0.1, 0, 1},
	})
}

func newAnalyzer(r docrank.Renderer, e docrank.Embedder, logger *slog.Logger) *analyze.Analyzer {
	return &analyze.Analyzer{
		Renderer: r,
		Embedder: e,
		Logger:   logger,
		Now:      func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) },
		NewID:    func() string { return "run-1" },
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("ranks headings across documents and refines top sections", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(fixtureRenderer(), fixtureEmbedder(), nil)

		report, err := a.Analyze(context.Background(), analyze.Request{
			Persona: persona,
			Job:     job,
			Paths:   []string{"/docs/cuisine.pdf", "/docs/france.pdf"},
		})
		require.NoError(t, err)

		assert.Equal(t, "run-1", report.Metadata.RunID)
		assert.Equal(t, []string{"cuisine.pdf", "france.pdf"}, report.Metadata.InputDocuments)
		assert.Equal(t, persona, report.Metadata.Persona)
		assert.Equal(t, job, report.Metadata.JobToBeDone)
		assert.Equal(t, 2026, report.Metadata.ProcessingTimestamp.Year())

		require.Len(t, report.ExtractedSections, 4)
		first := report.ExtractedSections[0]
		assert.Equal(t, "Coastal Adventures", first.SectionTitle)
		assert.Equal(t, "france.pdf", first.Document)
		assert.Equal(t, 1, first.ImportanceRank)
		assert.Equal(t, 1, first.PageNumber)

		var titles []string
		for _, s := range report.ExtractedSections {
			titles = append(titles, s.SectionTitle)
		}
		assert.Equal(t, []string{"Coastal Adventures", "Regional Cuisine", "Nightlife", "Wine Tasting"}, titles)

		require.Len(t, report.SubsectionAnalysis, 4)
		assert.Equal(t, "Coastal Adventures beaches along the riviera. kayaking tours.", report.SubsectionAnalysis[0].RefinedText)
		assert.Equal(t, "Wine Tasting visit bordeaux.", report.SubsectionAnalysis[3].RefinedText)
		assert.Equal(t, 2, report.SubsectionAnalysis[3].PageNumber)
	})

	t.Run("respects top k", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(fixtureRenderer(), fixtureEmbedder(), nil)
		a.TopK = 2

		report, err := a.Analyze(context.Background(), analyze.Request{
			Persona: persona,
			Job:     job,
			Paths:   []string{"/docs/cuisine.pdf", "/docs/france.pdf"},
		})

		require.NoError(t, err)
		assert.Len(t, report.ExtractedSections, 2)
		assert.Len(t, report.SubsectionAnalysis, 2)
	})

	t.Run("skips documents that fail to render", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		a := newAnalyzer(fixtureRenderer(), fixtureEmbedder(), logger)

		report, err := a.Analyze(context.Background(), analyze.Request{
			Persona: persona,
			Job:     job,
			Paths:   []string{"/docs/missing.pdf", "/docs/france.pdf"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"missing.pdf", "france.pdf"}, report.Metadata.InputDocuments)
		require.Len(t, report.ExtractedSections, 2)
		for _, s := range report.ExtractedSections {
			assert.Equal(t, "france.pdf", s.Document)
		}
		assert.Contains(t, buf.String(), "skipping document")
		assert.Contains(t, buf.String(), "missing.pdf")
	})

	t.Run("no documents is invalid", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(fixtureRenderer(), fixtureEmbedder(), nil)

		_, err := a.Analyze(context.Background(), analyze.Request{Persona: persona, Job: job})

		require.Error(t, err)
		assert.Equal(t, docrank.EINVALID, docrank.ErrorCode(err))
	})

	t.Run("embedder failure aborts the run", func(t *testing.T) {
		t.Parallel()

		emb := &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("model offline")
			},
		}
		a := newAnalyzer(fixtureRenderer(), emb, nil)

		report, err := a.Analyze(context.Background(), analyze.Request{
			Persona: persona,
			Job:     job,
			Paths:   []string{"/docs/france.pdf"},
		})

		require.Error(t, err)
		assert.Nil(t, report)
		assert.Equal(t, docrank.EUNAVAILABLE, docrank.ErrorCode(err))
	})

	t.Run("all documents failing yields an empty report", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		emb := &mock.Embedder{
			EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
				calls.Add(1)
				return [][]float32{{1}}, nil
			},
		}
		a := newAnalyzer(fixtureRenderer(), emb, nil)

		report, err := a.Analyze(context.Background(), analyze.Request{
			Persona: persona,
			Job:     job,
			Paths:   []string{"/docs/missing.pdf"},
		})

		require.NoError(t, err)
		assert.Empty(t, report.ExtractedSections)
		assert.NotNil(t, report.SubsectionAnalysis)
		assert.Empty(t, report.SubsectionAnalysis)
		assert.Equal(t, int32(1), calls.Load(), "only the intent is embedded")
	})
}

func TestAnalyzer_Headings(t *testing.T) {
	t.Parallel()

	t.Run("returns headings in path order", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Renderer: fixtureRenderer(), Concurrency: 1}

		docs, headings, err := a.Headings(context.Background(), []string{"/docs/france.pdf", "/docs/cuisine.pdf"})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "france.pdf", docs[0].Name)
		assert.Equal(t, 10.0, docs[0].BodyFontSize)

		var got []string
		for _, h := range headings {
			got = append(got, h.Document+":"+h.Text)
		}
		assert.Equal(t, []string{
			"france.pdf:Coastal Adventures",
			"france.pdf:Nightlife",
			"cuisine.pdf:Regional Cuisine",
			"cuisine.pdf:Wine Tasting",
		}, got)
	})

	t.Run("order is stable under concurrency", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Renderer: fixtureRenderer(), Concurrency: 8}
		paths := []string{"/docs/cuisine.pdf", "/docs/france.pdf", "/docs/cuisine.pdf"}

		for i := 0; i < 20; i++ {
			docs, _, err := a.Headings(context.Background(), paths)
			require.NoError(t, err)
			require.Len(t, docs, 3)
			assert.Equal(t, "cuisine.pdf", docs[0].Name)
			assert.Equal(t, "france.pdf", docs[1].Name)
		}
	})

	t.Run("empty document contributes no headings", func(t *testing.T) {
		t.Parallel()

		r := &mock.Renderer{
			RenderFn: func(context.Context, string) ([]docrank.Page, error) {
				return nil, nil
			},
		}
		a := &analyze.Analyzer{Renderer: r}

		docs, headings, err := a.Headings(context.Background(), []string{"blank.pdf"})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, docrank.DefaultBodyFontSize, docs[0].BodyFontSize)
		assert.Empty(t, headings)
	})

	t.Run("cancellation is returned", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		r := &mock.Renderer{
			RenderFn: func(ctx context.Context, _ string) ([]docrank.Page, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		a := &analyze.Analyzer{Renderer: r}

		_, _, err := a.Headings(ctx, []string{"a.pdf"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
