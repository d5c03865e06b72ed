// Package analyze runs the section ranking pipeline over a batch of
// documents. It renders and classifies documents concurrently, ranks the
// pooled headings against the intent once, and refines the top sections.
package analyze

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/docrank"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents processed at once.
const DefaultConcurrency = 4

// Request describes one analysis job.
type Request struct {
	Persona string
	Job     string
	// Paths are the documents to analyze, in reporting order.
	Paths []string
}

// Analyzer orchestrates rendering, classification, ranking and refinement.
type Analyzer struct {
	Renderer    docrank.Renderer
	Embedder    docrank.Embedder
	Classifier  *docrank.Classifier
	Logger      *slog.Logger
	Concurrency int
	TopK        int

	// Now returns the report timestamp. Defaults to time.Now.
	Now func() time.Time
	// NewID returns the report run ID. Defaults to a random UUID.
	NewID func() string
}

// Analyze runs the full pipeline and returns the report. Documents that
// fail to render are logged and skipped. An empty path list and any
// embedding failure abort the run.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*docrank.Report, error) {
	if len(req.Paths) == 0 {
		return nil, docrank.Errorf(docrank.EINVALID, "no documents to analyze")
	}

	docs, headings, err := a.Headings(ctx, req.Paths)
	if err != nil {
		return nil, err
	}
	a.logger().Info("detected headings", "documents", len(docs), "headings", len(headings))

	intent, err := docrank.EncodeIntent(ctx, a.Embedder, req.Persona, req.Job)
	if err != nil {
		return nil, err
	}

	ranked, err := docrank.RankHeadings(ctx, a.Embedder, intent, headings)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*docrank.Document, len(docs))
	for _, d := range docs {
		byName[d.Name] = d
	}

	names := make([]string, len(req.Paths))
	for i, p := range req.Paths {
		names[i] = filepath.Base(p)
	}

	return &docrank.Report{
		Metadata: docrank.Metadata{
			RunID:               a.newID(),
			InputDocuments:      names,
			Persona:             req.Persona,
			JobToBeDone:         req.Job,
			ProcessingTimestamp: a.now(),
		},
		ExtractedSections:  docrank.ExtractedSections(ranked, a.TopK),
		SubsectionAnalysis: nonNil(a.classifier().RefineTop(ranked, byName, a.TopK)),
	}, nil
}

// Headings renders every path and returns the successfully processed
// documents and their headings, both in path order. Only context
// cancellation is returned as an error.
func (a *Analyzer) Headings(ctx context.Context, paths []string) ([]*docrank.Document, []docrank.Heading, error) {
	type result struct {
		doc      *docrank.Document
		headings []docrank.Heading
	}
	results := make([]*result, len(paths))

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := a.process(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.logger().Warn("skipping document",
					"document", filepath.Base(path),
					"code", docrank.ErrorCode(err),
					"err", err,
				)
				return nil
			}
			results[i] = &result{doc: doc, headings: a.detect(doc)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var docs []*docrank.Document
	var headings []docrank.Heading
	for _, r := range results {
		if r == nil {
			continue
		}
		docs = append(docs, r.doc)
		headings = append(headings, r.headings...)
	}
	return docs, headings, nil
}

// process renders one document and rebuilds its lines.
func (a *Analyzer) process(ctx context.Context, path string) (*docrank.Document, error) {
	if a.Renderer == nil {
		return nil, docrank.Errorf(docrank.EINVALID, "renderer required")
	}
	pages, err := a.Renderer.Render(ctx, path)
	if err != nil {
		return nil, err
	}
	return docrank.NewDocument(filepath.Base(path), docrank.ReconstructLines(pages)), nil
}

// detect classifies every line of doc.
func (a *Analyzer) detect(doc *docrank.Document) []docrank.Heading {
	c := a.classifier()
	var headings []docrank.Heading
	for _, line := range doc.Lines {
		h, ok := c.Classify(line, doc.BodyFontSize)
		if !ok {
			continue
		}
		h.Document = doc.Name
		headings = append(headings, h)
	}
	return headings
}

func (a *Analyzer) classifier() *docrank.Classifier {
	if a.Classifier == nil {
		return docrank.NewClassifier()
	}
	return a.Classifier
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *Analyzer) newID() string {
	if a.NewID == nil {
		return uuid.New().String()
	}
	return a.NewID()
}

func nonNil(sections []docrank.RefinedSection) []docrank.RefinedSection {
	if sections == nil {
		return []docrank.RefinedSection{}
	}
	return sections
}
