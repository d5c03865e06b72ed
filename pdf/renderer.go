// Package pdf renders PDF files into positioned spans using
// github.com/ledongthuc/pdf.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fwojciec/docrank"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// defaultPageHeight is US Letter height in points, used when a page has
// no resolvable MediaBox.
const defaultPageHeight = 792.0

// Glyph runs closer than wordGap*size are joined without a space; runs
// further apart than spanGap*size start a new span.
const (
	wordGap = 0.15
	spanGap = 1.0
)

// Ensure Renderer implements docrank.Renderer at compile time.
var _ docrank.Renderer = (*Renderer)(nil)

// Renderer implements docrank.Renderer for PDF files.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render reads every page of the PDF at path and returns its spans.
func (r *Renderer) Render(ctx context.Context, path string) ([]docrank.Page, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, docrank.Errorf(docrank.ENOTFOUND, "document %q not found", path)
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, docrank.Errorf(docrank.EINVALID, "open pdf %q: %v", path, err)
	}
	defer f.Close()

	var pages []docrank.Page
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		texts, err := pageText(page)
		if err != nil {
			return nil, docrank.Errorf(docrank.EINVALID, "read page %d of %q: %v", i, path, err)
		}

		pages = append(pages, docrank.Page{
			Number: i,
			Spans:  SpansFromText(texts, pageHeight(page)),
		})
	}
	return pages, nil
}

// pageText extracts the glyph runs of a page. The underlying library
// panics on some malformed content streams.
func pageText(page pdflib.Page) (texts []pdflib.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return page.Content().Text, nil
}

// pageHeight returns the MediaBox height of page, walking up the page
// tree for inherited boxes.
func pageHeight(page pdflib.Page) float64 {
	v := page.V
	for depth := 0; depth < 8 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// SpansFromText merges consecutive glyph runs that share font, size and
// baseline into spans. PDF coordinates grow upward, so baselines are
// flipped against pageHeight to give top-down boxes.
func SpansFromText(texts []pdflib.Text, pageHeight float64) []docrank.Span {
	var spans []docrank.Span
	var cur *docrank.Span
	var sb strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = sb.String()
		if strings.TrimSpace(cur.Text) != "" {
			spans = append(spans, *cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, t := range texts {
		s := norm.NFKC.String(t.S)
		if s == "" {
			continue
		}
		baseline := pageHeight - t.Y

		if cur != nil && continues(cur, t, baseline) {
			gap := t.X - cur.BBox.X1
			if gap > wordGap*t.FontSize && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(s, " ") {
				sb.WriteByte(' ')
			}
			sb.WriteString(s)
			cur.BBox.X1 = math.Max(cur.BBox.X1, t.X+t.W)
			continue
		}

		flush()
		cur = &docrank.Span{
			BBox: docrank.BBox{
				X0: t.X,
				Y0: baseline - t.FontSize,
				X1: t.X + t.W,
				Y1: baseline,
			},
			FontName: t.Font,
			FontSize: t.FontSize,
		}
		sb.WriteString(s)
	}
	flush()

	return spans
}

// continues reports whether glyph run t extends span cur.
func continues(cur *docrank.Span, t pdflib.Text, baseline float64) bool {
	if t.Font != cur.FontName || t.FontSize != cur.FontSize {
		return false
	}
	if math.Abs(baseline-cur.BBox.Y1) > 0.5 {
		return false
	}
	gap := t.X - cur.BBox.X1
	return gap >= -wordGap*t.FontSize && gap <= spanGap*t.FontSize
}
