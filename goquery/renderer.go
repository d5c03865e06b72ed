// Package goquery renders HTML documents into positioned spans using
// github.com/PuerkitoBio/goquery. Each block element becomes one line
// whose size and weight follow the browser defaults for its tag.
package goquery

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrank"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Font names reported for rendered spans.
const (
	FontRegular = "Helvetica"
	FontBold    = "Helvetica-Bold"
)

// BodyFontSize is the size given to paragraphs and other plain blocks.
const BodyFontSize = 10.0

// lineSpacing is the baseline advance as a multiple of font size.
const lineSpacing = 1.4

const leftMargin = 72.0

// blockSelector lists the elements rendered as lines.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, blockquote, pre, th, td, figcaption, caption"

// removeSelector lists page chrome that never holds document content.
const removeSelector = "script, style, noscript, template, nav, footer, aside, [role=navigation]"

// contentSelectors are tried in order to find the main content root.
var contentSelectors = []string{"main", "article", "[role=main]", "body"}

var headingSizes = map[string]float64{
	"h1": 24,
	"h2": 18,
	"h3": 15,
	"h4": 13,
	"h5": 12,
	"h6": 11,
}

// Ensure Renderer implements docrank.Renderer at compile time.
var _ docrank.Renderer = (*Renderer)(nil)

// Renderer implements docrank.Renderer for HTML files.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render reads the HTML file at path and lays out its block elements.
func (r *Renderer) Render(ctx context.Context, path string) ([]docrank.Page, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docrank.Errorf(docrank.ENOTFOUND, "document %q not found", path)
	} else if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return RenderHTML(data)
}

// RenderHTML lays out an HTML document. Elements styled with a page break
// before them start a new page.
func RenderHTML(data []byte) ([]docrank.Page, error) {
	utf8Reader, err := charset.NewReader(bytes.NewReader(data), "")
	if err != nil {
		return nil, docrank.Errorf(docrank.EINVALID, "failed to decode HTML: %v", err)
	}
	node, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, docrank.Errorf(docrank.EINVALID, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(node)
	doc.Find(removeSelector).Remove()

	root := doc.Selection
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			root = found
			break
		}
	}

	pages := []docrank.Page{{Number: 1}}
	y := 0.0
	root.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Nested blocks are rendered as part of their outermost block.
		if sel.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}

		if breaksPage(sel) && len(pages[len(pages)-1].Spans) > 0 {
			pages = append(pages, docrank.Page{Number: len(pages) + 1})
			y = 0
		}

		tag := goquery.NodeName(sel)
		size := BodyFontSize
		if s, ok := headingSizes[tag]; ok {
			size = s
		}
		font := FontRegular
		if isBold(sel, tag) {
			font = FontBold
		}
		if tag == "li" {
			text = "• " + text
		}

		y += size * lineSpacing
		page := &pages[len(pages)-1]
		page.Spans = append(page.Spans, docrank.Span{
			Text: text,
			BBox: docrank.BBox{
				X0: leftMargin,
				Y0: y - size,
				X1: leftMargin + float64(utf8.RuneCountInString(text))*size*0.5,
				Y1: y,
			},
			FontName: font,
			FontSize: size,
		})
	})

	if len(pages[0].Spans) == 0 {
		return nil, nil
	}
	return pages, nil
}

// isBold reports whether the whole element is set in a heavy weight:
// headings, table headers, and blocks whose text is entirely emphasised.
func isBold(sel *goquery.Selection, tag string) bool {
	if _, ok := headingSizes[tag]; ok || tag == "th" {
		return true
	}
	if style, ok := sel.Attr("style"); ok && strings.Contains(strings.ReplaceAll(style, " ", ""), "font-weight:bold") {
		return true
	}

	strong := sel.ChildrenFiltered("b, strong")
	if strong.Length() == 0 {
		return false
	}
	return strings.Join(strings.Fields(strong.Text()), " ") == strings.Join(strings.Fields(sel.Text()), " ")
}

func breaksPage(sel *goquery.Selection) bool {
	style, ok := sel.Attr("style")
	if !ok {
		return false
	}
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "page-break-before:always") || strings.Contains(style, "break-before:page")
}
