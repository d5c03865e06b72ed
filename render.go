package docrank

import "context"

// BBox is an axis-aligned bounding box in page coordinates. Y grows
// downward, so Y1 is the baseline side of a text run.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Span is a contiguous run of text set in a single font.
type Span struct {
	Text     string  `json:"text"`
	BBox     BBox    `json:"bbox"`
	FontName string  `json:"fontName"`
	FontSize float64 `json:"fontSize"`
}

// Page holds the spans rendered from one physical page.
// Number is 1-based.
type Page struct {
	Number int
	Spans  []Span
}

// Renderer turns a document on disk into positioned, styled spans.
type Renderer interface {
	// Render returns the pages of the document at path in reading order.
	// Returns ENOTFOUND if the file does not exist.
	Render(ctx context.Context, path string) ([]Page, error)
}
