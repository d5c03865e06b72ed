package docrank

import "strings"

// DefaultTopK is the number of ranked sections reported and refined.
const DefaultTopK = 5

// bulletGlyphs are removed from body lines during refinement.
var bulletGlyphs = strings.NewReplacer("\uf0b7", "", "\u2022", "")

// RefinedSection is the cleaned body text of one ranked section.
type RefinedSection struct {
	Document    string `json:"document"`
	PageNumber  int    `json:"page_number"`
	RefinedText string `json:"refined_text"`
}

// CleanLine strips bullet glyphs, surrounding whitespace and a leading
// "o " bullet from a body line.
func CleanLine(text string) string {
	text = strings.TrimSpace(bulletGlyphs.Replace(text))
	if strings.HasPrefix(text, "o ") {
		text = strings.TrimSpace(text[2:])
	}
	return text
}

// Refine collects the text of the section introduced by h: the heading
// line itself followed by every cleaned line on the same page up to the
// next line that classifies as a heading. Whitespace is collapsed to
// single spaces. An empty string is returned when the heading line
// cannot be found in doc.
func (c *Classifier) Refine(h Heading, doc *Document) string {
	if doc == nil || h.LineIndex < 0 || h.LineIndex >= len(doc.Lines) {
		return ""
	}
	start := doc.Lines[h.LineIndex]
	if start.Page != h.Page || start.Text != h.Text {
		return ""
	}

	parts := []string{h.Text}
	for _, line := range doc.Lines[h.LineIndex+1:] {
		if line.Page != h.Page {
			break
		}
		if _, ok := c.Classify(line, doc.BodyFontSize); ok {
			break
		}
		if text := CleanLine(line.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// RefineTop refines the first k ranked headings. docs maps document name
// to document. Headings whose document is unknown or whose refinement is
// empty are omitted.
func (c *Classifier) RefineTop(ranked []Heading, docs map[string]*Document, k int) []RefinedSection {
	var out []RefinedSection
	for _, h := range topK(ranked, k) {
		doc, ok := docs[h.Document]
		if !ok {
			continue
		}
		text := c.Refine(h, doc)
		if text == "" {
			continue
		}
		out = append(out, RefinedSection{
			Document:    h.Document,
			PageNumber:  h.Page,
			RefinedText: text,
		})
	}
	return out
}

// topK returns at most k leading headings. A non-positive k means
// DefaultTopK.
func topK(ranked []Heading, k int) []Heading {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(ranked) < k {
		return ranked
	}
	return ranked[:k]
}
