package docrank

import "math"

// DefaultBodyFontSize is used for documents that yield no lines.
const DefaultBodyFontSize = 10.0

// Document is a rendered document with its reconstructed lines.
type Document struct {
	Name         string  `json:"name"`
	Lines        []Line  `json:"lines"`
	BodyFontSize float64 `json:"bodyFontSize"`
}

// NewDocument returns a Document with its body font size computed from lines.
func NewDocument(name string, lines []Line) *Document {
	return &Document{
		Name:         name,
		Lines:        lines,
		BodyFontSize: BodyFontSize(lines),
	}
}

// BodyFontSize returns the most common rounded font size among lines.
// Ties go to the size seen first. Returns DefaultBodyFontSize when lines
// is empty.
func BodyFontSize(lines []Line) float64 {
	if len(lines) == 0 {
		return DefaultBodyFontSize
	}

	counts := make(map[float64]int)
	order := make([]float64, 0)
	for _, l := range lines {
		size := math.RoundToEven(l.FontSize)
		if _, ok := counts[size]; !ok {
			order = append(order, size)
		}
		counts[size]++
	}

	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best
}
