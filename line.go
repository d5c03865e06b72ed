package docrank

import (
	"math"
	"sort"
	"strings"
)

// boldMarkers are substrings of a font name that indicate a heavy weight.
var boldMarkers = []string{"bold", "black", "heavy"}

// Line is a visual line of text rebuilt from spans sharing a baseline.
type Line struct {
	// Index is the position of the line in its document's line sequence.
	// Headings keep it so refinement can find their line again.
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Bold     bool    `json:"bold"`
	Page     int     `json:"page"`
	BBox     BBox    `json:"bbox"`
}

// ReconstructLines groups the spans of each page by rounded baseline and
// merges every group left to right into a single Line. Lines are ordered
// by page, then baseline. Lines whose text is blank are dropped.
func ReconstructLines(pages []Page) []Line {
	var lines []Line
	for _, page := range pages {
		groups := make(map[float64][]Span)
		for _, span := range page.Spans {
			key := math.RoundToEven(span.BBox.Y1)
			groups[key] = append(groups[key], span)
		}

		keys := make([]float64, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Float64s(keys)

		for _, k := range keys {
			line, ok := mergeSpans(groups[k])
			if !ok {
				continue
			}
			line.Page = page.Number
			line.Index = len(lines)
			lines = append(lines, line)
		}
	}
	return lines
}

// mergeSpans joins one baseline group into a Line.
func mergeSpans(spans []Span) (Line, bool) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].BBox.X0 < spans[j].BBox.X0
	})

	texts := make([]string, len(spans))
	var size float64
	for i, s := range spans {
		texts[i] = s.Text
		if i == 0 || s.FontSize > size {
			size = s.FontSize
		}
	}

	text := strings.TrimSpace(strings.Join(texts, " "))
	if text == "" {
		return Line{}, false
	}

	return Line{
		Text:     text,
		FontSize: size,
		Bold:     isBoldFont(dominantFont(spans)),
		BBox:     spans[0].BBox,
	}, true
}

// dominantFont returns the most frequent font name. Ties go to the font
// that appears first.
func dominantFont(spans []Span) string {
	counts := make(map[string]int, len(spans))
	for _, s := range spans {
		counts[s.FontName]++
	}
	var best string
	bestCount := 0
	for _, s := range spans {
		if c := counts[s.FontName]; c > bestCount {
			best, bestCount = s.FontName, c
		}
	}
	return best
}

func isBoldFont(name string) bool {
	name = strings.ToLower(name)
	for _, m := range boldMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
