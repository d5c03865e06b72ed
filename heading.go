package docrank

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeadingLevel is the coarse prominence tier of a heading.
type HeadingLevel string

// Heading levels. The scorer only distinguishes two tiers.
const (
	LevelProminent HeadingLevel = "H2"
	LevelSecondary HeadingLevel = "H3"
)

// Heading is a line that scored as a section title.
type Heading struct {
	Document  string       `json:"document"`
	Text      string       `json:"text"`
	Level     HeadingLevel `json:"level"`
	Page      int          `json:"page"`
	BBox      BBox         `json:"bbox"`
	LineIndex int          `json:"lineIndex"`
	Score     float64      `json:"score"`
}

// Thresholds holds the tunable constants of the heading scorer.
type Thresholds struct {
	// Lines containing any of these (lowercased) are body content.
	Denylist []string
	// Lines starting with any of these (lowercased) are list items.
	BulletPrefixes []string

	FontSizeWeight float64
	BoldBonus      float64
	UpperBonus     float64
	TitleBonus     float64
	// Uppercase bonus only applies above this many characters.
	UpperMinLength int

	LongLineLength  int
	LongLinePenalty float64
	PeriodPenalty   float64

	// A score must exceed HeadingScore to be a heading and exceed
	// ProminentScore to be LevelProminent.
	HeadingScore   float64
	ProminentScore float64
}

// DefaultThresholds returns the stock scorer configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Denylist:        []string{"ingredients", "instructions"},
		BulletPrefixes:  []string{"o ", "·", "*", "-", "•"},
		FontSizeWeight:  1.5,
		BoldBonus:       5,
		UpperBonus:      3,
		TitleBonus:      2,
		UpperMinLength:  3,
		LongLineLength:  80,
		LongLinePenalty: 4,
		PeriodPenalty:   2,
		HeadingScore:    2,
		ProminentScore:  7,
	}
}

// Classifier decides whether a line is a heading. It holds no state
// besides its thresholds and is safe for concurrent use.
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier returns a Classifier using DefaultThresholds.
func NewClassifier() *Classifier {
	return &Classifier{Thresholds: DefaultThresholds()}
}

// Classify scores line against the document's body font size and returns
// the resulting heading. The Document field of the heading is left empty.
func (c *Classifier) Classify(line Line, bodyFontSize float64) (Heading, bool) {
	score, ok := c.Score(line, bodyFontSize)
	if !ok || score <= c.Thresholds.HeadingScore {
		return Heading{}, false
	}

	level := LevelSecondary
	if score > c.Thresholds.ProminentScore {
		level = LevelProminent
	}

	return Heading{
		Text:      line.Text,
		Level:     level,
		Page:      line.Page,
		BBox:      line.BBox,
		LineIndex: line.Index,
	}, true
}

// Score returns the heuristic heading score of line. The second result
// is false when a rejection filter fired and no score was computed.
func (c *Classifier) Score(line Line, bodyFontSize float64) (float64, bool) {
	t := c.Thresholds
	text := line.Text
	if c.rejected(text) {
		return 0, false
	}

	var score float64
	if line.FontSize > bodyFontSize {
		score += (line.FontSize - bodyFontSize) * t.FontSizeWeight
	}
	if line.Bold {
		score += t.BoldBonus
	}

	n := utf8.RuneCountInString(text)
	if n > t.UpperMinLength && isUpper(text) {
		score += t.UpperBonus
	} else if isTitle(text) {
		score += t.TitleBonus
	}

	if n > t.LongLineLength {
		score -= t.LongLinePenalty
	}
	if strings.HasSuffix(text, ".") {
		score -= t.PeriodPenalty
	}
	return score, true
}

func (c *Classifier) rejected(text string) bool {
	if text == "" || strings.Contains(text, "\n") {
		return true
	}

	lower := strings.ToLower(text)
	for _, term := range c.Thresholds.Denylist {
		if strings.Contains(lower, term) {
			return true
		}
	}
	for _, p := range c.Thresholds.BulletPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return isNumberedItem(text)
}

// isNumberedItem reports whether text looks like "1. Something".
func isNumberedItem(text string) bool {
	runes := []rune(text)
	return len(runes) > 2 && unicode.IsDigit(runes[0]) && runes[1] == '.'
}

// isUpper reports whether text has at least one cased letter and no
// lowercase letters.
func isUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// isTitle reports whether every word starts with an uppercase letter
// followed only by lowercase letters. Uncased characters separate words.
func isTitle(text string) bool {
	cased := false
	prevCased := false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}
