package docrank

import (
	"context"
	"time"
)

// Report is the result of an analysis run.
type Report struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []RefinedSection   `json:"subsection_analysis"`
}

// Metadata describes the inputs of an analysis run.
type Metadata struct {
	RunID               string    `json:"run_id"`
	InputDocuments      []string  `json:"input_documents"`
	Persona             string    `json:"persona"`
	JobToBeDone         string    `json:"job_to_be_done"`
	ProcessingTimestamp time.Time `json:"processing_timestamp"`
}

// ExtractedSection is one ranked heading in the report.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// ExtractedSections converts the first k ranked headings into report
// entries with 1-based ranks.
func ExtractedSections(ranked []Heading, k int) []ExtractedSection {
	top := topK(ranked, k)
	out := make([]ExtractedSection, len(top))
	for i, h := range top {
		out[i] = ExtractedSection{
			Document:       h.Document,
			SectionTitle:   h.Text,
			ImportanceRank: i + 1,
			PageNumber:     h.Page,
		}
	}
	return out
}

// ReportWriter persists a finished report.
type ReportWriter interface {
	WriteReport(ctx context.Context, report *Report) error
}
