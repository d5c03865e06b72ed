package main

import (
	"fmt"

	"github.com/fwojciec/docrank"
	"github.com/fwojciec/docrank/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	job, err := LoadJob(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrank.ErrorMessage(err))
		return err
	}

	deps.Analyzer.TopK = c.TopK
	deps.Analyzer.Concurrency = c.Concurrency

	report, err := deps.Analyzer.Analyze(deps.Ctx, analyze.Request{
		Persona: job.Persona.Role,
		Job:     job.JobToBeDone.Task,
		Paths:   job.Paths(c.DocsDir),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrank.ErrorMessage(err))
		return err
	}

	if err := deps.Reports.WriteReport(deps.Ctx, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write report: %s\n", docrank.ErrorMessage(err))
		return err
	}

	if len(report.ExtractedSections) == 0 {
		fmt.Fprintln(deps.Stdout, "No headings found in the given documents.")
	}
	for _, s := range report.ExtractedSections {
		fmt.Fprintf(deps.Stdout, "%d. %s (%s, page %d)\n", s.ImportanceRank, s.SectionTitle, s.Document, s.PageNumber)
	}
	fmt.Fprintf(deps.Stdout, "Analysis complete. Output saved to %s\n", c.Output)
	return nil
}
