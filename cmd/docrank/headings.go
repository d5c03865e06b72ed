package main

import (
	"fmt"

	"github.com/fwojciec/docrank"
)

// Run executes the headings command.
func (c *HeadingsCmd) Run(deps *Dependencies) error {
	deps.Analyzer.Concurrency = c.Concurrency

	docs, headings, err := deps.Analyzer.Headings(deps.Ctx, c.Paths)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrank.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: none of the documents could be read")
		return docrank.Errorf(docrank.ENOTFOUND, "no readable documents")
	}

	byDoc := make(map[string][]docrank.Heading)
	for _, h := range headings {
		byDoc[h.Document] = append(byDoc[h.Document], h)
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s (%d lines, body size %g)\n", doc.Name, len(doc.Lines), doc.BodyFontSize)
		hs := byDoc[doc.Name]
		if len(hs) == 0 {
			fmt.Fprintln(deps.Stdout, "  no headings")
		}
		for _, h := range hs {
			fmt.Fprintf(deps.Stdout, "  [%s] p.%d  %s\n", h.Level, h.Page, h.Text)
		}
	}
	return nil
}
