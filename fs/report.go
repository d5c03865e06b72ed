// Package fs provides file-based output for analysis reports.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/docrank"
)

// Ensure ReportWriter implements docrank.ReportWriter at compile time.
var _ docrank.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes reports as indented JSON with atomic semantics.
// The report is written to a temporary file next to path and renamed
// into place, so a failed write never leaves a partial report behind.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a new ReportWriter targeting path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path returns the destination path.
func (w *ReportWriter) Path() string {
	return w.path
}

// WriteReport encodes report and moves it to the destination path.
func (w *ReportWriter) WriteReport(ctx context.Context, report *docrank.Report) error {
	if report == nil {
		return docrank.Errorf(docrank.EINVALID, "report required")
	}

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
