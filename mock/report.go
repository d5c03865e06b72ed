package mock

import (
	"context"

	"github.com/fwojciec/docrank"
)

var _ docrank.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of docrank.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *docrank.Report) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *docrank.Report) error {
	return w.WriteReportFn(ctx, report)
}
