// Package controller provides output adapters for displaying migration progress and results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "entfix.dev/pkg/entfix/internal/model"
)

// UI defines the interface for reporting migration progress and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	DisplayFound(ctx context.Context, count int)
	DisplayProcessing(ctx context.Context, path m.Path)
	DisplaySkip(ctx context.Context, path m.Path, reason string)
	DisplayUpdated(ctx context.Context, report m.FileReport)
	DisplayDiff(ctx context.Context, report m.FileReport)
	DisplayMilestone(ctx context.Context, processed int)
	DisplayRunSummary(ctx context.Context, run m.RunReport)
	DisplayEstimation(ctx context.Context, files []m.FileReport, err error) error
	DisplayScan(ctx context.Context, results []m.ScanResult)
	DisplayReports(ctx context.Context, runs []m.RunReport) error
}

// IsTTY reports whether the file is attached to a terminal. The view command
// uses it to decide between the interactive and the plain report display.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
