package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "entfix.dev/pkg/entfix/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayFound prints how many candidate files the batch driver found.
func (s *SimpleUI) DisplayFound(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Found %d files to process\n", count)
}

// DisplayProcessing prints the file currently being migrated.
func (s *SimpleUI) DisplayProcessing(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Processing %s...\n", path)
}

// DisplaySkip prints a skip notice for a file left untouched.
func (s *SimpleUI) DisplaySkip(ctx context.Context, path m.Path, reason string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("  Skipping %s - %s\n", path, reason)
}

// DisplayUpdated prints the per-file result after the pipeline ran.
func (s *SimpleUI) DisplayUpdated(ctx context.Context, report m.FileReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if report.Status == m.StatusUnchanged {
		s.printf("  No rules matched %s\n", report.Path)
		return
	}

	s.printf("  Updated %s (%d/%d rules matched)\n", report.Path, report.MatchedRules(), len(report.Outcomes))
}

// DisplayDiff prints the dry-run unified diff for a file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, report m.FileReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if report.Diff == "" {
		return
	}

	s.printf("%s\n", report.Diff)
}

// DisplayMilestone prints the periodic progress line.
func (s *SimpleUI) DisplayMilestone(ctx context.Context, processed int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Processed %d files so far...\n", processed)
}

// DisplayRunSummary prints the per-file outcome table for a finished batch.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, run m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if run.DryRun {
		s.printf("\nDry run - no files were written\n")
	}

	s.printf("\n%s", renderRunTable(run))
}

// DisplayEstimation prints the candidate files and their prospective rule
// matches, or the enumeration error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, files []m.FileReport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Entity", "Status", "Matching Rules"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	wouldMigrate := 0

	for _, file := range files {
		status := "candidate"
		if file.Status == m.StatusSkippedMarker {
			status = "already migrated"
		} else if file.MatchedRules() > 0 {
			wouldMigrate++
		}

		table.Append([]string{
			string(file.Path),
			string(file.Entity),
			status,
			strconv.Itoa(file.MatchedRules()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		"",
		"",
		fmt.Sprintf("%d would change", wouldMigrate),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayScan prints the migration status of every test file.
func (s *SimpleUI) DisplayScan(ctx context.Context, results []m.ScanResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Migrated", "Fingerprint"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	migrated := 0

	for _, result := range results {
		status := "no"
		if result.Migrated {
			status = "yes"
			migrated++
		}

		table.Append([]string{string(result.Path), status, shortHash(result.Hash)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d migrated", migrated),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
}

// DisplayReports prints all saved run reports, newest first.
func (s *SimpleUI) DisplayReports(ctx context.Context, runs []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(runs) == 0 {
		s.printf("No migration runs recorded yet\n")
		return nil
	}

	s.printf("%s", renderRuns(runs))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderRuns(runs []m.RunReport) string {
	var buffer bytes.Buffer

	for _, run := range runs {
		mode := ""
		if run.DryRun {
			mode = " (dry run)"
		}

		fmt.Fprintf(&buffer, "Run %s%s - %s - root %s, limit %d\n",
			run.ID, mode, run.StartedAt.Format("2006-01-02 15:04:05"), run.Root, run.Limit)
		buffer.WriteString(renderRunTable(run))
		buffer.WriteString("\n")
	}

	return buffer.String()
}

func renderRunTable(run m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Entity", "Status", "Rules Matched"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, file := range run.Files {
		table.Append([]string{
			string(file.Path),
			string(file.Entity),
			string(file.Status),
			fmt.Sprintf("%d/%d", file.MatchedRules(), len(file.Outcomes)),
		})
	}

	counts := run.CountByStatus()
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(run.Files)),
		"",
		fmt.Sprintf("%d migrated", counts[m.StatusMigrated]),
		fmt.Sprintf("%d skipped", counts[m.StatusSkippedMarker]),
	})

	table.Render()

	return tableBuffer.String()
}

func shortHash(hash string) string {
	const shortLen = 12
	if len(hash) <= shortLen {
		return hash
	}

	return hash[:shortLen]
}
