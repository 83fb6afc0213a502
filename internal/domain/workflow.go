package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"entfix.dev/pkg/entfix/internal/adapter"
	"entfix.dev/pkg/entfix/internal/controller"
	m "entfix.dev/pkg/entfix/internal/model"
)

// milestoneEvery is how often the batch driver reports cumulative progress.
const milestoneEvery = 5

// MigrateArgs parameterises one migration batch.
type MigrateArgs struct {
	Root    m.Path
	Exclude []string
	Limit   int
	DryRun  bool
	Reports m.Path
}

// EstimateArgs parameterises the list command.
type EstimateArgs struct {
	Root    m.Path
	Exclude []string
}

// ScanArgs parameterises the scan command.
type ScanArgs struct {
	Root    m.Path
	Workers int
}

// ViewArgs parameterises the view command.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the entry point for every entfix operation.
type Workflow interface {
	Migrate(ctx context.Context, args MigrateArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
	Scan(ctx context.Context, args ScanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Processor
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	processor Processor,
) Workflow {
	return &workflow{
		SourceFSAdapter: fs,
		ReportStore:     reportStore,
		UI:              ui,
		Processor:       processor,
	}
}

// Migrate runs the batch: enumerate candidates, cap the batch, process each
// file sequentially, and persist the run report. The first file error aborts
// the whole run; already-processed files keep their rewritten contents.
func (w *workflow) Migrate(ctx context.Context, args MigrateArgs) error {
	files, excluded, err := w.candidates(args.Root, args.Exclude)
	if err != nil {
		slog.Error("failed to enumerate test files", "root", args.Root, "error", err)
		return err
	}

	w.DisplayFound(ctx, len(files))

	if args.Limit > 0 && len(files) > args.Limit {
		files = files[:args.Limit]
	}

	run := m.RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Root:      args.Root,
		Limit:     args.Limit,
		DryRun:    args.DryRun,
	}

	slog.Info("starting migration batch", "run", run.ID, "root", args.Root, "files", len(files), "dry_run", args.DryRun)

	processed := 0

	for _, path := range files {
		w.DisplayProcessing(ctx, path)

		report, err := w.Process(ctx, path, args.DryRun)
		if err != nil {
			slog.Error("migration aborted", "run", run.ID, "file", path, "error", err)
			return fmt.Errorf("process %s: %w", path, err)
		}

		logRuleOutcomes(run.ID, report)

		if report.Status == m.StatusSkippedMarker {
			w.DisplaySkip(ctx, path, "already uses new pattern")
		} else {
			w.DisplayUpdated(ctx, report)
		}

		if report.Diff != "" {
			w.DisplayDiff(ctx, report)
		}

		run.Files = append(run.Files, report)

		processed++
		if processed%milestoneEvery == 0 {
			w.DisplayMilestone(ctx, processed)
		}
	}

	// Excluded files show up in the report too, so a run records the full
	// picture of the directory it looked at.
	for _, path := range excluded {
		w.DisplaySkip(ctx, path, "excluded by configuration")
		run.Files = append(run.Files, m.FileReport{
			Path:   path,
			Entity: EntityFromPath(path),
			Status: m.StatusSkippedExcluded,
		})
	}

	w.DisplayRunSummary(ctx, run)

	if args.DryRun || args.Reports == "" {
		return nil
	}

	if err := w.SaveRun(args.Reports, run); err != nil {
		slog.Error("failed to save run report", "run", run.ID, "error", err)
		return fmt.Errorf("save run report: %w", err)
	}

	return nil
}

// Estimate lists the candidate files with the rule matches a run would
// produce. Nothing is written.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	files, _, err := w.candidates(args.Root, args.Exclude)
	if err != nil {
		return w.DisplayEstimation(ctx, nil, err)
	}

	reports := make([]m.FileReport, 0, len(files))

	for _, path := range files {
		report, err := w.Process(ctx, path, true)
		if err != nil {
			return w.DisplayEstimation(ctx, nil, err)
		}

		reports = append(reports, report)
	}

	return w.DisplayEstimation(ctx, reports, nil)
}

// View displays previously saved run reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	runs, err := w.LoadRuns(args.Reports)
	if err != nil {
		slog.Error("failed to load run reports", "dir", args.Reports, "error", err)
		return err
	}

	return w.DisplayReports(ctx, runs)
}

// candidates enumerates the test files in root (non-recursive), splits off
// the excluded names, and sorts both lists so batches are deterministic.
func (w *workflow) candidates(root m.Path, exclude []string) ([]m.Path, []m.Path, error) {
	if _, err := w.FileInfo(root); err != nil {
		return nil, nil, fmt.Errorf("tests directory: %w", err)
	}

	excludedNames := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excludedNames[name] = struct{}{}
	}

	var files, excluded []m.Path

	err := w.Walk(root, false, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, TestFileSuffix) {
			return nil
		}

		if _, ok := excludedNames[filepath.Base(path)]; ok {
			slog.Debug("excluded from batch", "file", path)
			excluded = append(excluded, m.Path(path))

			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan tests directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
	sort.Slice(excluded, func(i, j int) bool { return excluded[i] < excluded[j] })

	return files, excluded, nil
}

func logRuleOutcomes(runID string, report m.FileReport) {
	for _, outcome := range report.Outcomes {
		if outcome.Matches == 0 {
			slog.Debug("rule did not match", "run", runID, "file", report.Path, "rule", outcome.Rule)
			continue
		}

		slog.Debug("rule applied", "run", runID, "file", report.Path, "rule", outcome.Rule, "matches", outcome.Matches)
	}
}
