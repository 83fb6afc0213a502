package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	m "entfix.dev/pkg/entfix/internal/model"
)

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func migratedReport(path string) m.FileReport {
	return m.FileReport{
		Path:   m.Path(path),
		Entity: "Widgets",
		Status: m.StatusMigrated,
		Outcomes: []m.RuleOutcome{
			{Rule: "import/replace-axios-default", Matches: 1},
			{Rule: "calls/expect-mock-transport", Matches: 0},
		},
	}
}

func TestSimpleUI_ProgressLines(t *testing.T) {
	ui, buf := newBufferedUI()
	ctx := context.Background()

	ui.DisplayFound(ctx, 7)
	ui.DisplayProcessing(ctx, "widgets.test.ts")
	ui.DisplaySkip(ctx, "companies.test.ts", "already uses new pattern")
	ui.DisplayUpdated(ctx, migratedReport("widgets.test.ts"))
	ui.DisplayMilestone(ctx, 5)

	output := buf.String()

	wantLines := []string{
		"Found 7 files to process",
		"Processing widgets.test.ts...",
		"Skipping companies.test.ts - already uses new pattern",
		"Updated widgets.test.ts (1/2 rules matched)",
		"Processed 5 files so far...",
	}

	for _, want := range wantLines {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayUpdated_Unchanged(t *testing.T) {
	ui, buf := newBufferedUI()

	report := m.FileReport{Path: "plain.test.ts", Status: m.StatusUnchanged}
	ui.DisplayUpdated(context.Background(), report)

	if !strings.Contains(buf.String(), "No rules matched plain.test.ts") {
		t.Errorf("output missing no-match line, got: %s", buf.String())
	}
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, buf := newBufferedUI()

	report := migratedReport("widgets.test.ts")
	report.Diff = "--- widgets.test.ts\n+++ widgets.test.ts (migrated)\n"
	ui.DisplayDiff(context.Background(), report)

	if !strings.Contains(buf.String(), "(migrated)") {
		t.Errorf("output missing diff, got: %s", buf.String())
	}
}

func TestSimpleUI_DisplayEstimation(t *testing.T) {
	ui, buf := newBufferedUI()

	files := []m.FileReport{
		migratedReport("widgets.test.ts"),
		{Path: "companies.test.ts", Entity: "Companies", Status: m.StatusSkippedMarker},
	}

	err := ui.DisplayEstimation(context.Background(), files, nil)
	if err != nil {
		t.Fatalf("DisplayEstimation() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"widgets.test.ts",
		"Widgets",
		"candidate",
		"companies.test.ts",
		"already migrated",
		"Total Files 2",
		"1 would change",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayEstimation_Error(t *testing.T) {
	ui, buf := newBufferedUI()

	wantErr := errors.New("no such directory")

	err := ui.DisplayEstimation(context.Background(), nil, wantErr)
	if !errors.Is(err, wantErr) {
		t.Fatalf("DisplayEstimation() error = %v, want %v", err, wantErr)
	}

	if !strings.Contains(buf.String(), "no such directory") {
		t.Errorf("output missing error, got: %s", buf.String())
	}
}

func TestSimpleUI_DisplayScan(t *testing.T) {
	ui, buf := newBufferedUI()

	results := []m.ScanResult{
		{Path: "legacy.test.ts", Hash: "aaaaaaaaaaaaaaaaaaaaaaaa", Migrated: false},
		{Path: "migrated.test.ts", Hash: "bbbbbbbbbbbbbbbbbbbbbbbb", Migrated: true},
	}

	ui.DisplayScan(context.Background(), results)

	output := buf.String()
	for _, want := range []string{
		"legacy.test.ts",
		"migrated.test.ts",
		"aaaaaaaaaaaa",
		"Total Files 2",
		"1 migrated",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got:\n%s", want, output)
		}
	}

	// Fingerprints are truncated for display.
	if strings.Contains(output, "aaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Errorf("output should not contain the full hash:\n%s", output)
	}
}

func TestSimpleUI_DisplayRunSummary(t *testing.T) {
	ui, buf := newBufferedUI()

	run := m.RunReport{
		ID:        "run-id",
		StartedAt: time.Now().UTC(),
		Root:      "test/entities",
		Limit:     5,
		DryRun:    true,
		Files: []m.FileReport{
			migratedReport("widgets.test.ts"),
			{Path: "companies.test.ts", Entity: "Companies", Status: m.StatusSkippedMarker},
		},
	}

	ui.DisplayRunSummary(context.Background(), run)

	output := buf.String()
	for _, want := range []string{
		"Dry run - no files were written",
		"widgets.test.ts",
		"migrated",
		"Total Files 2",
		"1 skipped",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newBufferedUI()

	runs := []m.RunReport{{
		ID:        "abc-123",
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Root:      "test/entities",
		Limit:     5,
		Files:     []m.FileReport{migratedReport("widgets.test.ts")},
	}}

	err := ui.DisplayReports(context.Background(), runs)
	if err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Run abc-123", "2025-06-01 12:00:00", "widgets.test.ts"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q, got:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayReports_Empty(t *testing.T) {
	ui, buf := newBufferedUI()

	err := ui.DisplayReports(context.Background(), nil)
	if err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No migration runs recorded yet") {
		t.Errorf("output missing empty message, got: %s", buf.String())
	}
}

func TestSimpleUI_CancelledContextIsSilent(t *testing.T) {
	ui, buf := newBufferedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayFound(ctx, 7)
	ui.DisplayProcessing(ctx, "widgets.test.ts")
	ui.DisplayMilestone(ctx, 5)

	if buf.Len() != 0 {
		t.Errorf("cancelled context should print nothing, got: %s", buf.String())
	}
}

func TestShortHash(t *testing.T) {
	if got := shortHash("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("shortHash() = %q, want %q", got, "0123456789ab")
	}

	if got := shortHash("short"); got != "short" {
		t.Errorf("shortHash() = %q, want %q", got, "short")
	}
}
