package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"entfix.dev/pkg/entfix/internal/adapter"
	m "entfix.dev/pkg/entfix/internal/model"
)

const diffContextLines = 3

// Processor applies the migration pipeline to a single test file: read,
// marker guard, ordered rewrite rules, write back.
type Processor interface {
	Process(ctx context.Context, path m.Path, dryRun bool) (m.FileReport, error)
}

type processor struct {
	adapter.SourceFSAdapter
}

// NewProcessor creates a Processor backed by the given filesystem adapter.
func NewProcessor(fs adapter.SourceFSAdapter) Processor {
	return &processor{SourceFSAdapter: fs}
}

// Process migrates one file. Files already containing the marker token are
// skipped without a write, so re-running on migrated files is safe. The file
// is written back even when no rule matched, mirroring the read-modify-write
// contract; the unchanged status records that nothing applied. In dry-run
// mode nothing is written and a unified diff is attached instead.
func (p *processor) Process(ctx context.Context, path m.Path, dryRun bool) (m.FileReport, error) {
	report := m.FileReport{Path: path, Entity: EntityFromPath(path)}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	raw, err := p.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(raw)

	if strings.Contains(content, MarkerToken) {
		report.Status = m.StatusSkippedMarker
		return report, nil
	}

	rewritten, outcomes := ApplyAll(content, RuleSet(report.Entity))
	report.Outcomes = outcomes

	if rewritten == content {
		report.Status = m.StatusUnchanged
	} else {
		report.Status = m.StatusMigrated
	}

	if dryRun {
		if report.Status == m.StatusMigrated {
			diff, diffErr := unifiedDiff(string(path), content, rewritten)
			if diffErr != nil {
				return report, fmt.Errorf("diff %s: %w", path, diffErr)
			}

			report.Diff = diff
		}

		return report, nil
	}

	if err := p.WriteFile(path, []byte(rewritten), 0o644); err != nil {
		return report, fmt.Errorf("write %s: %w", path, err)
	}

	return report, nil
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (migrated)",
		Context:  diffContextLines,
	})
}
