package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "entfix.dev/pkg/entfix/internal/model"
)

// ReportStore persists migration run reports so previous batches can be
// reviewed with the view command.
type ReportStore interface {
	SaveRun(dir m.Path, run m.RunReport) error
	LoadRuns(dir m.Path) ([]m.RunReport, error)
}

const reportFilePrefix = "run-"
const reportFileSuffix = ".yaml"

// YAMLReportStore stores one YAML document per run under the reports
// directory.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveRun writes the run report to <dir>/run-<id>.yaml, creating the
// directory when needed.
func (s *YAMLReportStore) SaveRun(dir m.Path, run m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	target := filepath.Join(string(dir), reportFilePrefix+run.ID+reportFileSuffix)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}

	return nil
}

// LoadRuns reads every run report in the directory, newest first. A missing
// directory yields an empty slice, not an error.
func (s *YAMLReportStore) LoadRuns(dir m.Path) ([]m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	var runs []m.RunReport

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportFilePrefix) || !strings.HasSuffix(name, reportFileSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(dir), name))
		if err != nil {
			return nil, fmt.Errorf("read run %s: %w", name, err)
		}

		var run m.RunReport
		if err := yaml.Unmarshal(data, &run); err != nil {
			return nil, fmt.Errorf("parse run %s: %w", name, err)
		}

		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}
