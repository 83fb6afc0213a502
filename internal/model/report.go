package model

import "time"

// FileStatus is the outcome of processing one test file.
type FileStatus string

const (
	// StatusMigrated indicates at least one rewrite rule matched and the file
	// was rewritten.
	StatusMigrated FileStatus = "migrated"
	// StatusUnchanged indicates the file was processed but no rule matched.
	StatusUnchanged FileStatus = "unchanged"
	// StatusSkippedMarker indicates the file already contains the fixture
	// marker and was left alone.
	StatusSkippedMarker FileStatus = "skipped-marker"
	// StatusSkippedExcluded indicates the file name is on the exclusion list.
	StatusSkippedExcluded FileStatus = "skipped-excluded"
)

// FileReport describes what the migration pipeline did to a single file.
type FileReport struct {
	Path     Path          `yaml:"path"`
	Entity   EntityName    `yaml:"entity"`
	Status   FileStatus    `yaml:"status"`
	Outcomes []RuleOutcome `yaml:"outcomes,omitempty"`
	Diff     string        `yaml:"-"`
}

// MatchedRules counts the rules that rewrote something in this file.
func (r FileReport) MatchedRules() int {
	matched := 0

	for _, outcome := range r.Outcomes {
		if outcome.Matches > 0 {
			matched++
		}
	}

	return matched
}

// RunReport is the persisted record of one migration batch.
type RunReport struct {
	ID        string       `yaml:"id"`
	StartedAt time.Time    `yaml:"started_at"`
	Root      Path         `yaml:"root"`
	Limit     int          `yaml:"limit"`
	DryRun    bool         `yaml:"dry_run"`
	Files     []FileReport `yaml:"files"`
}

// CountByStatus tallies the files in this run per status.
func (r RunReport) CountByStatus() map[FileStatus]int {
	counts := make(map[FileStatus]int, len(r.Files))

	for _, file := range r.Files {
		counts[file.Status]++
	}

	return counts
}
