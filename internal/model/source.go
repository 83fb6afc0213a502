// Package model defines the data structures for test-file migration.
package model

import "strings"

// Path represents a file system path.
type Path string

// EntityName is the capitalized identifier derived from a test file's base
// name, e.g. "Widgets" for widgets.test.ts.
type EntityName string

// Lower returns the variable-name form of the entity, the way the generated
// tests spell it ("Widgets" -> "widgets").
func (e EntityName) Lower() string {
	return strings.ToLower(string(e))
}

// ScanResult is the migration status of one test file as seen by the scan
// command.
type ScanResult struct {
	Path     Path
	Hash     string
	Migrated bool
}
