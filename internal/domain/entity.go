// Package domain contains the core migration workflow and rewrite rules.
package domain

import (
	"path/filepath"
	"strings"
	"unicode"

	m "entfix.dev/pkg/entfix/internal/model"
)

// TestFileSuffix is the suffix the generated entity test files carry.
const TestFileSuffix = ".test.ts"

// MarkerToken is the literal whose presence means a file already uses the
// fixture-based pattern. Files containing it are never rewritten again.
const MarkerToken = "createEntityTestSetup"

// EntityFromPath derives the entity identifier from a test file path:
// the base name with the test suffix stripped and only the first rune
// upper-cased. "widgets.test.ts" -> "Widgets", "aBCtest.test.ts" ->
// "ABCtest". Never fails; a non-letter first rune is left as is.
func EntityFromPath(path m.Path) m.EntityName {
	base := strings.TrimSuffix(filepath.Base(string(path)), TestFileSuffix)
	if base == "" {
		return ""
	}

	runes := []rune(base)
	runes[0] = unicode.ToUpper(runes[0])

	return m.EntityName(string(runes))
}
