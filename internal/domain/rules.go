package domain

import (
	"regexp"

	m "entfix.dev/pkg/entfix/internal/model"
)

// Rule is a single pattern/replacement rewrite applied globally to a file's
// text. A rule that matches nothing is a silent no-op; the match count is
// still reported so unmatched rules can be surfaced.
type Rule struct {
	Name        string
	pattern     *regexp.Regexp
	replacement string
}

// Apply rewrites every match of the rule in content and returns the result
// together with the number of matches.
func (r Rule) Apply(content string) (string, int) {
	matches := len(r.pattern.FindAllStringIndex(content, -1))
	if matches == 0 {
		return content, 0
	}

	return r.pattern.ReplaceAllString(content, r.replacement), matches
}

// ApplyAll runs the rules in order over content, single pass each, and
// records one outcome per rule.
func ApplyAll(content string, rules []Rule) (string, []m.RuleOutcome) {
	outcomes := make([]m.RuleOutcome, 0, len(rules))

	for _, rule := range rules {
		var matches int
		content, matches = rule.Apply(content)
		outcomes = append(outcomes, m.RuleOutcome{Rule: rule.Name, Matches: matches})
	}

	return content, outcomes
}

// RuleSet builds the full ordered migration pipeline for one entity:
// imports, then call sites, then mock response shapes, then assertions.
// The order matters: the response and assertion patterns expect the fixture
// prefix the call-site stage introduces.
func RuleSet(entity m.EntityName) []Rule {
	rules := importRules()
	rules = append(rules, callSiteRules(entity)...)
	rules = append(rules, responseRules()...)
	rules = append(rules, assertionRules()...)

	return rules
}

const oldAxiosImport = `import axios, { AxiosInstance, AxiosResponse } from 'axios';`
const newAxiosImport = `import { AxiosInstance } from 'axios';`

const helperImportBlock = `import {
  createEntityTestSetup,
  createMockItemResponse,
  createMockItemsResponse,
  createMockDeleteResponse,
  resetAllMocks,
  EntityTestSetup,
} from '../helpers/mockHelper';`

// importRules drops the unused default axios import and inserts the helper
// import block right after the retained named import.
func importRules() []Rule {
	return []Rule{
		{
			Name:        "import/replace-axios-default",
			pattern:     regexp.MustCompile(regexp.QuoteMeta(oldAxiosImport)),
			replacement: newAxiosImport,
		},
		{
			Name:        "import/insert-helpers",
			pattern:     regexp.MustCompile(`(` + regexp.QuoteMeta(newAxiosImport) + `)`),
			replacement: "${1}\n" + helperImportBlock,
		},
	}
}

// callSiteRules routes entity and mock-transport calls through the shared
// fixture and renames the pageSize query parameter. The expect() variant is
// normally consumed by the broader mock-transport rule first; it stays in the
// set so its zero-match outcome is visible.
func callSiteRules(entity m.EntityName) []Rule {
	return []Rule{
		{
			Name:        "calls/entity-await",
			pattern:     regexp.MustCompile(`await ` + regexp.QuoteMeta(entity.Lower()) + `\.`),
			replacement: "await setup.entity.",
		},
		{
			Name:        "calls/mock-transport",
			pattern:     regexp.MustCompile(`mockAxios\.`),
			replacement: "setup.mockAxios.",
		},
		{
			Name:        "calls/expect-mock-transport",
			pattern:     regexp.MustCompile(`expect\(mockAxios\.`),
			replacement: "expect(setup.mockAxios.",
		},
		{
			Name:        "calls/max-records",
			pattern:     regexp.MustCompile(`pageSize: (\d+)`),
			replacement: "MaxRecords: ${1}",
		},
	}
}

// responseRules replaces the seven anticipated mock response literals with
// the canonical fixture-construction helpers. Each pattern matches the
// verb-and-shape literal greedily up to the first closing construct and
// tolerates the fixture prefix added by the call-site stage; the rewritten
// call always carries exactly one. List stubs switch from get to post to
// match the new query transport.
func responseRules() []Rule {
	return []Rule{
		{
			Name:        "response/list",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.get\.mockResolvedValueOnce\(\{\s*data: \{ items: mockData \}[^}]+\}\);`),
			replacement: "setup.mockAxios.post.mockResolvedValueOnce(\n        createMockItemsResponse(mockData)\n      );",
		},
		{
			Name:        "response/list-empty",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.get\.mockResolvedValueOnce\(\{\s*data: \{ items: \[\] \}[^}]+\}\);`),
			replacement: "setup.mockAxios.post.mockResolvedValueOnce(\n        createMockItemsResponse([])\n      );",
		},
		{
			Name:        "response/single-item",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.get\.mockResolvedValueOnce\(\{\s*data: \{ item: mockData \}[^}]+\}\);`),
			replacement: "setup.mockAxios.get.mockResolvedValueOnce(\n        createMockItemResponse(mockData)\n      );",
		},
		{
			Name:        "response/create-201",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.post\.mockResolvedValueOnce\(\{\s*data: \{ item: mockResponse \}[^}]+status: 201[^}]+\}\);`),
			replacement: "setup.mockAxios.post.mockResolvedValueOnce(\n        createMockItemResponse(mockResponse, 201)\n      );",
		},
		{
			Name:        "response/update-put",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.put\.mockResolvedValueOnce\(\{\s*data: \{ item: mockResponse \}[^}]+\}\);`),
			replacement: "setup.mockAxios.put.mockResolvedValueOnce(\n        createMockItemResponse(mockResponse)\n      );",
		},
		{
			Name:        "response/update-patch",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.patch\.mockResolvedValueOnce\(\{\s*data: \{ item: mockResponse \}[^}]+\}\);`),
			replacement: "setup.mockAxios.patch.mockResolvedValueOnce(\n        createMockItemResponse(mockResponse)\n      );",
		},
		{
			Name:        "response/delete",
			pattern:     regexp.MustCompile(`(?:setup\.)?mockAxios\.delete\.mockResolvedValueOnce\(\{\s*data: \{\}[^}]+\}\);`),
			replacement: "setup.mockAxios.delete.mockResolvedValueOnce(\n        createMockDeleteResponse()\n      );",
		},
	}
}

// assertionRules rewrite expected-call assertions for the query transport
// change: GET with a params-wrapped filter becomes POST with a bare filter
// field. The last two rules are deliberately unconditional and broad, the
// same scope the shipped migration had; their outcomes make any collateral
// matches visible.
func assertionRules() []Rule {
	return []Rule{
		{
			Name:        "assert/query-post",
			pattern:     regexp.MustCompile(`expect\(setup\.mockAxios\.get\)\.toHaveBeenCalledWith\('([^']+)/query', \{\s*params: \{\s*filter:`),
			replacement: "expect(setup.mockAxios.post).toHaveBeenCalledWith('${1}/query', {\n        filter:",
		},
		{
			Name:        "assert/strip-params-filter",
			pattern:     regexp.MustCompile(`params: \{\s*filter:`),
			replacement: "filter:",
		},
		{
			Name:        "assert/collapse-closing",
			pattern:     regexp.MustCompile(`\}\s*\}\);`),
			replacement: "});",
		},
	}
}
