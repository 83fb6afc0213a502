package model

// RuleOutcome records how a single rewrite rule fared against one file. A
// zero Matches count is a meaningful result: it tells apart "rule did not
// apply" from "rule rewrote something", which the progress output alone
// cannot.
type RuleOutcome struct {
	Rule    string `yaml:"rule"`
	Matches int    `yaml:"matches"`
}
