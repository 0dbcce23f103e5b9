package model

import "sort"

// RuleName identifies a rewrite rule in tallies and reports.
type RuleName string

// Rewrite rules, grouped by the node level they act on.
const (
	RuleQualifiedName   RuleName = "qualified-name"
	RuleShortName       RuleName = "short-name"
	RuleTypeName        RuleName = "type-name"
	RuleMethodRename    RuleName = "method-rename"
	RuleVersionAccessor RuleName = "version-accessor"
	RuleLifetime        RuleName = "lifetime"
	RuleErrorArgument   RuleName = "error-argument"
	RuleArity           RuleName = "arity"
	RuleEnumLookup      RuleName = "enum-lookup"
	RuleConstructor     RuleName = "constructor"
	RuleArrayFactory    RuleName = "array-factory"
	RuleEnumAccess      RuleName = "enum-access"
	RuleSwitchCast      RuleName = "switch-cast"
	RuleMethodBody      RuleName = "method-body"
	RuleUnchecked       RuleName = "unchecked"
	RuleImport          RuleName = "synth-import"
	RuleHelper          RuleName = "synth-helper"
	RuleMarker          RuleName = "synth-marker"
)

// RuleCounts tallies how often each rule fired.
type RuleCounts map[RuleName]int

// Add records one application of rule.
func (c RuleCounts) Add(rule RuleName) {
	c[rule]++
}

// Total returns the number of rule applications.
func (c RuleCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}

	return total
}

// Rewrites returns the number of applications excluding synthesis rules.
func (c RuleCounts) Rewrites() int {
	return c.Total() - c[RuleImport] - c[RuleHelper] - c[RuleMarker]
}

// Merge adds other into c.
func (c RuleCounts) Merge(other RuleCounts) {
	for rule, n := range other {
		c[rule] += n
	}
}

// Rules returns the rules that fired, sorted by name.
func (c RuleCounts) Rules() []RuleName {
	rules := make([]RuleName, 0, len(c))
	for rule, n := range c {
		if n > 0 {
			rules = append(rules, rule)
		}
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })

	return rules
}

// Report is the persisted record of one ported file.
type Report struct {
	Source Path
	Target Path
	Hash   string
	Bytes  int
	Counts RuleCounts
}

// NewReport summarises a translation that has been written to disk.
func NewReport(t Translation) Report {
	report := Report{
		Target: t.Target,
		Bytes:  len(t.Output),
		Counts: t.Counts,
	}

	if t.Source.Origin != nil {
		report.Source = t.Source.Origin.ShortPath
		report.Hash = t.Source.Origin.Hash
	}

	return report
}
