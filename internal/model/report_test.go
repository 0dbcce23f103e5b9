package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleCounts(t *testing.T) {
	counts := make(RuleCounts)
	counts.Add(RuleLifetime)
	counts.Add(RuleLifetime)
	counts.Add(RuleImport)
	counts.Add(RuleMarker)

	assert.Equal(t, 4, counts.Total())
	assert.Equal(t, 2, counts.Rewrites())
	assert.Equal(t, []RuleName{RuleLifetime, RuleImport, RuleMarker}, counts.Rules())

	counts.Merge(RuleCounts{RuleArity: 1, RuleLifetime: 1})

	assert.Equal(t, 3, counts[RuleLifetime])
	assert.Equal(t, 1, counts[RuleArity])
}

func TestRuleCounts_Nil(t *testing.T) {
	var counts RuleCounts

	assert.Zero(t, counts.Total())
	assert.Zero(t, counts.Rewrites())
	assert.Empty(t, counts.Rules())
}

func TestNewReport(t *testing.T) {
	tr := Translation{
		Source: Source{Origin: &File{FullPath: "/src/a/B.java", ShortPath: "a/B.java", Hash: "abc"}, Root: "/src"},
		Target: "/out/a/B.java",
		Input:  []byte("old"),
		Output: []byte("newer"),
		Counts: RuleCounts{RuleArity: 1},
	}

	assert.Equal(t, Report{
		Source: "a/B.java",
		Target: "/out/a/B.java",
		Hash:   "abc",
		Bytes:  5,
		Counts: RuleCounts{RuleArity: 1},
	}, NewReport(tr))
	assert.True(t, tr.Changed())
}

func TestNewReport_NoOrigin(t *testing.T) {
	report := NewReport(Translation{Output: []byte("x")})

	assert.Empty(t, report.Source)
	assert.Empty(t, report.Hash)
	assert.Equal(t, 1, report.Bytes)
	assert.False(t, Translation{Input: []byte("x"), Output: []byte("x")}.Changed())
}
