package domain

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "bindport.dev/pkg/bindport/internal/model"
)

const diffContext = 3

func unifiedDiff(path m.Path, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(before),
		B:        diffLines(after),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  diffContext,
	})
}

// diffLines splits src into newline-terminated lines. SplitLines terminates
// the last line itself, so one trailing newline is dropped first.
func diffLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}

	return difflib.SplitLines(strings.TrimSuffix(string(src), "\n"))
}
