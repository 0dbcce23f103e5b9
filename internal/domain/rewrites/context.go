// Package rewrites provides the rewrite rules, one file per node level. Each
// rule receives a node whose children have already been rewritten and returns
// the node that takes its place, which may be the node itself.
package rewrites

import (
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/rules"
)

// Context carries what the rules of one file share: the read-only catalog, the
// file's base name and the tally of applied rules.
type Context struct {
	Catalog *rules.Catalog
	File    string
	Counts  m.RuleCounts
}

// NewContext returns a context with an empty tally.
func NewContext(catalog *rules.Catalog, file string) *Context {
	return &Context{
		Catalog: catalog,
		File:    file,
		Counts:  make(m.RuleCounts),
	}
}

func (c *Context) count(rule m.RuleName) {
	if c.Counts == nil {
		c.Counts = make(m.RuleCounts)
	}

	c.Counts.Add(rule)
}
