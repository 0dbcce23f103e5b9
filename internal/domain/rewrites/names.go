package rewrites

import (
	"strings"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteQualifiedName applies the package prefix fix, the typo fix and the
// import rename, in that order, each seeing the result of the previous one.
func RewriteQualifiedName(c *Context, n *node.QualifiedName) node.Node {
	value := c.Catalog.PackagePrefix().Apply(n.Value)
	value = c.Catalog.Typo().Apply(value)

	if renamed, ok := c.Catalog.ImportRename(value); ok {
		value = renamed
	}

	if value != n.Value {
		n.Value = value
		c.count(m.RuleQualifiedName)
	}

	return n
}

// RewriteIdentifier replaces a simple name found in the short-name table.
func RewriteIdentifier(c *Context, n *node.Identifier) node.Node {
	if renamed, ok := c.Catalog.ShortName(n.Name); ok && renamed != n.Name {
		n.Name = renamed
		c.count(m.RuleShortName)
	}

	return n
}

// RewriteTypeRef renames every segment of a type reference through the
// short-name table, then the dotted name as a whole.
func RewriteTypeRef(c *Context, n *node.TypeRef) node.Node {
	segments := strings.Split(n.Name, ".")
	for i, segment := range segments {
		if renamed, ok := c.Catalog.ShortName(segment); ok {
			segments[i] = renamed
		}
	}

	name := strings.Join(segments, ".")
	if renamed, ok := c.Catalog.ShortName(name); ok {
		name = renamed
	}

	if name != n.Name {
		n.Name = name
		c.count(m.RuleTypeName)
	}

	return n
}
