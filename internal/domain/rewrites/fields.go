package rewrites

import (
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteFieldAccess replaces a constant of an enum-like type with a static
// accessor on its namespace: Type.X becomes Namespace.TypeX().
func RewriteFieldAccess(c *Context, n *node.FieldAccess) node.Node {
	scope, ok := n.Scope.(*node.Identifier)
	if !ok || n.Member == nil {
		return n
	}

	namespace, ok := c.Catalog.EnumNamespace(scope.Name)
	if !ok {
		return n
	}

	c.count(m.RuleEnumAccess)

	return node.Call(node.Ident(namespace), scope.Name+n.Member.Name, nil)
}
