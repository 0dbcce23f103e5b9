package rewrites

import (
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteSwitch casts the selector and every case label of a switch over a
// catalogued accessor call. The call is matched by the name it had in the
// source, since the accessor itself has been renamed by then.
func RewriteSwitch(c *Context, n *node.Switch) node.Node {
	call, ok := n.Selector.(*node.MethodCall)
	if !ok {
		return n
	}

	castType, ok := c.Catalog.SwitchCast(call.SourceName)
	if !ok {
		return n
	}

	n.Selector = &node.Cast{Type: castType, Expr: n.Selector}

	for _, group := range n.Groups {
		for _, label := range group.Labels {
			if label.Default {
				continue
			}

			for i, expr := range label.Exprs {
				label.Exprs[i] = &node.Cast{Type: castType, Expr: expr}
			}
		}
	}

	c.count(m.RuleSwitchCast)

	return n
}
