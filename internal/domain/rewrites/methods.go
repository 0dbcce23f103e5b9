package rewrites

import (
	"bindport.dev/pkg/bindport/internal/emitter"
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteMethodDecl replaces catalogued method bodies and clears the throws
// clause of unchecked methods. A body that already reads as its replacement
// is left alone.
func RewriteMethodDecl(c *Context, n *node.MethodDecl) node.Node {
	name := n.Name.Name

	if rule, ok := c.Catalog.MethodBody(name); ok && n.Body != nil {
		value := &node.Cast{
			Type: rule.Type,
			Expr: node.Call(node.Ident(rule.Variable), rule.Call, nil),
		}

		body := &node.Block{
			Indent: n.Indent,
			Stmts:  []node.Node{&node.Return{Value: value}},
		}

		if emitter.Print(n.Body) != emitter.Print(body) {
			n.Body = body
			c.count(m.RuleMethodBody)
		}
	}

	if c.Catalog.Unchecked(name) && len(n.Throws) > 0 {
		n.Throws = nil
		c.count(m.RuleUnchecked)
	}

	return n
}
