package rewrites

import (
	"log/slog"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteObjectCreation turns constructor calls of catalogued types into
// allocate/initialize chains or arity-dispatched array factories. The
// original argument list is moved into the new call and the receiver is the
// simple type name.
func RewriteObjectCreation(c *Context, n *node.ObjectCreation) node.Node {
	typeName := node.TypeName(n.Type)
	if typeName == "" {
		return n
	}

	constructor, isConstructor := c.Catalog.Constructor(typeName)
	array, isArray := c.Catalog.Array(typeName)

	if !isConstructor && !isArray {
		return n
	}

	if n.Body != nil || n.Outer != nil {
		slog.Debug("Skipping qualified or anonymous creation", "file", c.File, "type", typeName)
		return n
	}

	args := n.Args
	if args == nil {
		args = node.NewArguments()
	}

	receiver := node.Ident(typeName)

	if isConstructor {
		for range constructor.TrailingNulls {
			args.Append(node.Null())
		}

		c.count(m.RuleConstructor)

		alloc := node.Call(receiver, c.Catalog.Allocator(), nil)

		return node.Call(alloc, constructor.Initializer, args)
	}

	c.count(m.RuleArrayFactory)

	return node.Call(receiver, array.Factory(args.Len()), args)
}
