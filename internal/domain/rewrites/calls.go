package rewrites

import (
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

// RewriteMethodCall runs the call-level rules in a fixed order. Later rules
// see the name produced by earlier ones. The lifetime and enum lookup rules
// replace the call with a new node.
func RewriteMethodCall(c *Context, call *node.MethodCall) node.Node {
	cat := c.Catalog

	if call.Args == nil {
		call.Args = node.NewArguments()
	}

	if call.Receiver != nil && !node.IsSuper(call.Receiver) {
		if renamed, ok := cat.MethodRename(call.Name.Name); ok && renamed != call.Name.Name {
			call.Name.Name = renamed
			c.count(m.RuleMethodRename)
		}
	}

	name := call.Name.Name

	// The accessor binds to the helper added to the enclosing type.
	if accessor := cat.VersionAccessor(); accessor != "" && name == accessor && call.Receiver != nil {
		call.Receiver = nil
		call.Dot = ""
		c.count(m.RuleVersionAccessor)
	}

	if runtime, method, handle, ok := cat.Lifetime(name); ok && call.Receiver != nil {
		c.count(m.RuleLifetime)

		peer := node.Call(call.Receiver, handle, nil)

		return node.Call(node.Ident(runtime), method, node.NewArguments(peer))
	}

	if renamed, ok := cat.ErrorArgument(name); ok {
		call.Name.Name = renamed
		call.Args.Append(node.Null())
		name = renamed
		c.count(m.RuleErrorArgument)
	}

	if renamed, ok := cat.Arity(name, call.Args.Len()); ok && renamed != name {
		call.Name.Name = renamed
		name = renamed
		c.count(m.RuleArity)
	}

	lookup := cat.EnumLookup()
	if lookup.Method != "" && name == lookup.Method && isIdentifier(call.Receiver, lookup.Type) {
		c.count(m.RuleEnumLookup)
		return node.Ident(lookup.Variable)
	}

	return call
}

func isIdentifier(n node.Node, name string) bool {
	id, ok := n.(*node.Identifier)
	return ok && id.Name == name
}
