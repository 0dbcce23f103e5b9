package node

// Inspect traverses the tree rooted at n in depth-first pre-order. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node

	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Unit:
		for _, item := range n.Items {
			add(item.Node)
		}
	case *Import:
		if n.Name != nil {
			add(n.Name)
		}
	case *MethodCall:
		add(n.Receiver)

		if n.Name != nil {
			add(n.Name)
		}

		add(n.Args.nodes()...)
	case *ObjectCreation:
		add(n.Outer, n.Type)
		add(n.Args.nodes()...)
		add(n.Body)
	case *FieldAccess:
		add(n.Scope)

		if n.Member != nil {
			add(n.Member)
		}
	case *Switch:
		add(n.Selector)

		for _, group := range n.Groups {
			for _, label := range group.Labels {
				add(label.Exprs...)
			}

			add(group.Body)
		}
	case *MethodDecl:
		add(n.Head)

		if n.Name != nil {
			add(n.Name)
		}

		add(n.Params)
		add(n.Throws...)
		add(n.Body)
	case *TypeDecl:
		add(n.Head)

		if n.Name != nil {
			add(n.Name)
		}

		add(n.Tail)

		for _, item := range n.Members {
			add(item.Node)
		}
	case *Cast:
		add(n.Expr)
	case *Return:
		add(n.Value)
	case *Block:
		add(n.Stmts...)
	case *ArrayAccess:
		add(n.Array, n.Index)
	case *Verbatim:
		for _, part := range n.Parts {
			add(part.Node)
		}
	case *QualifiedName, *Identifier, *TypeRef, *Literal:
	}

	return out
}

func (a *Arguments) nodes() []Node {
	if a == nil {
		return nil
	}

	return a.Items
}
