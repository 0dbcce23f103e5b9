package domain

import (
	"fmt"

	"bindport.dev/pkg/bindport/internal/domain/rewrites"
	"bindport.dev/pkg/bindport/internal/node"
)

// Rewrite runs the rule set over the tree rooted at n in a single post-order
// pass and returns the node that replaces n. Children are rewritten before
// their parent; nodes built by a rule are not visited again.
func Rewrite(rc *rewrites.Context, n node.Node) node.Node {
	r := &rewriter{rc: rc}

	return r.visit(n)
}

type rewriter struct {
	rc *rewrites.Context
}

//nolint:cyclop,funlen // One case per node kind.
func (r *rewriter) visit(n node.Node) node.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *node.Unit:
		r.items(n.Items)
		return n
	case *node.Import:
		n.Name = r.qualified(n.Name)
		return n
	case *node.QualifiedName:
		return rewrites.RewriteQualifiedName(r.rc, n)
	case *node.Identifier:
		return rewrites.RewriteIdentifier(r.rc, n)
	case *node.TypeRef:
		return rewrites.RewriteTypeRef(r.rc, n)
	case *node.MethodCall:
		n.Receiver = r.visit(n.Receiver)
		n.Name = r.ident(n.Name)
		r.args(n.Args)

		if n.Name == nil {
			return n
		}

		return rewrites.RewriteMethodCall(r.rc, n)
	case *node.ObjectCreation:
		n.Outer = r.visit(n.Outer)
		n.Type = r.visit(n.Type)
		r.args(n.Args)
		n.Body = r.visit(n.Body)

		return rewrites.RewriteObjectCreation(r.rc, n)
	case *node.FieldAccess:
		n.Scope = r.visit(n.Scope)
		n.Member = r.ident(n.Member)

		return rewrites.RewriteFieldAccess(r.rc, n)
	case *node.Switch:
		n.Selector = r.visit(n.Selector)

		for _, group := range n.Groups {
			for _, label := range group.Labels {
				r.list(label.Exprs)
			}

			group.Body = r.visit(group.Body)
		}

		return rewrites.RewriteSwitch(r.rc, n)
	case *node.MethodDecl:
		n.Head = r.visit(n.Head)
		n.Name = r.ident(n.Name)
		n.Params = r.visit(n.Params)
		r.list(n.Throws)
		n.Body = r.visit(n.Body)

		if n.Name == nil {
			return n
		}

		return rewrites.RewriteMethodDecl(r.rc, n)
	case *node.TypeDecl:
		n.Head = r.visit(n.Head)
		n.Name = r.ident(n.Name)
		n.Tail = r.visit(n.Tail)
		r.items(n.Members)

		return n
	case *node.Cast:
		n.Expr = r.visit(n.Expr)
		return n
	case *node.Return:
		n.Value = r.visit(n.Value)
		return n
	case *node.Block:
		r.list(n.Stmts)
		return n
	case *node.ArrayAccess:
		n.Array = r.visit(n.Array)
		n.Index = r.visit(n.Index)

		return n
	case *node.Literal:
		return n
	case *node.Verbatim:
		for i := range n.Parts {
			n.Parts[i].Node = r.visit(n.Parts[i].Node)
		}

		return n
	default:
		panic(fmt.Sprintf("rewriter: unhandled node kind %s", n.Kind()))
	}
}

func (r *rewriter) items(items []node.Item) {
	for i := range items {
		items[i].Node = r.visit(items[i].Node)
	}
}

func (r *rewriter) list(nodes []node.Node) {
	for i := range nodes {
		nodes[i] = r.visit(nodes[i])
	}
}

func (r *rewriter) args(a *node.Arguments) {
	if a != nil {
		r.list(a.Items)
	}
}

// ident rewrites a name slot. Identifier rules never change the node type.
func (r *rewriter) ident(id *node.Identifier) *node.Identifier {
	if id == nil {
		return nil
	}

	if out, ok := r.visit(id).(*node.Identifier); ok {
		return out
	}

	return id
}

func (r *rewriter) qualified(q *node.QualifiedName) *node.QualifiedName {
	if q == nil {
		return nil
	}

	if out, ok := r.visit(q).(*node.QualifiedName); ok {
		return out
	}

	return q
}
