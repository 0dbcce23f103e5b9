// Package emitter turns rewritten trees back into Java source text and writes
// them into the output tree.
package emitter

import (
	"fmt"
	"strings"

	"bindport.dev/pkg/bindport/internal/node"
)

const indentUnit = "    "

// Print serialises the tree rooted at n.
func Print(n node.Node) string {
	var p printer

	p.node(n)

	return p.String()
}

type printer struct {
	strings.Builder
}

//nolint:cyclop // One case per node kind.
func (p *printer) node(n node.Node) {
	switch n := n.(type) {
	case nil:
	case *node.Unit:
		p.unit(n)
	case *node.Import:
		p.WriteString("import ")

		if n.Static {
			p.WriteString("static ")
		}

		p.node(n.Name)

		if n.Wildcard {
			p.WriteString(".*")
		}

		p.WriteString(";")
	case *node.QualifiedName:
		p.WriteString(n.Value)
	case *node.Identifier:
		p.WriteString(n.Name)
	case *node.TypeRef:
		p.WriteString(n.Name)
	case *node.MethodCall:
		p.call(n)
	case *node.ObjectCreation:
		p.creation(n)
	case *node.FieldAccess:
		p.node(n.Scope)
		p.dot(n.Dot)
		p.node(n.Member)
	case *node.Switch:
		p.switchNode(n)
	case *node.MethodDecl:
		p.method(n)
	case *node.TypeDecl:
		p.typeDecl(n)
	case *node.Cast:
		fmt.Fprintf(p, "(%s) ", n.Type)
		p.node(n.Expr)
	case *node.Return:
		p.WriteString("return")

		if n.Value != nil {
			p.WriteString(" ")
			p.node(n.Value)
		}

		p.WriteString(";")
	case *node.Block:
		p.block(n)
	case *node.ArrayAccess:
		p.node(n.Array)
		p.WriteString("[")
		p.node(n.Index)
		p.WriteString("]")
	case *node.Literal:
		p.WriteString(n.Text)
	case *node.Verbatim:
		for _, part := range n.Parts {
			if part.Node != nil {
				p.node(part.Node)
				continue
			}

			p.WriteString(part.Text)
		}
	default:
		panic(fmt.Sprintf("emitter: unhandled node kind %s", n.Kind()))
	}
}

func (p *printer) unit(u *node.Unit) {
	for _, header := range u.Header {
		fmt.Fprintf(p, "/*%s*/\n", header)
	}

	p.items(u.Items)
	p.WriteString(u.Trailing)
}

func (p *printer) items(items []node.Item) {
	for _, item := range items {
		p.WriteString(item.Lead)
		p.node(item.Node)
	}
}

func (p *printer) dot(dot string) {
	if dot == "" {
		dot = "."
	}

	p.WriteString(dot)
}

func (p *printer) call(c *node.MethodCall) {
	if c.Receiver != nil {
		p.node(c.Receiver)
		p.dot(c.Dot)
	}

	p.WriteString(c.TypeArgs)
	p.node(c.Name)
	p.args(c.Args)
}

func (p *printer) creation(c *node.ObjectCreation) {
	if c.Outer != nil {
		p.node(c.Outer)
		p.WriteString(".")
	}

	p.WriteString("new ")
	p.WriteString(c.TypeArgs)
	p.node(c.Type)
	p.args(c.Args)

	if c.Body != nil {
		p.WriteString(c.BodyLead)
		p.node(c.Body)
	}
}

func (p *printer) args(a *node.Arguments) {
	p.WriteString("(")

	if a == nil {
		p.WriteString(")")
		return
	}

	canonical := len(a.Gaps) != len(a.Items)+1

	for i, item := range a.Items {
		switch {
		case !canonical:
			p.WriteString(a.Gaps[i])
		case i > 0:
			p.WriteString(", ")
		}

		p.node(item)
	}

	if !canonical {
		p.WriteString(a.Gaps[len(a.Items)])
	}

	p.WriteString(")")
}

func (p *printer) switchNode(s *node.Switch) {
	p.WriteString(orDefault(s.Head, "switch ("))
	p.node(s.Selector)
	p.WriteString(orDefault(s.Brace, ") {"))

	for _, group := range s.Groups {
		p.WriteString(group.Lead)

		for _, label := range group.Labels {
			p.WriteString(label.Lead)

			if label.Default {
				p.WriteString("default")
			} else {
				p.WriteString("case ")

				for i, expr := range label.Exprs {
					if i > 0 {
						p.WriteString(", ")
					}

					p.node(expr)
				}
			}

			if group.Arrow {
				p.WriteString(" ->")
			} else {
				p.WriteString(":")
			}
		}

		p.node(group.Body)
	}

	p.WriteString(s.Closing)
	p.WriteString("}")
}

func (p *printer) method(m *node.MethodDecl) {
	p.node(m.Head)
	p.node(m.Name)
	p.node(m.Params)

	if len(m.Throws) > 0 {
		p.WriteString(orDefault(m.ThrowsLead, " throws "))

		for i, t := range m.Throws {
			if i > 0 {
				p.WriteString(", ")
			}

			p.node(t)
		}
	}

	p.WriteString(m.BodyLead)

	if m.Body == nil {
		p.WriteString(";")
		return
	}

	p.node(m.Body)
}

func (p *printer) typeDecl(t *node.TypeDecl) {
	if t.Doc != nil {
		p.doc(t.Doc, t.Indent)
	}

	p.node(t.Head)
	p.node(t.Name)
	p.node(t.Tail)
	p.WriteString("{")
	p.items(t.Members)
	p.WriteString(t.Closing)
	p.WriteString("}")
}

func (p *printer) doc(d *node.DocComment, indent string) {
	if d.Raw != "" {
		p.WriteString(d.Raw)
		return
	}

	p.WriteString("/**\n")

	for _, line := range d.Lines {
		if line == "" {
			p.WriteString(indent + " *\n")
			continue
		}

		p.WriteString(indent + " * " + line + "\n")
	}

	p.WriteString(indent + " */\n" + indent)
}

func (p *printer) block(b *node.Block) {
	p.WriteString("{\n")

	for _, stmt := range b.Stmts {
		p.WriteString(b.Indent + indentUnit)
		p.node(stmt)
		p.WriteString("\n")
	}

	p.WriteString(b.Indent + "}")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
