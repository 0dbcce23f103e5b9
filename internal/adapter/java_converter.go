package adapter

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"bindport.dev/pkg/bindport/internal/node"
)

// converter maps a tree-sitter Java syntax tree onto the node model. Source
// text between modelled children is carried along verbatim so that code the
// rewriter never touches prints back unchanged.
type converter struct {
	src []byte
}

func (c *converter) text(from, to uint32) string {
	if to <= from {
		return ""
	}

	return string(c.src[from:to])
}

func (c *converter) content(n *sitter.Node) string {
	return c.text(n.StartByte(), n.EndByte())
}

func (c *converter) unit(root *sitter.Node) *node.Unit {
	items, end := c.sequence(children(root), 0)

	return &node.Unit{
		Items:    items,
		Trailing: c.text(end, uint32(len(c.src))),
	}
}

//nolint:cyclop // One case per modelled grammar rule.
func (c *converter) convert(n *sitter.Node) node.Node {
	if !n.IsNamed() {
		return node.Text(n.Type(), c.content(n))
	}

	switch n.Type() {
	case "import_declaration":
		return c.importDecl(n)
	case "scoped_identifier":
		return &node.QualifiedName{Value: stripSpace(c.content(n))}
	case "identifier":
		return node.Ident(c.content(n))
	case "type_identifier":
		return &node.TypeRef{Name: c.content(n)}
	case "scoped_type_identifier":
		if isPlainScopedType(n) {
			return &node.TypeRef{Name: stripSpace(c.content(n))}
		}
	case "method_invocation":
		return c.methodCall(n)
	case "object_creation_expression":
		return c.creation(n)
	case "field_access":
		return c.fieldAccess(n)
	case "switch_expression":
		return c.switchExpr(n)
	case "method_declaration":
		return c.methodDecl(n)
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return c.typeDecl(n, nil)
	case "null_literal":
		return node.Null()
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return &node.Literal{Lit: node.LitInt, Text: c.content(n)}
	case "string_literal":
		return &node.Literal{Lit: node.LitString, Text: c.content(n)}
	case "this":
		return &node.Literal{Lit: node.LitThis, Text: c.content(n)}
	case "super":
		return &node.Literal{Lit: node.LitSuper, Text: c.content(n)}
	}

	return c.verbatim(n)
}

func (c *converter) verbatim(n *sitter.Node) node.Node {
	if n.ChildCount() == 0 {
		return node.Text(n.Type(), c.content(n))
	}

	return c.span(n.Type(), n.StartByte(), n.EndByte(), children(n))
}

// span builds a Verbatim covering [from, to) with kids converted in place and
// the text between them kept as is.
func (c *converter) span(kind string, from, to uint32, kids []*sitter.Node) *node.Verbatim {
	v := &node.Verbatim{Type: kind}
	pos := from

	addText := func(s string) {
		if s == "" {
			return
		}

		if last := len(v.Parts) - 1; last >= 0 && v.Parts[last].Node == nil {
			v.Parts[last].Text += s
			return
		}

		v.Parts = append(v.Parts, node.Part{Text: s})
	}

	for _, kid := range kids {
		addText(c.text(pos, kid.StartByte()))

		if kid.IsNamed() {
			v.Parts = append(v.Parts, node.Part{Node: c.convert(kid)})
		} else {
			addText(c.content(kid))
		}

		pos = kid.EndByte()
	}

	addText(c.text(pos, to))

	return v
}

// sequence converts declaration-level children into items, attaching a
// javadoc comment to the type declaration it directly precedes.
func (c *converter) sequence(kids []*sitter.Node, from uint32) ([]node.Item, uint32) {
	var items []node.Item

	pos := from

	for i := 0; i < len(kids); i++ {
		kid := kids[i]

		if i+1 < len(kids) && isJavadoc(c, kid) && isTypeDecl(kids[i+1]) &&
			strings.TrimSpace(c.text(kid.EndByte(), kids[i+1].StartByte())) == "" {
			doc := parseDoc(c.content(kid))
			doc.Raw = c.text(kid.StartByte(), kids[i+1].StartByte())
			decl := c.typeDecl(kids[i+1], doc)
			items = append(items, node.Item{Lead: c.text(pos, kid.StartByte()), Node: decl})
			pos = kids[i+1].EndByte()
			i++

			continue
		}

		items = append(items, node.Item{Lead: c.text(pos, kid.StartByte()), Node: c.convert(kid)})
		pos = kid.EndByte()
	}

	return items, pos
}

func (c *converter) importDecl(n *sitter.Node) node.Node {
	imp := &node.Import{}

	for _, kid := range children(n) {
		switch kid.Type() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		case "identifier", "scoped_identifier":
			imp.Name = &node.QualifiedName{Value: stripSpace(c.content(kid))}
		}
	}

	if imp.Name == nil {
		return c.verbatim(n)
	}

	return imp
}

func (c *converter) methodCall(n *sitter.Node) node.Node {
	name := n.ChildByFieldName("name")
	args := n.ChildByFieldName("arguments")

	if name == nil || args == nil || name.Type() != "identifier" || countType(n, "super") > 1 {
		return c.verbatim(n)
	}

	call := &node.MethodCall{
		Name:       node.Ident(c.content(name)),
		Args:       c.arguments(args),
		SourceName: c.content(name),
	}

	nameStart := name.StartByte()

	if typeArgs := n.ChildByFieldName("type_arguments"); typeArgs != nil {
		call.TypeArgs = c.content(typeArgs)
		nameStart = typeArgs.StartByte()
	}

	if object := n.ChildByFieldName("object"); object != nil {
		if countType(n, ".") > 1 {
			return c.verbatim(n)
		}

		call.Receiver = c.convert(object)
		call.Dot = c.text(object.EndByte(), nameStart)
	}

	return call
}

func (c *converter) arguments(n *sitter.Node) *node.Arguments {
	args := &node.Arguments{}
	pos := n.StartByte() + 1 // past "("

	for _, kid := range children(n) {
		if !kid.IsNamed() || isComment(kid) {
			continue
		}

		args.Gaps = append(args.Gaps, c.text(pos, kid.StartByte()))
		args.Items = append(args.Items, c.convert(kid))
		pos = kid.EndByte()
	}

	args.Gaps = append(args.Gaps, c.text(pos, n.EndByte()-1))

	return args
}

func (c *converter) creation(n *sitter.Node) node.Node {
	typ := n.ChildByFieldName("type")
	args := n.ChildByFieldName("arguments")

	if typ == nil || args == nil || hasType(n, "annotation", "marker_annotation") {
		return c.verbatim(n)
	}

	creation := &node.ObjectCreation{
		Type: c.convert(typ),
		Args: c.arguments(args),
	}

	if typeArgs := n.ChildByFieldName("type_arguments"); typeArgs != nil {
		creation.TypeArgs = c.content(typeArgs)
	}

	outer := true

	for _, kid := range children(n) {
		switch {
		case kid.Type() == "new":
			outer = false
		case outer && kid.IsNamed() && !isComment(kid):
			creation.Outer = c.convert(kid)
		case kid.Type() == "class_body":
			creation.BodyLead = c.text(args.EndByte(), kid.StartByte())
			creation.Body = c.convert(kid)
		}
	}

	return creation
}

func (c *converter) fieldAccess(n *sitter.Node) node.Node {
	object := n.ChildByFieldName("object")
	field := n.ChildByFieldName("field")

	if object == nil || field == nil || field.Type() != "identifier" || countType(n, ".") > 1 {
		return c.verbatim(n)
	}

	return &node.FieldAccess{
		Scope:  c.convert(object),
		Dot:    c.text(object.EndByte(), field.StartByte()),
		Member: node.Ident(c.content(field)),
	}
}

func (c *converter) switchExpr(n *sitter.Node) node.Node {
	condition := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")

	if condition == nil || body == nil {
		return c.verbatim(n)
	}

	selector := firstNamed(condition)
	if selector == nil {
		return c.verbatim(n)
	}

	sw := &node.Switch{
		Head:     c.text(n.StartByte(), selector.StartByte()),
		Selector: c.convert(selector),
		Brace:    c.text(selector.EndByte(), body.StartByte()+1),
	}
	pos := body.StartByte() + 1 // past "{"

	for _, kid := range children(body) {
		if !kid.IsNamed() || isComment(kid) {
			continue
		}

		group := c.switchGroup(kid)
		group.Lead = c.text(pos, kid.StartByte())
		pos = kid.EndByte()

		if last := len(sw.Groups) - 1; last >= 0 && fallsThrough(sw.Groups[last], group) {
			mergeGroups(sw.Groups[last], group)
			continue
		}

		sw.Groups = append(sw.Groups, group)
	}

	sw.Closing = c.text(pos, body.EndByte()-1)

	return sw
}

func (c *converter) switchGroup(n *sitter.Node) *node.SwitchGroup {
	group := &node.SwitchGroup{}
	kids := children(n)
	pos := n.StartByte()
	i := 0

	for i < len(kids) {
		kid := kids[i]

		if isComment(kid) {
			i++
			continue
		}

		if kid.Type() != "switch_label" {
			break
		}

		label := c.switchLabel(kid)
		label.Lead = c.text(pos, kid.StartByte())
		group.Labels = append(group.Labels, label)
		pos = kid.EndByte()
		i++

		if i < len(kids) && (kids[i].Type() == ":" || kids[i].Type() == "->") {
			group.Arrow = kids[i].Type() == "->"
			pos = kids[i].EndByte()
			i++
		}
	}

	var rest []*sitter.Node

	for _, kid := range kids[i:] {
		if !isComment(kid) {
			rest = append(rest, kid)
		}
	}

	group.Body = c.span("switch_body", pos, n.EndByte(), rest)

	return group
}

// fallsThrough reports whether prev is a colon group with no statements, so
// its labels share next's body.
func fallsThrough(prev, next *node.SwitchGroup) bool {
	if prev.Arrow || next.Arrow || len(next.Labels) == 0 {
		return false
	}

	_, ok := emptyBody(prev.Body)

	return ok
}

// emptyBody returns the text of a statement-free body: whitespace and comments.
func emptyBody(body node.Node) (string, bool) {
	v, ok := body.(*node.Verbatim)
	if !ok {
		return "", false
	}

	var text strings.Builder

	for _, part := range v.Parts {
		if part.Node != nil {
			return "", false
		}

		text.WriteString(part.Text)
	}

	trimmed := strings.TrimSpace(text.String())
	if trimmed != "" && !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
		return "", false
	}

	return text.String(), true
}

// mergeGroups folds next into prev, keeping the text between them on the
// first label of next.
func mergeGroups(prev, next *node.SwitchGroup) {
	between, _ := emptyBody(prev.Body)
	next.Labels[0].Lead = between + next.Lead + next.Labels[0].Lead
	prev.Labels = append(prev.Labels, next.Labels...)
	prev.Body = next.Body
}

func (c *converter) switchLabel(n *sitter.Node) *node.SwitchLabel {
	label := &node.SwitchLabel{}
	kids := children(n)

	if len(kids) > 0 && kids[0].Type() == "default" {
		label.Default = true
		return label
	}

	var named []*sitter.Node

	for _, kid := range kids {
		if kid.IsNamed() && !isComment(kid) {
			named = append(named, kid)
		}
	}

	if len(named) == 0 {
		return label
	}

	if hasType(n, "guard") || hasType(n, "pattern", "record_pattern", "type_pattern") {
		label.Exprs = []node.Node{c.span("switch_label", named[0].StartByte(), n.EndByte(), named)}
		return label
	}

	for _, kid := range named {
		label.Exprs = append(label.Exprs, c.convert(kid))
	}

	return label
}

func (c *converter) methodDecl(n *sitter.Node) node.Node {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")

	if name == nil || params == nil {
		return c.verbatim(n)
	}

	decl := &node.MethodDecl{
		Indent: c.indentAt(n.StartByte()),
		Name:   node.Ident(c.content(name)),
	}

	var head, tail []*sitter.Node

	paramsEnd := params.EndByte()
	after := paramsEnd

	for _, kid := range children(n) {
		switch {
		case kid.EndByte() <= name.StartByte():
			head = append(head, kid)
		case kid.StartByte() >= name.EndByte() && kid.EndByte() <= params.EndByte():
			tail = append(tail, kid)
		case kid.Type() == "dimensions":
			tail = append(tail, kid)
			paramsEnd = kid.EndByte()
			after = paramsEnd
		case kid.Type() == "throws":
			for _, thrown := range children(kid) {
				if !thrown.IsNamed() || isComment(thrown) {
					continue
				}

				if len(decl.Throws) == 0 {
					decl.ThrowsLead = c.text(paramsEnd, thrown.StartByte())
				}

				decl.Throws = append(decl.Throws, c.convert(thrown))
			}

			after = kid.EndByte()
		case kid.Type() == ";":
			decl.BodyLead = c.text(after, kid.StartByte())
		}
	}

	decl.Head = c.span("method_head", n.StartByte(), name.StartByte(), head)
	decl.Params = c.span("method_params", name.EndByte(), paramsEnd, tail)

	if body := n.ChildByFieldName("body"); body != nil {
		decl.BodyLead = c.text(after, body.StartByte())
		decl.Body = c.convert(body)
	}

	return decl
}

func (c *converter) typeDecl(n *sitter.Node, doc *node.DocComment) node.Node {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")

	if name == nil || body == nil {
		return c.verbatim(n)
	}

	decl := &node.TypeDecl{
		Keyword: strings.TrimSuffix(n.Type(), "_declaration"),
		Indent:  c.indentAt(n.StartByte()),
		Doc:     doc,
		Name:    node.Ident(c.content(name)),
	}

	var head, tail []*sitter.Node

	for _, kid := range children(n) {
		switch {
		case kid.EndByte() <= name.StartByte():
			head = append(head, kid)
		case kid.StartByte() >= name.EndByte() && kid.EndByte() <= body.StartByte():
			tail = append(tail, kid)
		}
	}

	decl.Head = c.span("type_head", n.StartByte(), name.StartByte(), head)
	decl.Tail = c.span("type_tail", name.EndByte(), body.StartByte(), tail)

	var members []*sitter.Node

	for _, kid := range children(body) {
		if kid.Type() == "{" || kid.Type() == "}" {
			continue
		}

		members = append(members, kid)
	}

	items, end := c.sequence(members, body.StartByte()+1)
	decl.Members = items
	decl.Closing = c.text(end, body.EndByte()-1)

	return decl
}

// indentAt returns the leading whitespace of the line containing pos.
func (c *converter) indentAt(pos uint32) string {
	lineStart := bytes.LastIndexByte(c.src[:pos], '\n') + 1
	line := c.src[lineStart:pos]
	trimmed := bytes.TrimLeft(line, " \t")

	return string(line[:len(line)-len(trimmed)])
}

// parseDoc reduces a javadoc comment to its text lines.
func parseDoc(comment string) *node.DocComment {
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/**"), "*/")
	lines := strings.Split(body, "\n")
	doc := &node.DocComment{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		doc.Lines = append(doc.Lines, strings.TrimRight(line, " \t\r"))
	}

	for len(doc.Lines) > 0 && doc.Lines[0] == "" {
		doc.Lines = doc.Lines[1:]
	}

	for len(doc.Lines) > 0 && doc.Lines[len(doc.Lines)-1] == "" {
		doc.Lines = doc.Lines[:len(doc.Lines)-1]
	}

	return doc
}

func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	kids := make([]*sitter.Node, 0, count)

	for i := 0; i < count; i++ {
		kids = append(kids, n.Child(i))
	}

	return kids
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for _, kid := range children(n) {
		if kid.IsNamed() && !isComment(kid) {
			return kid
		}
	}

	return nil
}

func countType(n *sitter.Node, typ string) int {
	count := 0

	for _, kid := range children(n) {
		if kid.Type() == typ {
			count++
		}
	}

	return count
}

func hasType(n *sitter.Node, types ...string) bool {
	for _, kid := range children(n) {
		for _, typ := range types {
			if kid.Type() == typ {
				return true
			}
		}
	}

	return false
}

func isComment(n *sitter.Node) bool {
	return n.Type() == "line_comment" || n.Type() == "block_comment" || n.Type() == "comment"
}

func isJavadoc(c *converter, n *sitter.Node) bool {
	return isComment(n) && strings.HasPrefix(c.content(n), "/**")
}

func isTypeDecl(n *sitter.Node) bool {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	}

	return false
}

// isPlainScopedType reports whether a scoped type is only dotted names,
// without annotations or type arguments in between.
func isPlainScopedType(n *sitter.Node) bool {
	for _, kid := range children(n) {
		switch kid.Type() {
		case "type_identifier", ".":
		case "scoped_type_identifier":
			if !isPlainScopedType(kid) {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
