// Package node defines the tree that one parsed Java source file is rewritten
// on. It is a closed set of node kinds: the constructs the rewrite rules look
// at are modelled with typed fields, everything else is kept as Verbatim text
// interleaved with child nodes so untouched code prints back as it was read.
package node

import "strings"

// Kind identifies the concrete type behind a Node.
type Kind int

// Node kinds. The list is closed: the rewriter handles every one of them.
const (
	KindUnit Kind = iota
	KindImport
	KindQualifiedName
	KindIdentifier
	KindTypeRef
	KindMethodCall
	KindObjectCreation
	KindFieldAccess
	KindSwitch
	KindMethodDecl
	KindTypeDecl
	KindCast
	KindReturn
	KindBlock
	KindArrayAccess
	KindLiteral
	KindVerbatim
)

var kindNames = [...]string{
	KindUnit:           "Unit",
	KindImport:         "Import",
	KindQualifiedName:  "QualifiedName",
	KindIdentifier:     "Identifier",
	KindTypeRef:        "TypeRef",
	KindMethodCall:     "MethodCall",
	KindObjectCreation: "ObjectCreation",
	KindFieldAccess:    "FieldAccess",
	KindSwitch:         "Switch",
	KindMethodDecl:     "MethodDecl",
	KindTypeDecl:       "TypeDecl",
	KindCast:           "Cast",
	KindReturn:         "Return",
	KindBlock:          "Block",
	KindArrayAccess:    "ArrayAccess",
	KindLiteral:        "Literal",
	KindVerbatim:       "Verbatim",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}

	return kindNames[k]
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, Kind(k))
	}

	return kinds
}

// Node is one syntactic unit of a source tree.
type Node interface {
	Kind() Kind
}

// Item is an element of an ordered sequence (unit items, type members) along
// with the source text that preceded it.
type Item struct {
	Lead string
	Node Node
}

// Unit is the root of one parsed file.
type Unit struct {
	// Header holds block comment bodies printed before anything else,
	// outermost first.
	Header   []string
	Items    []Item
	Trailing string
}

// Import is an import declaration.
type Import struct {
	Static   bool
	Name     *QualifiedName
	Wildcard bool
}

// QualifiedName is a dotted name as written in package and import
// declarations and annotations.
type QualifiedName struct {
	Value string
}

// Identifier is a simple, unqualified name.
type Identifier struct {
	Name string
}

// TypeRef is a class or interface type reference, possibly dotted
// (Outer.Inner, java.util.List). Type arguments are not part of it.
type TypeRef struct {
	Name string
}

// MethodCall is a method invocation. Receiver is nil for unscoped calls.
type MethodCall struct {
	Receiver Node
	// Dot is the source text between the receiver and the name, "." when
	// synthesised.
	Dot      string
	TypeArgs string
	Name     *Identifier
	Args     *Arguments
	// SourceName is the call name as parsed, before any rewrite.
	SourceName string
}

// ObjectCreation is a class instance creation expression.
type ObjectCreation struct {
	Outer    Node
	TypeArgs string
	Type     Node
	Args     *Arguments
	// BodyLead is the text between the arguments and Body.
	BodyLead string
	Body     Node
}

// FieldAccess is Scope.Member.
type FieldAccess struct {
	Scope  Node
	Dot    string
	Member *Identifier
}

// Switch is a switch statement or expression.
type Switch struct {
	// Head is the text before the selector, "switch (" when synthesised.
	Head     string
	Selector Node

	// Brace is the text from the selector through the opening brace,
	// ") {" when synthesised.
	Brace  string
	Groups []*SwitchGroup

	// Closing is the source text between the last group and the closing brace.
	Closing string
}

// SwitchGroup is one run of case labels and the statements they guard.
type SwitchGroup struct {
	Lead   string
	Labels []*SwitchLabel
	// Arrow marks "case X ->" rules; otherwise labels end with a colon.
	Arrow bool
	Body  Node
}

// SwitchLabel is a single "case a, b" or "default" label.
type SwitchLabel struct {
	Lead    string
	Default bool
	Exprs   []Node
}

// MethodDecl is a method declaration. Head covers modifiers, annotations,
// type parameters and the result type; Params covers the formal parameter
// list and any trailing dimensions.
type MethodDecl struct {
	Indent string
	Head   Node
	Name   *Identifier
	Params Node

	// ThrowsLead is the text between the parameters and the first thrown
	// type, " throws " when synthesised.
	ThrowsLead string
	Throws     []Node

	// BodyLead is the text before the body, or before the semicolon of a
	// method without one.
	BodyLead string
	// Body is nil for abstract and interface methods.
	Body Node
}

// TypeDecl is a class, interface, enum or record declaration.
type TypeDecl struct {
	Keyword string
	Indent  string
	// Doc is the parsed javadoc comment; nil when the declaration has none.
	Doc     *DocComment
	Head    Node
	Name    *Identifier
	Tail    Node
	Members []Item
	Closing string
}

// DocComment is a javadoc comment reduced to its text lines.
type DocComment struct {
	Lines []string
	// Raw is the comment as read, up to the declaration it documents. It is
	// printed instead of Lines while set; clear it after editing Lines.
	Raw string
}

// Cast is (Type) Expr.
type Cast struct {
	Type string
	Expr Node
}

// Return is a return statement.
type Return struct {
	Value Node
}

// Block is a synthesised statement block.
type Block struct {
	Indent string
	Stmts  []Node
}

// ArrayAccess is Array[Index].
type ArrayAccess struct {
	Array Node
	Index Node
}

// LiteralKind classifies a Literal.
type LiteralKind int

// Literal kinds.
const (
	LitOther LiteralKind = iota
	LitNull
	LitInt
	LitString
	LitThis
	LitSuper
)

// Literal is a literal or keyword atom.
type Literal struct {
	Lit  LiteralKind
	Text string
}

// Part is one fragment of a Verbatim node: either raw text or a child node.
type Part struct {
	Text string
	Node Node
}

// Verbatim keeps a grammar construct the rewriter does not model. Type is the
// grammar's name for it.
type Verbatim struct {
	Type  string
	Parts []Part
}

func (*Unit) Kind() Kind           { return KindUnit }
func (*Import) Kind() Kind         { return KindImport }
func (*QualifiedName) Kind() Kind  { return KindQualifiedName }
func (*Identifier) Kind() Kind     { return KindIdentifier }
func (*TypeRef) Kind() Kind        { return KindTypeRef }
func (*MethodCall) Kind() Kind     { return KindMethodCall }
func (*ObjectCreation) Kind() Kind { return KindObjectCreation }
func (*FieldAccess) Kind() Kind    { return KindFieldAccess }
func (*Switch) Kind() Kind         { return KindSwitch }
func (*MethodDecl) Kind() Kind     { return KindMethodDecl }
func (*TypeDecl) Kind() Kind       { return KindTypeDecl }
func (*Cast) Kind() Kind           { return KindCast }
func (*Return) Kind() Kind         { return KindReturn }
func (*Block) Kind() Kind          { return KindBlock }
func (*ArrayAccess) Kind() Kind    { return KindArrayAccess }
func (*Literal) Kind() Kind        { return KindLiteral }
func (*Verbatim) Kind() Kind       { return KindVerbatim }

// IsSuper reports whether n is the super keyword.
func IsSuper(n Node) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Lit == LitSuper
}

// SimpleName returns the last segment of a dotted name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// TypeName returns the simple name of a type node, looking through generic
// type arguments. It returns "" for anything that is not a class type.
func TypeName(n Node) string {
	switch t := n.(type) {
	case *TypeRef:
		return SimpleName(t.Name)
	case *Verbatim:
		if t.Type != "generic_type" {
			return ""
		}

		for _, part := range t.Parts {
			if part.Node != nil {
				return TypeName(part.Node)
			}
		}
	}

	return ""
}
