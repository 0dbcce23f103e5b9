package node

import "strconv"

// Ident returns a new identifier.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Call returns a new method call. A nil receiver yields an unscoped call.
func Call(receiver Node, name string, args *Arguments) *MethodCall {
	if args == nil {
		args = NewArguments()
	}

	return &MethodCall{
		Receiver:   receiver,
		Dot:        ".",
		Name:       Ident(name),
		Args:       args,
		SourceName: name,
	}
}

// Null returns the null literal.
func Null() *Literal {
	return &Literal{Lit: LitNull, Text: "null"}
}

// Int returns an integer literal.
func Int(v int) *Literal {
	return &Literal{Lit: LitInt, Text: strconv.Itoa(v)}
}

// String returns a string literal; text is emitted between the quotes as is.
func String(text string) *Literal {
	return &Literal{Lit: LitString, Text: `"` + text + `"`}
}

// Text returns a Verbatim holding plain text.
func Text(kind, text string) *Verbatim {
	return &Verbatim{Type: kind, Parts: []Part{{Text: text}}}
}
