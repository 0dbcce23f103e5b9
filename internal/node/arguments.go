package node

// Arguments is a parenthesised argument list. Gaps holds the source text
// around the items: Gaps[i] precedes Items[i] (separator included) and the
// last gap precedes the closing parenthesis, so len(Gaps) == len(Items)+1.
type Arguments struct {
	Items []Node
	Gaps  []string
}

// NewArguments builds an argument list with canonical ", " separators.
func NewArguments(items ...Node) *Arguments {
	args := &Arguments{Gaps: []string{""}}
	for _, item := range items {
		args.Append(item)
	}

	return args
}

// Len returns the number of arguments.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}

	return len(a.Items)
}

// Append adds an argument after the last one.
func (a *Arguments) Append(n Node) {
	if len(a.Gaps) == 0 {
		a.Gaps = []string{""}
	}

	closing := a.Gaps[len(a.Gaps)-1]
	sep := ", "

	if len(a.Items) == 0 {
		sep = closing
		closing = ""
	}

	a.Gaps[len(a.Gaps)-1] = sep
	a.Gaps = append(a.Gaps, closing)
	a.Items = append(a.Items, n)
}
