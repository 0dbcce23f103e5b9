package rewrites

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

func TestRewriteMethodDecl_Body(t *testing.T) {
	c := defaultContext(t, "A.java")
	n := &node.MethodDecl{
		Indent:   "    ",
		Head:     node.Text("head", "public long "),
		Name:     node.Ident("getPlayerIndex"),
		Params:   node.Text("formal_parameters", "()"),
		BodyLead: " ",
		Body:     node.Text("block", "{\n        return controller.getPlayerIndex().value();\n    }"),
	}

	got := RewriteMethodDecl(c, n)

	want := "public long getPlayerIndex() {\n" +
		"        return (int) controller.playerIndex();\n" +
		"    }"

	assert.Equal(t, want, print(got))
	assert.Equal(t, m.RuleCounts{m.RuleMethodBody: 1}, c.Counts)
}

func TestRewriteMethodDecl_PortedBodyUntouched(t *testing.T) {
	c := defaultContext(t, "A.java")
	body := node.Text("block", "{\n        return (int) controller.playerIndex();\n    }")
	n := &node.MethodDecl{
		Indent:   "    ",
		Head:     node.Text("head", "public long "),
		Name:     node.Ident("getPlayerIndex"),
		Params:   node.Text("formal_parameters", "()"),
		BodyLead: " ",
		Body:     body,
	}

	RewriteMethodDecl(c, n)

	assert.Same(t, body, n.Body)
	assert.Zero(t, c.Counts.Total())
}

func TestRewriteMethodDecl_AbstractKeepsNoBody(t *testing.T) {
	c := defaultContext(t, "A.java")
	n := &node.MethodDecl{
		Head:     node.Text("head", "long "),
		Name:     node.Ident("getPlayerIndex"),
		Params:   node.Text("formal_parameters", "()"),
		BodyLead: "",
	}

	RewriteMethodDecl(c, n)

	assert.Nil(t, n.Body)
	assert.Zero(t, c.Counts.Total())
}

func TestRewriteMethodDecl_Unchecked(t *testing.T) {
	tests := []struct {
		name   string
		method string
		throws []node.Node
		want   string
		count  int
	}{
		{
			"unchecked method loses throws",
			"constructRumbleEvent",
			[]node.Node{&node.TypeRef{Name: "Exception"}},
			"void constructRumbleEvent();",
			1,
		},
		{
			"other method keeps throws",
			"play",
			[]node.Node{&node.TypeRef{Name: "Exception"}},
			"void play() throws Exception;",
			0,
		},
		{
			"nothing to clear",
			"constructRumbleEvent",
			nil,
			"void constructRumbleEvent();",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultContext(t, "A.java")
			n := &node.MethodDecl{
				Head:   node.Text("head", "void "),
				Name:   node.Ident(tt.method),
				Params: node.Text("formal_parameters", "()"),
				Throws: tt.throws,
			}

			got := RewriteMethodDecl(c, n)

			assert.Equal(t, tt.want, print(got))
			assert.Equal(t, tt.count, c.Counts[m.RuleUnchecked])
		})
	}
}
