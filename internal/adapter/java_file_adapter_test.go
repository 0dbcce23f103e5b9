package adapter_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/emitter"
	"bindport.dev/pkg/bindport/internal/node"
)

const controllerSource = `/*******************************************************************************
 * Licensed under the Apache License, Version 2.0
 ******************************************************************************/

package com.badlogic.gdx.controllers.ios;

import org.robovm.apple.gamecontroller.GCController;
import org.robovm.apple.gamecontroller.GCControllerPlayerIndex;
import static org.robovm.apple.uikit.UIDevice.*;
import java.util.List;

/**
 * An iOS controller.
 *
 * @author someone
 */
public class IosController extends AbstractController implements Runnable {
    private final GCController controller;
    private final List<String> names = new ArrayList<>();

    // keeps a strong reference
    public IosController(GCController controller) {
        this.controller = controller;
        controller.retain();
    }

    @Override
    public int getPlayerIndex() {
        return (int) controller.getPlayerIndex().value();
    }

    public void setPlayerIndex(int index) {
        controller.setPlayerIndex(GCControllerPlayerIndex.valueOf(index));
    }

    protected String[] names() throws IOException, IllegalStateException {
        return names.toArray(new String[0]);
    }

    abstract void tick(float delta);

    public void run() {
        switch (controller.getBattery().getBatteryState()) {
            case 1:
            case 2:
                System.out.println("charging");
                break;
            default:
                break;
        }

        int mode = switch (names.size()) {
            case 0 -> 1;
            case 1, 2 -> 2;
            default -> {
                yield 3;
            }
        };

        Runnable r = new Runnable() {
            @Override
            public void run() {
                super.toString();
            }
        };
    }

    interface Listener {
        void connected(IosController c);
    }

    enum Kind { EXTENDED, MICRO; Kind() {} }
}
`

func parse(t *testing.T, src string) *node.Unit {
	t.Helper()

	unit, err := adapter.NewLocalJavaFileAdapter().Parse(context.Background(), "Test.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, unit)

	return unit
}

func TestParse_RoundTrip(t *testing.T) {
	sources := []struct {
		name string
		src  string
	}{
		{"controller", controllerSource},
		{"empty", ""},
		{"package only", "package a.b;\n"},
		{"no final eol", "class A {}"},
		{"odd spacing", "class  A\n{\n\tvoid f( int a ,int b )\n\t{\n\t\tg(  a,\n\t\t   b );\n\t}\n}\n"},
		{"chained calls", "class A { void f() { a.b().c(1).d(\"x\", null).<T>e(); } }\n"},
		{"qualified new", "class A { void f() { Object o = outer.new Inner(1); } }\n"},
		{"lambda and ref", "class A { Runnable r = () -> System.out.println(this::toString); }\n"},
		{"compact switch", "class A { int f(int k) { switch(k){case 1: return 2; default: return 3;} } }\n"},
		{"annotation decl", "@interface Marker { String value() default \"\"; }\n"},
		{"javadoc blank line", "/** Doc. */\n\nclass A {}\n"},
		{"method brace next line", "class A {\n    void f()\n    {\n    }\n}\n"},
		{"generic method", "class A { <T extends Comparable<T>> T max(T a, T b) throws Exception { return a; } }\n"},
		{"array dims", "class A { int f()[] { return null; } }\n"},
		{"comments in args", "class A { void f() { g(/* first */ 1, // second\n 2); } }\n"},
	}

	for _, tt := range sources {
		t.Run(tt.name, func(t *testing.T) {
			got := emitter.Print(parse(t, tt.src))
			if diff := cmp.Diff(tt.src, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ModelsRewritableConstructs(t *testing.T) {
	unit := parse(t, controllerSource)

	counts := map[node.Kind]int{}
	var calls []string
	var types []string

	node.Inspect(unit, func(n node.Node) bool {
		counts[n.Kind()]++

		switch n := n.(type) {
		case *node.MethodCall:
			calls = append(calls, n.SourceName)
		case *node.TypeDecl:
			types = append(types, n.Keyword+" "+n.Name.Name)
		}

		return true
	})

	assert.Equal(t, 4, counts[node.KindImport])
	assert.Equal(t, 2, counts[node.KindSwitch])
	assert.Equal(t, 2, counts[node.KindObjectCreation])
	assert.Contains(t, calls, "retain")
	assert.Contains(t, calls, "getBatteryState")
	assert.Contains(t, calls, "valueOf")
	assert.Equal(t, []string{"class IosController", "interface Listener", "enum Kind"}, types)
}

func TestParse_Imports(t *testing.T) {
	unit := parse(t, controllerSource)

	var imports []*node.Import

	for _, item := range unit.Items {
		if imp, ok := item.Node.(*node.Import); ok {
			imports = append(imports, imp)
		}
	}

	require.Len(t, imports, 4)
	assert.Equal(t, "org.robovm.apple.gamecontroller.GCController", imports[0].Name.Value)
	assert.False(t, imports[0].Static)
	assert.True(t, imports[2].Static)
	assert.True(t, imports[2].Wildcard)
	assert.Equal(t, "org.robovm.apple.uikit.UIDevice", imports[2].Name.Value)
}

func TestParse_JavadocAttachesToType(t *testing.T) {
	unit := parse(t, controllerSource)

	var decl *node.TypeDecl

	for _, item := range unit.Items {
		if d, ok := item.Node.(*node.TypeDecl); ok {
			decl = d
		}
	}

	require.NotNil(t, decl)
	require.NotNil(t, decl.Doc)
	assert.Equal(t, []string{"An iOS controller.", "", "@author someone"}, decl.Doc.Lines)
	assert.Equal(t, "class", decl.Keyword)
	assert.Equal(t, "", decl.Indent)
}

func TestParse_MethodDecl(t *testing.T) {
	unit := parse(t, controllerSource)

	decls := map[string]*node.MethodDecl{}

	node.Inspect(unit, func(n node.Node) bool {
		if d, ok := n.(*node.MethodDecl); ok {
			decls[d.Name.Name] = d
		}

		return true
	})

	names := decls["names"]
	require.NotNil(t, names)
	assert.Equal(t, "    ", names.Indent)
	require.Len(t, names.Throws, 2)
	assert.Equal(t, &node.TypeRef{Name: "IOException"}, names.Throws[0])
	assert.Equal(t, " throws ", names.ThrowsLead)

	tick := decls["tick"]
	require.NotNil(t, tick)
	assert.Nil(t, tick.Body)

	connected := decls["connected"]
	require.NotNil(t, connected)
	assert.Equal(t, "        ", connected.Indent)
}

func TestParse_SwitchLabels(t *testing.T) {
	unit := parse(t, controllerSource)

	var switches []*node.Switch

	node.Inspect(unit, func(n node.Node) bool {
		if s, ok := n.(*node.Switch); ok {
			switches = append(switches, s)
		}

		return true
	})

	require.Len(t, switches, 2)

	statement := switches[0]
	require.IsType(t, &node.MethodCall{}, statement.Selector)
	assert.Equal(t, "getBatteryState", statement.Selector.(*node.MethodCall).SourceName)
	require.Len(t, statement.Groups, 2)
	assert.Len(t, statement.Groups[0].Labels, 2)
	assert.False(t, statement.Groups[0].Arrow)
	assert.True(t, statement.Groups[1].Labels[0].Default)

	expression := switches[1]
	require.Len(t, expression.Groups, 3)
	assert.True(t, expression.Groups[0].Arrow)
	assert.Len(t, expression.Groups[1].Labels[0].Exprs, 2)
}

func TestParse_SwitchFallThroughLabels(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		groups []int
	}{
		{"shared body", "class A { void f(int k) {\n switch (k) {\n case 1:\n case 2:\n g();\n } } }\n", []int{2}},
		{"comment between labels", "class A { void f(int k) {\n switch (k) {\n case 1: // one\n case 2:\n g();\n default:\n } } }\n", []int{2, 1}},
		{"separate bodies", "class A { void f(int k) {\n switch (k) {\n case 1: g();\n case 2: h();\n } } }\n", []int{1, 1}},
		{"rules", "class A { int f(int k) { return switch (k) { case 1 -> 2; case 2 -> 3; default -> 4; }; } }\n", []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := parse(t, tt.src)

			var sw *node.Switch

			node.Inspect(unit, func(n node.Node) bool {
				if s, ok := n.(*node.Switch); ok && sw == nil {
					sw = s
				}

				return true
			})

			require.NotNil(t, sw)

			var labels []int
			for _, group := range sw.Groups {
				labels = append(labels, len(group.Labels))
			}

			assert.Equal(t, tt.groups, labels)
			assert.Equal(t, tt.src, emitter.Print(unit))
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"garbage statement", "class A {\n    void f() {\n        int = ;\n    }\n}\n", 3},
		{"unclosed class", "class A {\n    void f() {}\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := adapter.NewLocalJavaFileAdapter().Parse(context.Background(), "Broken.java", []byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, unit)

			var perr *adapter.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "Broken.java", perr.Path)
			assert.GreaterOrEqual(t, perr.Line, 1)
			assert.GreaterOrEqual(t, perr.Column, 1)

			if tt.line > 0 {
				assert.Equal(t, tt.line, perr.Line)
			}

			assert.Contains(t, err.Error(), "Broken.java:")
		})
	}
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.NewLocalJavaFileAdapter().Parse(ctx, "A.java", []byte(controllerSource))
	require.Error(t, err)
}

func TestParseError_Error(t *testing.T) {
	err := &adapter.ParseError{Path: "a/B.java", Line: 3, Column: 7, Reason: "missing ;"}
	assert.Equal(t, "a/B.java:3:7: missing ;", err.Error())
}
