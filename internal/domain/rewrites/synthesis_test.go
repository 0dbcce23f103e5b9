package rewrites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
)

const (
	marker       = "DO NOT EDIT THIS FILE - it is machine generated"
	markerHeader = "/*" + marker + "*/\n"
	markerDoc    = "/**\n * " + marker + "\n */\n"
	helperText   = "    private static int getMajorSystemVersion() {\n" +
		"        return Integer.parseInt(UIDevice.currentDevice().systemVersion().split(\"\\\\.\")[0]);\n" +
		"    }\n"
	controllerImports = "import static apple.gamecontroller.enums.GCDeviceBatteryState.*;\n" +
		"import apple.gamecontroller.c.GameController;\n" +
		"import apple.corehaptics.c.CoreHaptics;\n" +
		"import org.moe.natj.objc.ObjCRuntime;\n" +
		"import apple.uikit.UIDevice;\n"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		src    string
		want   string
		counts m.RuleCounts
	}{
		{
			name: "imports already present",
			file: "IosControllerManager.java",
			src: "package a;\n\nimport apple.uikit.UIDevice;\n\n" +
				"public class IosControllerManager {\n    void f() {}\n}\n",
			want: markerHeader + "package a;\n\nimport apple.uikit.UIDevice;\n\n" + markerDoc +
				"public class IosControllerManager {\n    void f() {}\n\n" + helperText + "}\n",
			counts: m.RuleCounts{m.RuleHelper: 1, m.RuleMarker: 2},
		},
		{
			name: "imports after the package",
			file: "IosController.java",
			src:  "package a;\n\npublic class IosController {\n}\n",
			want: markerHeader + "package a;\n\n" + controllerImports + "\n" + markerDoc +
				"public class IosController {\n" + helperText + "}\n",
			counts: m.RuleCounts{m.RuleImport: 5, m.RuleHelper: 1, m.RuleMarker: 2},
		},
		{
			name: "imports after the last import",
			file: "IosControllerManager.java",
			src:  "package a;\n\nimport java.util.List;\nimport java.util.Map;\n\nclass IosControllerManager {}\n",
			want: markerHeader + "package a;\n\nimport java.util.List;\nimport java.util.Map;\nimport apple.uikit.UIDevice;\n\n" +
				markerDoc + "class IosControllerManager {\n" + helperText + "}\n",
			counts: m.RuleCounts{m.RuleImport: 1, m.RuleHelper: 1, m.RuleMarker: 2},
		},
		{
			name: "imports at the top of a file without package",
			file: "IosControllerManager.java",
			src:  "class IosControllerManager {}\n",
			want: markerHeader + "import apple.uikit.UIDevice;\n\n" + markerDoc +
				"class IosControllerManager {\n" + helperText + "}\n",
			counts: m.RuleCounts{m.RuleImport: 1, m.RuleHelper: 1, m.RuleMarker: 2},
		},
		{
			name:   "existing javadoc keeps its text",
			file:   "Other.java",
			src:    "/**\n * Reads pads.\n */\npublic interface Pads {}\n",
			want:   markerHeader + "/**\n * " + marker + "\n * Reads pads.\n */\npublic interface Pads {}\n",
			counts: m.RuleCounts{m.RuleMarker: 2},
		},
		{
			name:   "enum gets only the file header",
			file:   "Other.java",
			src:    "enum IosController { A }\n",
			want:   markerHeader + "enum IosController { A }\n",
			counts: m.RuleCounts{m.RuleMarker: 1},
		},
		{
			name:   "nested types are marked",
			file:   "Other.java",
			src:    "class A {\n    interface B {}\n}\n",
			want:   markerHeader + markerDoc + "class A {\n    /**\n     * " + marker + "\n     */\n    interface B {}\n}\n",
			counts: m.RuleCounts{m.RuleMarker: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultContext(t, tt.file)
			unit := parseUnit(t, tt.src)

			Synthesize(c, unit)

			assert.Equal(t, tt.want, print(unit))
			assert.Equal(t, tt.counts, c.Counts)
		})
	}
}

func TestSynthesize_NestedHelperIndent(t *testing.T) {
	c := defaultContext(t, "Other.java")
	unit := parseUnit(t, "class Outer {\n    static class IosController {\n        int x;\n    }\n}\n")

	Synthesize(c, unit)

	assert.Contains(t, print(unit),
		"        int x;\n\n"+
			"        private static int getMajorSystemVersion() {\n"+
			"            return Integer.parseInt(UIDevice.currentDevice().systemVersion().split(\"\\\\.\")[0]);\n"+
			"        }\n"+
			"    }\n}\n")
}

func TestSynthesize_MarksTwice(t *testing.T) {
	c := defaultContext(t, "Other.java")
	unit := parseUnit(t, "class A {}\n")

	Synthesize(c, unit)
	Synthesize(c, unit)

	require.Len(t, unit.Header, 2)

	decl, ok := unit.Items[0].Node.(*node.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, []string{marker, marker}, decl.Doc.Lines)
	assert.Equal(t, 4, c.Counts[m.RuleMarker])
}

func TestSynthesize_ImportsNotDuplicated(t *testing.T) {
	c := defaultContext(t, "IosControllerManager.java")
	unit := parseUnit(t, "package a;\n\nclass X {}\n")

	Synthesize(c, unit)
	Synthesize(c, unit)

	imports := 0

	for _, item := range unit.Items {
		if _, ok := item.Node.(*node.Import); ok {
			imports++
		}
	}

	assert.Equal(t, 1, imports)
	assert.Equal(t, 1, c.Counts[m.RuleImport])
}

func TestSynthesize_EmptyCatalog(t *testing.T) {
	c := catalogContext(t, "version: 1\n")
	src := "package a;\n\nclass IosController {}\n"
	unit := parseUnit(t, src)

	Synthesize(c, unit)

	assert.Equal(t, src, print(unit))
	assert.Zero(t, c.Counts.Total())
}
