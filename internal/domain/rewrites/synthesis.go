package rewrites

import (
	"log/slog"
	"slices"
	"strings"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/node"
	"bindport.dev/pkg/bindport/internal/rules"
)

const indentUnit = "    "

// Synthesize applies the declaration-level insertions to a rewritten unit:
// per-file imports, the version helper and the generated-file markers.
// Running it twice stamps the markers twice.
func Synthesize(c *Context, unit *node.Unit) {
	addImports(c, unit)
	addHelpers(c, unit)
	addMarkers(c, unit)
}

func addImports(c *Context, unit *node.Unit) {
	specs := c.Catalog.FileImports(c.File)
	if len(specs) == 0 {
		return
	}

	present := make(map[rules.ImportSpec]struct{})
	at := -1
	pkg := -1

	for i, item := range unit.Items {
		switch n := item.Node.(type) {
		case *node.Import:
			present[rules.ImportSpec{Name: n.Name.Value, Static: n.Static, Wildcard: n.Wildcard}] = struct{}{}
			at = i
		case *node.Verbatim:
			if n.Type == "package_declaration" {
				pkg = i
			}
		}
	}

	afterPackage := at < 0 && pkg >= 0
	if at < 0 {
		at = pkg
	}

	at++

	var added []node.Item

	for _, spec := range specs {
		if _, ok := present[spec]; ok {
			continue
		}

		present[spec] = struct{}{}
		imp := &node.Import{
			Static:   spec.Static,
			Name:     &node.QualifiedName{Value: spec.Name},
			Wildcard: spec.Wildcard,
		}
		added = append(added, node.Item{Lead: "\n", Node: imp})
		c.count(m.RuleImport)
	}

	if len(added) == 0 {
		return
	}

	if afterPackage {
		added[0].Lead = "\n\n"
	}

	if at == 0 {
		added[0].Lead = ""

		if len(unit.Items) > 0 {
			unit.Items[0].Lead = "\n\n" + unit.Items[0].Lead
		}
	}

	unit.Items = slices.Insert(unit.Items, at, added...)
}

func addHelpers(c *Context, unit *node.Unit) {
	var targets []*node.TypeDecl

	node.Inspect(unit, func(n node.Node) bool {
		decl, ok := n.(*node.TypeDecl)
		if !ok || !c.Catalog.HelperType(decl.Name.Name) {
			return true
		}

		if classLike(decl) {
			targets = append(targets, decl)
		} else {
			slog.Debug("Skipping version helper for non-class type", "file", c.File, "type", decl.Name.Name, "keyword", decl.Keyword)
		}

		return true
	})

	accessor := c.Catalog.VersionAccessor()

	for _, decl := range targets {
		memberIndent := decl.Indent + indentUnit
		helper := versionHelper(c.Catalog.VersionHelper(), accessor, memberIndent)

		if !strings.Contains(decl.Closing, "\n") {
			decl.Closing = "\n" + decl.Indent
		}

		lead := "\n\n" + memberIndent
		if len(decl.Members) == 0 {
			lead = "\n" + memberIndent
		}

		decl.Members = append(decl.Members, node.Item{Lead: lead, Node: helper})
		c.count(m.RuleHelper)
	}
}

// versionHelper builds
//
//	private static int getMajorSystemVersion() {
//	    return Integer.parseInt(UIDevice.currentDevice().systemVersion().split("\\.")[0]);
//	}
func versionHelper(rule rules.HelperRule, accessor, indent string) *node.MethodDecl {
	version := node.Call(node.Call(node.Ident(rule.Device), rule.Current, nil), rule.Version, nil)
	split := node.Call(version, "split", node.NewArguments(node.String(`\\.`)))
	major := &node.ArrayAccess{Array: split, Index: node.Int(0)}
	parse := node.Call(node.Ident("Integer"), "parseInt", node.NewArguments(major))

	return &node.MethodDecl{
		Indent:   indent,
		Head:     node.Text("method_head", "private static int "),
		Name:     node.Ident(accessor),
		Params:   node.Text("method_params", "()"),
		BodyLead: " ",
		Body: &node.Block{
			Indent: indent,
			Stmts:  []node.Node{&node.Return{Value: parse}},
		},
	}
}

func addMarkers(c *Context, unit *node.Unit) {
	marker := c.Catalog.Marker()
	if marker == "" {
		return
	}

	unit.Header = append([]string{marker}, unit.Header...)
	c.count(m.RuleMarker)

	node.Inspect(unit, func(n node.Node) bool {
		decl, ok := n.(*node.TypeDecl)
		if !ok || !classLike(decl) {
			return true
		}

		if decl.Doc == nil {
			decl.Doc = &node.DocComment{}
		}

		decl.Doc.Lines = append([]string{marker}, decl.Doc.Lines...)
		decl.Doc.Raw = ""
		c.count(m.RuleMarker)

		return true
	})
}

func classLike(decl *node.TypeDecl) bool {
	return decl.Keyword == "class" || decl.Keyword == "interface"
}
