// Package rules holds the rule catalog: the data tables that drive every
// rewrite. A Catalog is built once, validated, and never modified afterwards,
// so one instance can be shared by any number of concurrent rewrites.
package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the catalog format version this build understands.
const CurrentVersion = 1

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid rule catalog")

//go:embed default.yaml
var defaultCatalog []byte

// Replacement is a literal substring substitution.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Apply replaces every occurrence of From in s.
func (r Replacement) Apply(s string) string {
	if r.From == "" {
		return s
	}

	return strings.ReplaceAll(s, r.From, r.To)
}

// LifetimeRule turns retain/release calls into runtime calls on the peer handle.
type LifetimeRule struct {
	Runtime string            `yaml:"runtime"`
	Handle  string            `yaml:"handle"`
	Methods map[string]string `yaml:"methods"`
}

// EnumLookupRule replaces Type.Method(...) with a bare variable reference.
type EnumLookupRule struct {
	Type     string `yaml:"type"`
	Method   string `yaml:"method"`
	Variable string `yaml:"variable"`
}

// ConstructorRule rewrites new T(args) to T.alloc().Initializer(args, null...).
type ConstructorRule struct {
	Initializer   string `yaml:"initializer"`
	TrailingNulls int    `yaml:"trailingNulls"`
}

// ArrayRule picks a factory method for a container type by argument count.
type ArrayRule struct {
	Empty    string `yaml:"empty"`
	Single   string `yaml:"single"`
	Variadic string `yaml:"variadic"`
}

// Factory returns the factory method for n constructor arguments.
func (r ArrayRule) Factory(n int) string {
	switch n {
	case 0:
		return r.Empty
	case 1:
		return r.Single
	default:
		return r.Variadic
	}
}

// BodyRule replaces a method body with `return (Type) Variable.Call();`.
type BodyRule struct {
	Type     string `yaml:"type"`
	Variable string `yaml:"variable"`
	Call     string `yaml:"call"`
}

// ImportSpec is an import declaration inserted by the synthesis pass.
type ImportSpec struct {
	Name     string `yaml:"name"`
	Static   bool   `yaml:"static,omitempty"`
	Wildcard bool   `yaml:"wildcard,omitempty"`
}

// HelperRule describes the synthesised major-version helper method.
type HelperRule struct {
	Types   []string `yaml:"types"`
	Device  string   `yaml:"device"`
	Current string   `yaml:"current"`
	Version string   `yaml:"version"`
}

type qualifiedNameFixes struct {
	Prefix Replacement `yaml:"prefix"`
	Typo   Replacement `yaml:"typo"`
}

type callRules struct {
	VersionAccessor string                    `yaml:"versionAccessor"`
	Lifetime        LifetimeRule              `yaml:"lifetime"`
	ErrorArgument   map[string]string         `yaml:"errorArgument"`
	Arity           map[string]map[int]string `yaml:"arity"`
	EnumLookup      EnumLookupRule            `yaml:"enumLookup"`
}

type constructorRules struct {
	Allocator string                     `yaml:"allocator"`
	Types     map[string]ConstructorRule `yaml:"types"`
	Arrays    map[string]ArrayRule       `yaml:"arrays"`
}

type synthesisRules struct {
	Marker        string                  `yaml:"marker"`
	Imports       map[string][]ImportSpec `yaml:"imports"`
	VersionHelper HelperRule              `yaml:"versionHelper"`
}

// document is the on-disk catalog shape.
type document struct {
	Version          int                 `yaml:"version"`
	QualifiedNames   qualifiedNameFixes  `yaml:"qualifiedNames"`
	Imports          map[string]string   `yaml:"imports"`
	Methods          map[string]string   `yaml:"methods"`
	Accessors        []string            `yaml:"accessors"`
	Calls            callRules           `yaml:"calls"`
	Constructors     constructorRules    `yaml:"constructors"`
	Enums            map[string]string   `yaml:"enums"`
	Switches         map[string]string   `yaml:"switches"`
	MethodBodies     map[string]BodyRule `yaml:"methodBodies"`
	UncheckedMethods []string            `yaml:"uncheckedMethods"`
	Synthesis        synthesisRules      `yaml:"synthesis"`
}

// Catalog is the validated, read-only rule set.
type Catalog struct {
	doc        document
	shortNames map[string]string
	methods    map[string]string
	unchecked  map[string]struct{}
	helpers    map[string]struct{}
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultCatalog)
})

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads and validates a catalog file. An empty path yields the default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read rule catalog", "path", path, "error", err)
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	slog.Debug("Loaded rule catalog", "path", path, "imports", len(catalog.doc.Imports), "methods", len(catalog.methods))

	return catalog, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	return build(doc)
}

func build(doc document) (*Catalog, error) {
	if doc.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidCatalog, doc.Version)
	}

	shortNames, err := deriveShortNames(doc.Imports)
	if err != nil {
		return nil, err
	}

	methods := make(map[string]string, len(doc.Accessors)+len(doc.Methods))

	for _, accessor := range doc.Accessors {
		renamed := accessorName(accessor)
		if renamed == "" {
			return nil, fmt.Errorf("%w: accessor %q has no property name", ErrInvalidCatalog, accessor)
		}

		methods[accessor] = renamed
	}

	for from, to := range doc.Methods {
		methods[from] = to
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	return &Catalog{
		doc:        doc,
		shortNames: shortNames,
		methods:    methods,
		unchecked:  toSet(doc.UncheckedMethods),
		helpers:    toSet(doc.Synthesis.VersionHelper.Types),
	}, nil
}

// deriveShortNames maps the last segment of every renamed import to the last
// segment of its replacement.
func deriveShortNames(imports map[string]string) (map[string]string, error) {
	shortNames := make(map[string]string, len(imports))

	keys := make([]string, 0, len(imports))
	for k := range imports {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, from := range keys {
		oldName := lastSegment(from)
		newName := lastSegment(imports[from])

		if existing, ok := shortNames[oldName]; ok && existing != newName {
			return nil, fmt.Errorf("%w: short name %q maps to both %q and %q", ErrInvalidCatalog, oldName, existing, newName)
		}

		shortNames[oldName] = newName
	}

	return shortNames, nil
}

// accessorName drops every "get" and lower-cases the first letter:
// getButtonA -> buttonA.
func accessorName(getter string) string {
	name := strings.ReplaceAll(getter, "get", "")
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToLower(r)) + name[size:]
}

func validate(doc document) error {
	var errs []error

	for name, rule := range doc.Constructors.Types {
		if rule.Initializer == "" {
			errs = append(errs, fmt.Errorf("constructor %s: missing initializer", name))
		}

		if rule.TrailingNulls < 0 {
			errs = append(errs, fmt.Errorf("constructor %s: negative trailingNulls", name))
		}
	}

	if len(doc.Constructors.Types) > 0 && doc.Constructors.Allocator == "" {
		errs = append(errs, errors.New("constructors: missing allocator"))
	}

	for name, rule := range doc.Constructors.Arrays {
		if rule.Empty == "" || rule.Single == "" || rule.Variadic == "" {
			errs = append(errs, fmt.Errorf("array %s: empty, single and variadic factories are required", name))
		}
	}

	for name, arities := range doc.Calls.Arity {
		for n := range arities {
			if n < 0 {
				errs = append(errs, fmt.Errorf("arity %s: negative argument count %d", name, n))
			}
		}
	}

	lifetime := doc.Calls.Lifetime
	if len(lifetime.Methods) > 0 && (lifetime.Runtime == "" || lifetime.Handle == "") {
		errs = append(errs, errors.New("lifetime: runtime and handle are required"))
	}

	lookup := doc.Calls.EnumLookup
	if lookup != (EnumLookupRule{}) && (lookup.Type == "" || lookup.Method == "" || lookup.Variable == "") {
		errs = append(errs, errors.New("enumLookup: type, method and variable are required"))
	}

	for name, rule := range doc.MethodBodies {
		if rule.Type == "" || rule.Variable == "" || rule.Call == "" {
			errs = append(errs, fmt.Errorf("methodBodies %s: type, variable and call are required", name))
		}
	}

	helper := doc.Synthesis.VersionHelper
	if len(helper.Types) > 0 && (doc.Calls.VersionAccessor == "" || helper.Device == "" || helper.Current == "" || helper.Version == "") {
		errs = append(errs, errors.New("versionHelper: versionAccessor, device, current and version are required"))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

func lastSegment(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}
