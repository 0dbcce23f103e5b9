package rules

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// PackagePrefix is the first qualified-name fix.
func (c *Catalog) PackagePrefix() Replacement {
	return c.doc.QualifiedNames.Prefix
}

// Typo is the second qualified-name fix.
func (c *Catalog) Typo() Replacement {
	return c.doc.QualifiedNames.Typo
}

// ImportRename looks up a fully qualified type rename.
func (c *Catalog) ImportRename(name string) (string, bool) {
	renamed, ok := c.doc.Imports[name]
	return renamed, ok
}

// ShortName looks up the unqualified rename derived from the import table.
func (c *Catalog) ShortName(name string) (string, bool) {
	renamed, ok := c.shortNames[name]
	return renamed, ok
}

// MethodRename looks up a call-site method rename.
func (c *Catalog) MethodRename(name string) (string, bool) {
	renamed, ok := c.methods[name]
	return renamed, ok
}

// VersionAccessor is the name of the major-version accessor call.
func (c *Catalog) VersionAccessor() string {
	return c.doc.Calls.VersionAccessor
}

// Lifetime returns the runtime call that replaces a retain/release call.
func (c *Catalog) Lifetime(name string) (runtime, method, handle string, ok bool) {
	lifetime := c.doc.Calls.Lifetime

	method, ok = lifetime.Methods[name]
	if !ok {
		return "", "", "", false
	}

	return lifetime.Runtime, method, lifetime.Handle, true
}

// ErrorArgument returns the new name of a call that gains a trailing null
// error argument.
func (c *Catalog) ErrorArgument(name string) (string, bool) {
	renamed, ok := c.doc.Calls.ErrorArgument[name]
	return renamed, ok
}

// Arity returns the new name of a call with n arguments, if one is defined.
func (c *Catalog) Arity(name string, n int) (string, bool) {
	renamed, ok := c.doc.Calls.Arity[name][n]
	return renamed, ok
}

// EnumLookup is the single valueOf-style substitution.
func (c *Catalog) EnumLookup() EnumLookupRule {
	return c.doc.Calls.EnumLookup
}

// Allocator is the factory method that precedes constructor initializers.
func (c *Catalog) Allocator() string {
	return c.doc.Constructors.Allocator
}

// Constructor returns the allocate/initialize rule for a type.
func (c *Catalog) Constructor(typeName string) (ConstructorRule, bool) {
	rule, ok := c.doc.Constructors.Types[typeName]
	return rule, ok
}

// Array returns the arity-dispatched factory rule for a container type.
func (c *Catalog) Array(typeName string) (ArrayRule, bool) {
	rule, ok := c.doc.Constructors.Arrays[typeName]
	return rule, ok
}

// EnumNamespace returns the namespace whose static accessors replace the
// constants of an enum-like type.
func (c *Catalog) EnumNamespace(typeName string) (string, bool) {
	ns, ok := c.doc.Enums[typeName]
	return ns, ok
}

// SwitchCast returns the cast type for switches over the named accessor.
func (c *Catalog) SwitchCast(selector string) (string, bool) {
	castType, ok := c.doc.Switches[selector]
	return castType, ok
}

// MethodBody returns the fixed body for a method declaration.
func (c *Catalog) MethodBody(name string) (BodyRule, bool) {
	rule, ok := c.doc.MethodBodies[name]
	return rule, ok
}

// Unchecked reports whether a method's throws clause is cleared.
func (c *Catalog) Unchecked(name string) bool {
	_, ok := c.unchecked[name]
	return ok
}

// Marker is the machine-generated notice stamped on every output.
func (c *Catalog) Marker() string {
	return c.doc.Synthesis.Marker
}

// FileImports returns the imports added to a file with the given base name.
func (c *Catalog) FileImports(fileName string) []ImportSpec {
	return slices.Clone(c.doc.Synthesis.Imports[fileName])
}

// HelperType reports whether a type receives the version helper method.
func (c *Catalog) HelperType(typeName string) bool {
	_, ok := c.helpers[typeName]
	return ok
}

// VersionHelper describes the body of the synthesised helper.
func (c *Catalog) VersionHelper() HelperRule {
	helper := c.doc.Synthesis.VersionHelper
	helper.Types = slices.Clone(helper.Types)

	return helper
}

// Methods returns a copy of the merged method rename table.
func (c *Catalog) Methods() map[string]string {
	return maps.Clone(c.methods)
}

// ShortNames returns a copy of the derived short-name table.
func (c *Catalog) ShortNames() map[string]string {
	return maps.Clone(c.shortNames)
}

// MarshalYAML renders the catalog in its file format.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	return c.doc, nil
}

// Encode renders the catalog as YAML.
func (c *Catalog) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}
