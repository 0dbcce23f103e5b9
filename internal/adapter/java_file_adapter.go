package adapter

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"bindport.dev/pkg/bindport/internal/node"
)

// JavaFileAdapter turns Java source text into the node model the rewriter
// works on.
type JavaFileAdapter interface {
	// Parse builds a tree for src. Any syntax error is reported as a
	// ParseError; partially parsed files are never returned.
	Parse(ctx context.Context, filename string, src []byte) (*node.Unit, error)
}

// ParseError locates the first syntax error of a file. Line and Column are
// 1-based.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Reason)
}

// LocalJavaFileAdapter parses Java with the tree-sitter Java grammar.
type LocalJavaFileAdapter struct{}

// NewLocalJavaFileAdapter constructs a LocalJavaFileAdapter.
func NewLocalJavaFileAdapter() *LocalJavaFileAdapter {
	return &LocalJavaFileAdapter{}
}

// Parse builds a node tree for the provided filename/source pair.
func (a *LocalJavaFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*node.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		slog.Error("Failed to parse Java source", "file", filename, "error", err)
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		perr := &ParseError{Path: filename, Line: 1, Column: 1, Reason: "syntax error"}

		if bad != nil {
			perr.Line = int(bad.StartPoint().Row) + 1
			perr.Column = int(bad.StartPoint().Column) + 1

			if bad.IsMissing() {
				perr.Reason = fmt.Sprintf("missing %s", bad.Type())
			}
		}

		slog.Error("Java source has syntax errors", "file", filename, "line", perr.Line, "column", perr.Column)

		return nil, perr
	}

	conv := &converter{src: src}

	return conv.unit(root), nil
}

// firstError returns the first ERROR or MISSING node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}

	if !n.HasError() {
		return nil
	}

	for _, kid := range children(n) {
		if bad := firstError(kid); bad != nil {
			return bad
		}
	}

	return nil
}
