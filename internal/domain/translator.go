// Package domain contains the porting workflow: parsing, rewriting,
// synthesis and printing of each source file.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/domain/rewrites"
	"bindport.dev/pkg/bindport/internal/emitter"
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/rules"
)

// Translator ports single files.
type Translator interface {
	// Translate reads, parses, rewrites and prints one source file.
	Translate(ctx context.Context, source m.Source) (m.Translation, error)
	// TranslateSource ports src in memory. filename identifies the file for
	// the synthesis pass and error messages; only its base name matters.
	TranslateSource(ctx context.Context, filename string, src []byte) ([]byte, m.RuleCounts, error)
}

type translator struct {
	adapter.JavaFileAdapter
	adapter.SourceFSAdapter
	catalog *rules.Catalog
}

// NewTranslator creates a Translator applying catalog.
func NewTranslator(javaAdapter adapter.JavaFileAdapter, fsAdapter adapter.SourceFSAdapter, catalog *rules.Catalog) Translator {
	return &translator{
		JavaFileAdapter: javaAdapter,
		SourceFSAdapter: fsAdapter,
		catalog:         catalog,
	}
}

func (t *translator) Translate(ctx context.Context, source m.Source) (m.Translation, error) {
	if err := validateSource(source); err != nil {
		return m.Translation{}, err
	}

	if t.SourceFSAdapter == nil {
		return m.Translation{}, fmt.Errorf("missing adapters")
	}

	content, err := t.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		slog.Error("Failed to read source", "path", source.Origin.FullPath, "error", err)
		return m.Translation{}, fmt.Errorf("failed to read %s: %w", source.Origin.FullPath, err)
	}

	output, counts, err := t.TranslateSource(ctx, string(source.Origin.FullPath), content)
	if err != nil {
		return m.Translation{}, err
	}

	return m.Translation{
		Source: source,
		Input:  content,
		Output: output,
		Counts: counts,
	}, nil
}

func (t *translator) TranslateSource(ctx context.Context, filename string, src []byte) ([]byte, m.RuleCounts, error) {
	if t.JavaFileAdapter == nil || t.catalog == nil {
		return nil, nil, fmt.Errorf("missing adapters")
	}

	unit, err := t.Parse(ctx, filename, src)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	rc := rewrites.NewContext(t.catalog, filepath.Base(filename))

	Rewrite(rc, unit)
	rewrites.Synthesize(rc, unit)

	slog.Debug("Ported source", "file", filename, "rewrites", rc.Counts.Rewrites(), "total", rc.Counts.Total())

	return []byte(emitter.Print(unit)), rc.Counts, nil
}

func validateSource(source m.Source) error {
	if source.Origin == nil || source.Origin.FullPath == "" {
		return fmt.Errorf("missing source origin")
	}

	return nil
}
