package emitter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"bindport.dev/pkg/bindport/internal/adapter"
	m "bindport.dev/pkg/bindport/internal/model"
)

const outputPerm = 0o644

// Emitter writes translations into an output tree that mirrors the source
// tree.
type Emitter interface {
	// Emit writes t to <outRoot>/<path relative to the source root>,
	// overwriting any existing file, and returns t with Target set.
	Emit(ctx context.Context, outRoot m.Path, t m.Translation) (m.Translation, error)
}

type emitter struct {
	adapter.SourceFSAdapter
}

// New returns an Emitter writing through fs.
func New(fs adapter.SourceFSAdapter) Emitter {
	return &emitter{SourceFSAdapter: fs}
}

func (e *emitter) Emit(ctx context.Context, outRoot m.Path, t m.Translation) (m.Translation, error) {
	if t.Source.Origin == nil || t.Source.Origin.ShortPath == "" {
		return t, fmt.Errorf("emit: missing source path")
	}

	target := e.JoinPath(string(outRoot), filepath.FromSlash(string(t.Source.Origin.ShortPath)))

	if err := e.WriteFile(ctx, target, t.Output, outputPerm); err != nil {
		slog.Error("Failed to write ported file", "target", target, "error", err)
		return t, fmt.Errorf("write %s: %w", target, err)
	}

	slog.Debug("Wrote ported file", "target", target, "bytes", len(t.Output))

	t.Target = target

	return t, nil
}
