// Package adapter contains the infrastructure adapters for the bindport CLI:
// filesystem access, Java parsing and report persistence.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "bindport.dev/pkg/bindport/internal/model"
)

// JavaExt is the extension of the files that get ported.
const JavaExt = ".java"

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning the source tree and writing the output tree. It
// hides direct `os` access so the workflow logic can be tested without
// touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get discovers every Java file under root. Paths matching one of the
	// exclude regular expressions (tested against the root-relative path)
	// are skipped. Results are sorted by relative path.
	Get(ctx context.Context, root m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// WriteFile writes content to path, creating missing parent directories
	// and overwriting an existing file.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get walks root and returns its Java sources.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, root m.Path, exclude ...string) ([]m.Source, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(string(root))
	if err != nil {
		slog.Error("Failed to stat source root", "root", root, "error", err)
		return nil, fmt.Errorf("source root %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s: not a directory", root)
	}

	var sources []m.Source

	err = filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() || filepath.Ext(path) != JavaExt {
			return nil
		}

		rel, err := filepath.Rel(string(root), path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if excluded(patterns, rel) {
			slog.Debug("Excluded source", "path", rel)
			return nil
		}

		hash, err := a.HashFile(ctx, m.Path(path))
		if err != nil {
			return err
		}

		sources = append(sources, m.Source{
			Origin: &m.File{FullPath: m.Path(path), ShortPath: m.Path(rel), Hash: hash},
			Root:   root,
		})

		return nil
	})
	if err != nil {
		slog.Error("Failed to walk source root", "root", root, "error", err)
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.ShortPath < sources[j].Origin.ShortPath
	})

	slog.Debug("Discovered sources", "root", root, "count", len(sources))

	return sources, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, raw := range exclude {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func excluded(patterns []*regexp.Regexp, rel string) bool {
	for _, re := range patterns {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
