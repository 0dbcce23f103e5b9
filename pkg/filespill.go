// Package pkg holds reusable helpers shared by bindport commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrReadOnly is returned when appending to a spill opened for reading.
var ErrReadOnly = errors.New("filespill is read-only")

// FileSpill is an append-only, gob-encoded sequence of T kept on disk.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// CreateFileSpill creates (or truncates) a spill at path, creating parent
// directories as needed.
func CreateFileSpill[T any](path string) (FileSpill[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	// #nosec G304 - path is the configured report location
	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create spill file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", path)

	return &fileSpillImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenFileSpill opens an existing spill for reading.
func OpenFileSpill[T any](path string) (FileSpill[T], error) {
	spill := &fileSpillImpl[T]{path: path}

	n, err := spill.count()
	if err != nil {
		return nil, err
	}

	spill.length = n
	slog.Debug("opened filespill", "path", path, "length", n)

	return spill, nil
}

func (f *fileSpillImpl[T]) count() (uint64, error) {
	// #nosec G304 - path is the configured report location
	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill file", "path", f.path, "error", err)
		return 0, fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var n uint64

	for {
		var item T

		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			return n, nil
		}

		if err != nil {
			slog.Error("failed to decode item", "path", f.path, "index", n, "error", err)
			return 0, fmt.Errorf("failed to decode item at index %d: %w", n, err)
		}

		n++
	}
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.encoder == nil {
		return ErrReadOnly
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// AppendBatch implements FileSpill.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill. Reads keep working after Close.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil
	f.encoder = nil

	if err != nil {
		slog.Error("failed to close file", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

// Get implements FileSpill.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	var found T

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStop
		}

		return nil
	})

	switch {
	case errors.Is(err, errStop):
		return found, nil
	case err != nil:
		var zero T
		return zero, err
	default:
		var zero T
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}
}

var errStop = errors.New("stop")

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// #nosec G304 - path is the configured report location
	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}
