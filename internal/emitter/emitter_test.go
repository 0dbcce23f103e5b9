package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bindport.dev/pkg/bindport/internal/adapter"
	m "bindport.dev/pkg/bindport/internal/model"
)

func TestEmit(t *testing.T) {
	out := t.TempDir()
	e := New(adapter.NewLocalSourceFSAdapter())

	translation := m.Translation{
		Source: m.Source{Origin: &m.File{ShortPath: "com/example/Ios.java"}},
		Output: []byte("class Ios {}\n"),
	}

	got, err := e.Emit(t.Context(), m.Path(out), translation)
	require.NoError(t, err)

	want := filepath.Join(out, "com", "example", "Ios.java")
	assert.Equal(t, m.Path(want), got.Target)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "class Ios {}\n", string(data))
}

func TestEmit_Overwrites(t *testing.T) {
	out := t.TempDir()
	target := filepath.Join(out, "A.java")
	require.NoError(t, os.WriteFile(target, []byte("old contents that are longer"), 0o600))

	e := New(adapter.NewLocalSourceFSAdapter())
	_, err := e.Emit(t.Context(), m.Path(out), m.Translation{
		Source: m.Source{Origin: &m.File{ShortPath: "A.java"}},
		Output: []byte("new"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestEmit_Errors(t *testing.T) {
	e := New(adapter.NewLocalSourceFSAdapter())

	_, err := e.Emit(t.Context(), m.Path(t.TempDir()), m.Translation{})
	require.Error(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err = e.Emit(t.Context(), m.Path(blocker), m.Translation{
		Source: m.Source{Origin: &m.File{ShortPath: "A.java"}},
	})
	require.Error(t, err)
}
