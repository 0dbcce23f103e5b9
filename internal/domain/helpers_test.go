package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/controller"
	"bindport.dev/pkg/bindport/internal/emitter"
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/rules"
)

type mockUI struct {
	mock.Mock
}

func (u *mockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	args := u.Called(ctx, options)
	return args.Error(0)
}

func (u *mockUI) Close(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) Wait(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) DisplaySources(ctx context.Context, count int) {
	u.Called(ctx, count)
}

func (u *mockUI) DisplayPorted(ctx context.Context, report m.Report) {
	u.Called(ctx, report)
}

func (u *mockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	args := u.Called(ctx, reports)
	return args.Error(0)
}

func (u *mockUI) DisplayDiff(ctx context.Context, path m.Path, diff string) error {
	args := u.Called(ctx, path, diff)
	return args.Error(0)
}

type mockTranslator struct {
	mock.Mock
}

func (t *mockTranslator) Translate(ctx context.Context, source m.Source) (m.Translation, error) {
	args := t.Called(ctx, source)
	return args.Get(0).(m.Translation), args.Error(1)
}

func (t *mockTranslator) TranslateSource(ctx context.Context, filename string, src []byte) ([]byte, m.RuleCounts, error) {
	args := t.Called(ctx, filename, src)

	out, _ := args.Get(0).([]byte)
	counts, _ := args.Get(1).(m.RuleCounts)

	return out, counts, args.Error(2)
}

func newTranslator(t *testing.T) Translator {
	t.Helper()

	catalog, err := rules.Default()
	require.NoError(t, err)

	return NewTranslator(adapter.NewLocalJavaFileAdapter(), adapter.NewLocalSourceFSAdapter(), catalog)
}

func newWorkflow(t *testing.T, ui controller.UI) Workflow {
	t.Helper()

	fs := adapter.NewLocalSourceFSAdapter()

	return NewWorkflow(fs, adapter.NewReportStore(), ui, newTranslator(t), emitter.New(fs))
}

// writeTree creates files under root from a map of slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
