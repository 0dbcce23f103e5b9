package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"

	"bindport.dev/pkg/bindport/internal/domain"
)

type mockWorkflow struct {
	mock.Mock
}

func (w *mockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) List(ctx context.Context, args domain.ScanArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) Diff(ctx context.Context, args domain.ScanArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return w.Called(ctx, args).Error(0)
}

// useWorkflow swaps the shared workflow for the duration of the test.
func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	original := workflow
	workflow = wf

	t.Cleanup(func() { workflow = original })
}

// newTestRoot builds a fresh root command with the given children whose
// output is captured and whose log file lives in a temp dir.
func newTestRoot(t *testing.T, children ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("BINDPORT_LOG_FILENAME", filepath.Join(t.TempDir(), "bindport.log"))

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.AddCommand(children...)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}
