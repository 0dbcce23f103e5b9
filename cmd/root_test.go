package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bindport.dev/pkg/bindport/internal/domain"
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/rules"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "bindport", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{catalogFlagName, sourceFlagName, reportsFlagName, excludeFlagName, runParallelFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, out := newTestRoot(t)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "Multi-OS Engine")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"run", "list", "diff", "view", "init", "catalog", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestScanArgs(t *testing.T) {
	cmd, _ := newTestRoot(t)
	require.NoError(t, cmd.ParseFlags([]string{"--src", "java", "-x", "Test", "-x", "^gen/", "-p", "4"}))

	got := scanArgs(nil)
	assert.Equal(t, domain.ScanArgs{Source: m.Path("java"), Exclude: []string{"Test", "^gen/"}, Threads: 4}, got)

	got = scanArgs([]string{"other"})
	assert.Equal(t, m.Path("other"), got.Source)
}

func TestCurrentWorkflow(t *testing.T) {
	t.Run("wires once", func(t *testing.T) {
		useWorkflow(t, nil)

		cmd, _ := newTestRoot(t)
		first, err := currentWorkflow(cmd)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := currentWorkflow(cmd)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("catalog failure", func(t *testing.T) {
		useWorkflow(t, nil)

		original := loadCatalog
		loadCatalog = func(string) (*rules.Catalog, error) { return nil, rules.ErrInvalidCatalog }
		t.Cleanup(func() { loadCatalog = original })

		cmd, _ := newTestRoot(t)
		wf, err := currentWorkflow(cmd)
		require.ErrorIs(t, err, rules.ErrInvalidCatalog)
		assert.Nil(t, wf)
		assert.Nil(t, workflow)
	})
}

func TestExecute_WithError(t *testing.T) {
	wf := &mockWorkflow{}
	useWorkflow(t, wf)
	wf.On("List", mock.Anything, mock.Anything).Return(errors.New("boom"))

	cmd, _ := newTestRoot(t, newListCmd())
	cmd.SetArgs([]string{"list"})

	require.EqualError(t, cmd.Execute(), "boom")
	wf.AssertExpectations(t)
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		rootCmd = &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				return fmt.Errorf("command failed")
			},
		}

		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "output: %s", output)
	assert.Equal(t, 1, exitErr.ExitCode())
}
