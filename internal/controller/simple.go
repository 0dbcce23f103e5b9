package controller

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	m "bindport.dev/pkg/bindport/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplaySources announces how many files will be processed.
func (s *SimpleUI) DisplaySources(ctx context.Context, count int) {
	if ctx.Err() != nil || s.mode != ModeRun {
		return
	}

	s.printf("Porting %d file(s)\n", count)
}

// DisplayPorted reports one written file.
func (s *SimpleUI) DisplayPorted(ctx context.Context, report m.Report) {
	if ctx.Err() != nil || s.mode != ModeRun {
		return
	}

	s.printf("Ported %s -> %s (%d rewrites, %s)\n",
		report.Source, report.Target, report.Counts.Rewrites(), humanize.Bytes(uint64(report.Bytes)))
}

// DisplayReports prints the per-file tally table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No Java sources found\n")
		return nil
	}

	s.printf("\n%s", renderReportTable(reports))

	return nil
}

// DisplayDiff prints a unified diff for one file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeDiff(s.cmd.OutOrStdout(), diff)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
