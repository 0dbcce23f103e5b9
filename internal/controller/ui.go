// Package controller renders workflow progress and results to the terminal.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "bindport.dev/pkg/bindport/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeList
	ModeDiff
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode shows progress while files are ported and written.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithListMode sets the UI to dry-run tally mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithDiffMode sets the UI to diff mode.
func WithDiffMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDiff
	}
}

// WithViewMode sets the UI to saved-report mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how the workflow reports to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplaySources(ctx context.Context, count int)
	DisplayPorted(ctx context.Context, report m.Report)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayDiff(ctx context.Context, path m.Path, diff string) error
}

// NewUI picks the interactive UI for terminals and plain output otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
