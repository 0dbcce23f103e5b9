package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "bindport.dev/pkg/bindport/internal/model"
)

const maxProgressWidth = 60

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	fileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// TUI implements UI with a Bubble Tea progress view for runs. Tables and
// diffs are printed after the program exits.
type TUI struct {
	cmd     *cobra.Command
	mode    StartMode
	program *tea.Program
	done    chan struct{}
	err     error
	once    sync.Once
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

func (t *TUI) output() io.Writer {
	return t.cmd.OutOrStdout()
}

// Start launches the progress view in run mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mode = newStartConfig(options).mode
	if t.mode != ModeRun {
		return nil
	}

	t.program = tea.NewProgram(newRunModel(),
		tea.WithOutput(t.output()),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	t.done = make(chan struct{})
	t.once = sync.Once{}

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			t.err = err
		}
	}()

	return nil
}

// Close stops the progress view and waits for it to exit.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.once.Do(func() {
		t.program.Send(finishedMsg{})
		<-t.done
	})
}

// Wait blocks until the progress view exits.
func (t *TUI) Wait(_ context.Context) {
	if t.done != nil {
		<-t.done
	}
}

// DisplaySources sets the progress total.
func (t *TUI) DisplaySources(_ context.Context, count int) {
	if t.program != nil {
		t.program.Send(totalMsg(count))
	}
}

// DisplayPorted advances the progress bar.
func (t *TUI) DisplayPorted(_ context.Context, report m.Report) {
	if t.program != nil {
		t.program.Send(portedMsg(report))
	}
}

// DisplayReports prints the tally table under a styled title.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := "bindport - ported files"
	if t.mode == ModeList {
		title = "bindport - dry run"
	}

	if _, err := fmt.Fprintln(t.output(), titleStyle.Render(title)); err != nil {
		return err
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintln(t.output(), fileStyle.Render("No Java sources found"))
		return err
	}

	_, err := fmt.Fprint(t.output(), renderReportTable(reports))

	return err
}

// DisplayDiff prints a coloured unified diff.
func (t *TUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeDiff(t.output(), diff)
}

type (
	totalMsg    int
	portedMsg   m.Report
	finishedMsg struct{}
)

// runModel is the Bubble Tea model behind the run progress view.
type runModel struct {
	spinner  spinner.Model
	progress progress.Model
	total    int
	done     int
	rewrites int
	current  string
	finished bool
}

func newRunModel() runModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(progress.WithDefaultGradient())
	p.Width = maxProgressWidth

	return runModel{spinner: s, progress: p}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case totalMsg:
		rm.total = int(msg)
	case portedMsg:
		rm.done++
		rm.rewrites += m.Report(msg).Counts.Rewrites()
		rm.current = string(msg.Source)
	case finishedMsg:
		rm.finished = true
		return rm, tea.Quit
	case tea.WindowSizeMsg:
		rm.progress.Width = min(msg.Width-4, maxProgressWidth)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return rm, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd

		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return float64(rm.done) / float64(rm.total)
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bindport - porting sources") + "\n\n")

	if rm.finished {
		b.WriteString(doneStyle.Render(fmt.Sprintf("Ported %d/%d file(s), %d rewrites", rm.done, rm.total, rm.rewrites)) + "\n")
		return b.String()
	}

	status := lipgloss.JoinHorizontal(lipgloss.Center, rm.spinner.View(), " ", fileStyle.Render(rm.current))
	b.WriteString(status + "\n")
	b.WriteString(rm.progress.ViewAs(rm.percent()) + "\n")
	fmt.Fprintf(&b, "%d/%d file(s), %d rewrites\n", rm.done, rm.total, rm.rewrites)

	return b.String()
}
