package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/controller"
	"bindport.dev/pkg/bindport/internal/emitter"
	m "bindport.dev/pkg/bindport/internal/model"
)

// ErrSameRoot is returned when the output root would overwrite the sources.
var ErrSameRoot = errors.New("output root must differ from source root")

// ScanArgs selects the sources to port.
type ScanArgs struct {
	Source  m.Path
	Exclude []string
	Threads int
}

// RunArgs contains the arguments for porting a source tree to disk.
type RunArgs struct {
	ScanArgs
	Output  m.Path
	Reports m.Path
}

// ViewArgs contains the arguments for showing the last run.
type ViewArgs struct {
	Reports m.Path
}

// Workflow drives the commands of the CLI.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ScanArgs) error
	Diff(ctx context.Context, args ScanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Translator
	emitter.Emitter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	translator Translator,
	emit emitter.Emitter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Translator:      translator,
		Emitter:         emit,
	}
}

// Run ports every source under args.Source into args.Output. The first
// failing file aborts the batch.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := checkRoots(args.Source, args.Output); err != nil {
		return err
	}

	sources, err := w.Get(ctx, args.Source, args.Exclude...)
	if err != nil {
		slog.Error("Failed to discover sources", "root", args.Source, "error", err)
		return fmt.Errorf("get sources: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	w.DisplaySources(ctx, len(sources))

	reports := make([]m.Report, len(sources))

	var mu sync.Mutex

	err = w.translateAll(ctx, sources, args.Threads, func(ctx context.Context, i int, t m.Translation) error {
		written, err := w.Emit(ctx, args.Output, t)
		if err != nil {
			return err
		}

		report := m.NewReport(written)

		mu.Lock()
		defer mu.Unlock()

		reports[i] = report
		w.DisplayPorted(ctx, report)

		return nil
	})

	w.Close(ctx)

	if err != nil {
		slog.Error("Porting failed", "root", args.Source, "error", err)
		return fmt.Errorf("port: %w", err)
	}

	if args.Reports != "" {
		if err := w.SaveReports(args.Reports, reports); err != nil {
			slog.Error("Failed to save reports", "path", args.Reports, "error", err)
			return fmt.Errorf("save reports: %w", err)
		}
	}

	slog.Info("Porting finished", "files", len(reports), "output", args.Output)

	return w.DisplayReports(ctx, reports)
}

// List ports every source in memory and shows the rule tallies.
func (w *workflow) List(ctx context.Context, args ScanArgs) error {
	translations, err := w.collect(ctx, args)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	reports := make([]m.Report, 0, len(translations))
	for _, t := range translations {
		reports = append(reports, m.NewReport(t))
	}

	return w.DisplayReports(ctx, reports)
}

// Diff ports every source in memory and shows unified diffs of the changes.
func (w *workflow) Diff(ctx context.Context, args ScanArgs) error {
	translations, err := w.collect(ctx, args)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithDiffMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	for _, t := range translations {
		if !t.Changed() {
			continue
		}

		diff, err := unifiedDiff(t.Source.Origin.ShortPath, t.Input, t.Output)
		if err != nil {
			return fmt.Errorf("diff %s: %w", t.Source.Origin.ShortPath, err)
		}

		if err := w.DisplayDiff(ctx, t.Source.Origin.ShortPath, diff); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	return nil
}

// View shows the reports saved by the last run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "path", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	return w.DisplayReports(ctx, reports)
}

func (w *workflow) collect(ctx context.Context, args ScanArgs) ([]m.Translation, error) {
	sources, err := w.Get(ctx, args.Source, args.Exclude...)
	if err != nil {
		slog.Error("Failed to discover sources", "root", args.Source, "error", err)
		return nil, fmt.Errorf("get sources: %w", err)
	}

	translations := make([]m.Translation, len(sources))

	err = w.translateAll(ctx, sources, args.Threads, func(_ context.Context, i int, t m.Translation) error {
		translations[i] = t
		return nil
	})
	if err != nil {
		slog.Error("Porting failed", "root", args.Source, "error", err)
		return nil, fmt.Errorf("port: %w", err)
	}

	return translations, nil
}

// translateAll translates sources with at most threads workers and hands
// each result to fn together with its index. The first error cancels the
// remaining work.
func (w *workflow) translateAll(
	ctx context.Context,
	sources []m.Source,
	threads int,
	fn func(ctx context.Context, i int, t m.Translation) error,
) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(normalizeThreads(threads))

	for i, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			t, err := w.Translate(groupCtx, source)
			if err != nil {
				return fmt.Errorf("translate %s: %w", source.Origin.ShortPath, err)
			}

			return fn(groupCtx, i, t)
		})
	}

	return group.Wait()
}

func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

func checkRoots(source, output m.Path) error {
	if output == "" {
		return fmt.Errorf("missing output root")
	}

	src, err := filepath.Abs(string(source))
	if err != nil {
		return fmt.Errorf("source root %s: %w", source, err)
	}

	out, err := filepath.Abs(string(output))
	if err != nil {
		return fmt.Errorf("output root %s: %w", output, err)
	}

	if src == out {
		return fmt.Errorf("%w: %s", ErrSameRoot, source)
	}

	return nil
}
