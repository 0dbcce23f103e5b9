package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/pkg"
)

// ReportFileName is the file the report store keeps inside the reports directory.
const ReportFileName = "reports.gob"

// ErrNoReports is returned when a reports directory holds no saved run.
var ErrNoReports = errors.New("no reports found")

// ReportStore persists the per-file reports of the last run.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
}

type reportStore struct{}

// NewReportStore returns a ReportStore backed by a gob file spill.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (s *reportStore) SaveReports(dir m.Path, reports []m.Report) error {
	path := filepath.Join(string(dir), ReportFileName)

	spill, err := pkg.CreateFileSpill[m.Report](path)
	if err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	if err := spill.AppendBatch(reports); err != nil {
		_ = spill.Close()
		return fmt.Errorf("save reports: %w", err)
	}

	if err := spill.Close(); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	slog.Debug("Saved reports", "path", path, "count", len(reports))

	return nil
}

func (s *reportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	path := filepath.Join(string(dir), ReportFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}

	spill, err := pkg.OpenFileSpill[m.Report](path)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}

	reports := make([]m.Report, 0, spill.Len())

	err = spill.Range(func(_ uint64, report m.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}

	return reports, nil
}
