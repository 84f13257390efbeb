package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/extract"
	"github.com/alexanderramin/timecard/internal/hours"
	"github.com/alexanderramin/timecard/internal/ocr"
	"github.com/alexanderramin/timecard/internal/report"
	"github.com/alexanderramin/timecard/internal/tabular"
)

type reportService struct {
	extractor  *extract.Extractor
	calculator *hours.Calculator
	tables     *tabular.Reader
	recognizer ocr.Recognizer
	observer   UseCaseObserver
}

// NewReportService wires the pipeline stages. recognizer may be nil, in
// which case image sources are reported as unreadable.
func NewReportService(
	extractor *extract.Extractor,
	calculator *hours.Calculator,
	tables *tabular.Reader,
	recognizer ocr.Recognizer,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		extractor:  extractor,
		calculator: calculator,
		tables:     tables,
		recognizer: recognizer,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) BuildReport(ctx context.Context, sources []Source) (rep *report.Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"files":        len(sources),
		"break_policy": string(s.calculator.Policy()),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "build-report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var (
		computed []domain.ComputedRecord
		files    = make([]report.FileSummary, 0, len(sources))
		warnings []string
	)
	for _, src := range sources {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("building report: %w", err)
		}

		summary, recs, fileErr := s.processSource(ctx, src)
		if fileErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("building report: %w", ctxErr)
				return nil, err
			}
			summary.Warning = fileErr.Error()
		}
		if summary.Warning != "" {
			warnings = append(warnings, summary.Warning)
		}
		files = append(files, summary)
		computed = append(computed, recs...)
	}

	rep = report.New(aggregate.Aggregate(computed), s.calculator.Policy())
	rep.Files = files
	rep.Warnings = warnings

	fields["records"] = len(rep.Summary.Records)
	fields["skipped_records"] = len(rep.Summary.Skipped)
	fields["warnings"] = len(warnings)
	fields["total_hours"] = rep.Summary.Daily.Total
	return rep, nil
}

// processSource runs one source through extraction and computation. The
// returned summary is valid even when err is set.
func (s *reportService) processSource(ctx context.Context, src Source) (report.FileSummary, []domain.ComputedRecord, error) {
	summary := report.FileSummary{Name: src.Name, Kind: src.Kind}
	if src.Err != nil {
		return summary, nil, src.Err
	}

	raw, dropped, err := s.rawRecords(ctx, src)
	if err != nil {
		return summary, nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	summary.Dropped = dropped
	if len(raw) == 0 {
		summary.Warning = fmt.Sprintf("%s: no data detected", src.Name)
		return summary, nil, nil
	}

	for i := range raw {
		raw[i].Source = src.Name
	}
	computed := s.calculator.Apply(raw)

	worked := make([]float64, len(computed))
	for i, c := range computed {
		worked[i] = c.WorkedHours
	}
	summary.Records = len(computed)
	summary.Total = aggregate.Describe(worked).Total
	return summary, computed, nil
}

func (s *reportService) rawRecords(ctx context.Context, src Source) ([]domain.RawRecord, int, error) {
	switch src.Kind {
	case domain.SourceText:
		return s.fromText(string(src.Data))
	case domain.SourceImage:
		if s.recognizer == nil {
			return nil, 0, ocr.ErrNotConfigured
		}
		text, err := s.recognizer.Recognize(ctx, src.Name, src.Data)
		if err != nil {
			return nil, 0, err
		}
		return s.fromText(text)
	case domain.SourceTable:
		recs, err := s.tables.ReadCSV(bytes.NewReader(src.Data))
		return recs, 0, err
	default:
		return nil, 0, errors.New("unknown source kind")
	}
}

func (s *reportService) fromText(text string) ([]domain.RawRecord, int, error) {
	scan := s.extractor.Scan(text)
	recs := s.extractor.Records(scan)
	return recs, len(scan.Dates) - len(recs), nil
}
