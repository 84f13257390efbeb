package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/hours"
)

// Format is an export file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, json or sqlite)", s)
	}
}

// Export writes r to out in the given format. For CSV, out is a directory
// receiving one file per table.
func Export(ctx context.Context, r *Report, format Format, out string) ([]string, error) {
	switch format {
	case FormatCSV:
		return WriteCSV(r, out)
	case FormatJSON:
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", out, err)
		}
		if err := WriteJSON(r, f); err != nil {
			f.Close()
			return nil, err
		}
		return []string{out}, f.Close()
	case FormatSQLite:
		return []string{out}, WriteSQLite(ctx, r, out)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// WriteCSV writes details.csv, summary.csv, weekly.csv and monthly.csv
// into dir and returns their paths.
func WriteCSV(r *Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	var paths []string
	for _, t := range r.Tables() {
		path := filepath.Join(dir, t.Name+".csv")
		if err := writeTableFile(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTableFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteTableCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteTableCSV writes a header row followed by the table rows.
func WriteTableCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

type jsonRecord struct {
	Date        string  `json:"date"`
	ClockIn     string  `json:"clock_in"`
	BreakStart  string  `json:"break_start"`
	BreakEnd    string  `json:"break_end"`
	ClockOut    string  `json:"clock_out"`
	WorkedHours float64 `json:"worked_hours"`
	Outcome     string  `json:"outcome"`
	Reason      string  `json:"reason,omitempty"`
	Source      string  `json:"source,omitempty"`
	Synthetic   bool    `json:"synthetic,omitempty"`
}

type jsonStats struct {
	TotalHours float64 `json:"total_hours"`
	Mean       float64 `json:"mean"`
	Mode       float64 `json:"mode"`
	StdDev     float64 `json:"standard_deviation"`
	Count      int     `json:"count"`
	Positive   int     `json:"positive"`
}

type jsonBucket struct {
	Period     string  `json:"period"`
	TotalHours float64 `json:"total_hours"`
	Records    int     `json:"records"`
}

type jsonFile struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Records int     `json:"records"`
	Dropped int     `json:"dropped_dates"`
	Total   float64 `json:"total_hours"`
	Warning string  `json:"warning,omitempty"`
}

type jsonReport struct {
	RunID          string       `json:"run_id"`
	GeneratedAt    string       `json:"generated_at"`
	BreakPolicy    string       `json:"break_policy"`
	Files          []jsonFile   `json:"files"`
	Records        []jsonRecord `json:"records"`
	SkippedRecords int          `json:"skipped_records"`
	Daily          jsonStats    `json:"daily"`
	Weekly         []jsonBucket `json:"weekly"`
	WeeklyStats    jsonStats    `json:"weekly_stats"`
	Monthly        []jsonBucket `json:"monthly"`
	MonthlyStats   jsonStats    `json:"monthly_stats"`
	Warnings       []string     `json:"warnings,omitempty"`
}

// WriteJSON writes r as one indented JSON document.
func WriteJSON(r *Report, w io.Writer) error {
	s := r.Summary
	doc := jsonReport{
		RunID:          r.RunID,
		GeneratedAt:    r.GeneratedAt.Format(time.RFC3339),
		BreakPolicy:    string(r.Policy),
		Files:          make([]jsonFile, 0, len(r.Files)),
		Records:        make([]jsonRecord, 0, len(s.Records)),
		SkippedRecords: len(s.Skipped),
		Daily:          toJSONStats(s.Daily),
		Weekly:         make([]jsonBucket, 0, len(s.Weekly)),
		WeeklyStats:    toJSONStats(s.WeeklyStats),
		Monthly:        make([]jsonBucket, 0, len(s.Monthly)),
		MonthlyStats:   toJSONStats(s.MonthlyStats),
		Warnings:       r.Warnings,
	}
	for _, f := range r.Files {
		doc.Files = append(doc.Files, jsonFile{
			Name: f.Name, Kind: string(f.Kind), Records: f.Records, Dropped: f.Dropped, Total: f.Total, Warning: f.Warning,
		})
	}
	for _, rec := range s.Records {
		doc.Records = append(doc.Records, jsonRecord{
			Date:        rec.Day.Format(domain.DateLayout),
			ClockIn:     rec.ClockIn,
			BreakStart:  rec.BreakStart,
			BreakEnd:    rec.BreakEnd,
			ClockOut:    rec.ClockOut,
			WorkedHours: rec.WorkedHours,
			Outcome:     string(rec.Outcome),
			Reason:      rec.Reason,
			Source:      rec.Source,
			Synthetic:   rec.Synthetic,
		})
	}
	for _, b := range s.Weekly {
		doc.Weekly = append(doc.Weekly, jsonBucket{Period: b.Key, TotalHours: b.Total, Records: b.Records})
	}
	for _, b := range s.Monthly {
		doc.Monthly = append(doc.Monthly, jsonBucket{Period: b.Key, TotalHours: b.Total, Records: b.Records})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func toJSONStats(s aggregate.Stats) jsonStats {
	return jsonStats{
		TotalHours: hours.Round2(s.Total),
		Mean:       hours.Round2(s.Mean),
		Mode:       hours.Round2(s.Mode),
		StdDev:     hours.Round2(s.StdDev),
		Count:      s.Count,
		Positive:   s.Positive,
	}
}

// WriteSQLite appends r to the SQLite database at path as one run.
func WriteSQLite(ctx context.Context, r *Report, path string) error {
	database, err := db.OpenDB(path)
	if err != nil {
		return err
	}
	defer database.Close()

	return SaveRun(ctx, db.NewSQLiteUnitOfWork(database), r)
}

// SaveRun stores r as one run in a single transaction.
func SaveRun(ctx context.Context, uow db.UnitOfWork, r *Report) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertReport(ctx, tx, r)
	})
}

func insertReport(ctx context.Context, tx db.DBTX, r *Report) error {
	s := r.Summary
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO report_runs (id, generated_at, break_policy, skipped_records) VALUES (?, ?, ?, ?)`,
		r.RunID, r.GeneratedAt.Format(time.RFC3339), string(r.Policy), len(s.Skipped),
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, rec := range s.Records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO day_records (run_id, seq, date, clock_in, break_start, break_end, clock_out,
				worked_hours, outcome, reason, source, synthetic)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, rec.Day.Format("2006-01-02"), rec.ClockIn, rec.BreakStart, rec.BreakEnd, rec.ClockOut,
			rec.WorkedHours, string(rec.Outcome), rec.Reason, rec.Source, rec.Synthetic,
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	for _, row := range r.Overall().Rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summary_statistics (run_id, statistic, value) VALUES (?, ?, ?)`,
			r.RunID, row[0], row[1],
		); err != nil {
			return fmt.Errorf("inserting statistic %s: %w", row[0], err)
		}
	}

	if err := insertTotals(ctx, tx, r.RunID, "week", s.Weekly); err != nil {
		return err
	}
	return insertTotals(ctx, tx, r.RunID, "month", s.Monthly)
}

func insertTotals(ctx context.Context, tx db.DBTX, runID, granularity string, buckets []aggregate.Bucket) error {
	for _, b := range buckets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO period_totals (run_id, granularity, period, total_hours, records) VALUES (?, ?, ?, ?, ?)`,
			runID, granularity, b.Key, b.Total, b.Records,
		); err != nil {
			return fmt.Errorf("inserting %s total %s: %w", granularity, b.Key, err)
		}
	}
	return nil
}
