package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/hours"
)

// SQLiteRunRepo implements RunRepo over the export schema.
type SQLiteRunRepo struct {
	db *sql.DB
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(db *sql.DB) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

const runSelect = `SELECT r.id, r.generated_at, r.break_policy, r.skipped_records,
		COUNT(d.seq),
		COALESCE(SUM(CASE WHEN d.worked_hours > 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(d.worked_hours), 0),
		COALESCE(MIN(d.date), ''),
		COALESCE(MAX(d.date), '')
	FROM report_runs r
	LEFT JOIN day_records d ON d.run_id = r.id`

func (r *SQLiteRunRepo) List(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, runSelect+`
		GROUP BY r.id
		ORDER BY r.generated_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, runSelect+`
		WHERE r.id = ?
		GROUP BY r.id`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

func (r *SQLiteRunRepo) Totals(ctx context.Context, runID string, g Granularity) ([]PeriodTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT period, total_hours, records FROM period_totals
		WHERE run_id = ? AND granularity = ?
		ORDER BY period`, runID, string(g))
	if err != nil {
		return nil, fmt.Errorf("listing %s totals: %w", g, err)
	}
	defer rows.Close()

	var totals []PeriodTotal
	for rows.Next() {
		var t PeriodTotal
		if err := rows.Scan(&t.Period, &t.TotalHours, &t.Records); err != nil {
			return nil, fmt.Errorf("scanning %s total: %w", g, err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s totals: %w", g, err)
	}
	return totals, nil
}

// Delete removes a run and everything stored with it.
func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	return db.NewSQLiteUnitOfWork(r.db).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, table := range []string{"day_records", "summary_statistics", "period_totals"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
				return fmt.Errorf("deleting %s: %w", table, err)
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM report_runs WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting run: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		run         Run
		generatedAt string
		policy      string
		first, last string
	)
	err := s.Scan(&run.ID, &generatedAt, &policy, &run.Skipped,
		&run.Records, &run.DaysWorked, &run.TotalHours, &first, &last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing generated_at: %w", err)
	}
	run.Policy = domain.BreakPolicy(policy)
	run.TotalHours = hours.Round2(run.TotalHours)
	run.FirstDate = isoToDisplay(first)
	run.LastDate = isoToDisplay(last)
	return &run, nil
}

// isoToDisplay converts a stored YYYY-MM-DD date to DD/MM/YYYY.
func isoToDisplay(s string) string {
	if s == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return d.Format(domain.DateLayout)
}
