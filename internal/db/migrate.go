package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the report export schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS report_runs (
		id              TEXT PRIMARY KEY,
		generated_at    TEXT NOT NULL,
		break_policy    TEXT NOT NULL
		                CHECK(break_policy IN ('segments','deduct-break')),
		skipped_records INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS day_records (
		run_id       TEXT NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		date         TEXT NOT NULL,
		clock_in     TEXT NOT NULL DEFAULT '',
		break_start  TEXT NOT NULL DEFAULT '',
		break_end    TEXT NOT NULL DEFAULT '',
		clock_out    TEXT NOT NULL DEFAULT '',
		worked_hours REAL NOT NULL CHECK(worked_hours >= 0),
		outcome      TEXT NOT NULL,
		reason       TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT '',
		synthetic    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS summary_statistics (
		run_id    TEXT NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
		statistic TEXT NOT NULL,
		value     TEXT NOT NULL,
		PRIMARY KEY (run_id, statistic)
	)`,

	`CREATE TABLE IF NOT EXISTS period_totals (
		run_id      TEXT NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
		granularity TEXT NOT NULL CHECK(granularity IN ('week','month')),
		period      TEXT NOT NULL,
		total_hours REAL NOT NULL,
		records     INTEGER NOT NULL,
		PRIMARY KEY (run_id, granularity, period)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_day_records_date ON day_records(date)`,
}
