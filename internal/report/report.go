// Package report assembles the exportable tables of a time-accounting run.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/google/uuid"
)

// Column names of the detail table. They are the compatibility contract of
// every export format.
const (
	ColDate        = "date"
	ColClockIn     = "clock_in"
	ColBreakStart  = "break_start"
	ColBreakEnd    = "break_end"
	ColClockOut    = "clock_out"
	ColWorkedHours = "worked_hours"
)

// DetailColumns lists the detail table columns in order.
var DetailColumns = []string{ColDate, ColClockIn, ColBreakStart, ColBreakEnd, ColClockOut, ColWorkedHours}

// Statistic names of the overall summary table.
const (
	StatTotalHours    = "total_hours"
	StatMean          = "mean"
	StatMode          = "mode"
	StatStdDev        = "standard_deviation"
	StatRecords       = "records"
	StatDaysWorked    = "days_worked"
	StatSkipped       = "skipped_records"
	StatPeriod        = "period"
	StatWeeklyMean    = "weekly_mean"
	StatWeeklyStdDev  = "weekly_standard_deviation"
	StatMonthlyMean   = "monthly_mean"
	StatMonthlyStdDev = "monthly_standard_deviation"
)

// FileSummary describes how one input file contributed to the run.
type FileSummary struct {
	Name    string
	Kind    domain.SourceKind
	Records int
	// Dropped counts dates found without a complete group of times.
	Dropped int
	Total   float64
	// Warning is set when the file produced no records or failed to load.
	Warning string
}

// Report is the full result of one run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Policy      domain.BreakPolicy
	Files       []FileSummary
	Summary     aggregate.Summary
	Warnings    []string
}

// New creates a Report with a fresh run ID.
func New(summary aggregate.Summary, policy domain.BreakPolicy) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Policy:      policy,
		Summary:     summary,
	}
}

// Table is a named grid of string cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Hours formats an hour value with two decimals.
func Hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Details returns one row per dated record in chronological order.
func (r *Report) Details() Table {
	t := Table{Name: "details", Columns: DetailColumns}
	for _, rec := range r.Summary.Records {
		t.Rows = append(t.Rows, []string{
			rec.Day.Format(domain.DateLayout),
			rec.ClockIn,
			rec.BreakStart,
			rec.BreakEnd,
			rec.ClockOut,
			Hours(rec.WorkedHours),
		})
	}
	return t
}

// Overall returns the overall statistics as statistic/value rows.
func (r *Report) Overall() Table {
	s := r.Summary
	period := ""
	if first, last, ok := s.Period(); ok {
		period = fmt.Sprintf("%s - %s", first.Format(domain.DateLayout), last.Format(domain.DateLayout))
	}
	return Table{
		Name:    "summary",
		Columns: []string{"statistic", "value"},
		Rows: [][]string{
			{StatTotalHours, Hours(s.Daily.Total)},
			{StatMean, Hours(s.Daily.Mean)},
			{StatMode, Hours(s.Daily.Mode)},
			{StatStdDev, Hours(s.Daily.StdDev)},
			{StatRecords, strconv.Itoa(s.Daily.Count)},
			{StatDaysWorked, strconv.Itoa(s.Daily.Positive)},
			{StatSkipped, strconv.Itoa(len(s.Skipped))},
			{StatPeriod, period},
			{StatWeeklyMean, Hours(s.WeeklyStats.Mean)},
			{StatWeeklyStdDev, Hours(s.WeeklyStats.StdDev)},
			{StatMonthlyMean, Hours(s.MonthlyStats.Mean)},
			{StatMonthlyStdDev, Hours(s.MonthlyStats.StdDev)},
		},
	}
}

// Weekly returns the weekly totals in chronological order.
func (r *Report) Weekly() Table {
	return bucketTable("weekly", "week", r.Summary.Weekly)
}

// Monthly returns the monthly totals in chronological order.
func (r *Report) Monthly() Table {
	return bucketTable("monthly", "month", r.Summary.Monthly)
}

// Tables returns the detail table followed by the three summary tables.
func (r *Report) Tables() []Table {
	return []Table{r.Details(), r.Overall(), r.Weekly(), r.Monthly()}
}

func bucketTable(name, keyCol string, buckets []aggregate.Bucket) Table {
	t := Table{Name: name, Columns: []string{keyCol, "total_hours"}}
	for _, b := range buckets {
		t.Rows = append(t.Rows, []string{b.Key, Hours(b.Total)})
	}
	return t
}
