package report

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/hours"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	raw := []domain.RawRecord{
		{Date: "06/05/2025", ClockIn: "08:00", BreakStart: "12:00", BreakEnd: "13:00", ClockOut: "17:00", Source: "a.txt"},
		{Date: "05/05/2025", ClockIn: "08:00", ClockOut: "16:30", Source: "a.txt"},
		{Date: "14/05/2025", NonWorking: true, Source: "a.txt"},
		{Date: "31/02/2025", ClockIn: "08:00", ClockOut: "12:00", Source: "b.txt"},
		{Date: "02/06/2025", ClockIn: "09:00", BreakStart: "12:00", BreakEnd: "13:00", ClockOut: "18:00", Source: "b.txt"},
	}
	computed := hours.NewCalculator(domain.PolicySegments).Apply(raw)
	r := New(aggregate.Aggregate(computed), domain.PolicySegments)
	r.Files = []FileSummary{
		{Name: "a.txt", Kind: domain.SourceText, Records: 3, Total: 16.5},
		{Name: "b.txt", Kind: domain.SourceText, Records: 2, Total: 12},
	}
	return r
}

func TestNew_AssignsRunID(t *testing.T) {
	a := New(aggregate.Summary{}, domain.PolicySegments)
	b := New(aggregate.Summary{}, domain.PolicySegments)

	assert.Len(t, a.RunID, 36)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.False(t, a.GeneratedAt.IsZero())
}

func TestDetails_ChronologicalWithContractColumns(t *testing.T) {
	d := sampleReport(t).Details()

	assert.Equal(t, []string{"date", "clock_in", "break_start", "break_end", "clock_out", "worked_hours"}, d.Columns)
	require.Len(t, d.Rows, 4, "the record with an impossible date is excluded")
	assert.Equal(t, []string{"05/05/2025", "08:00", "", "", "16:30", "8.50"}, d.Rows[0])
	assert.Equal(t, []string{"06/05/2025", "08:00", "12:00", "13:00", "17:00", "8.00"}, d.Rows[1])
	assert.Equal(t, []string{"14/05/2025", "", "", "", "", "0.00"}, d.Rows[2])
	assert.Equal(t, "02/06/2025", d.Rows[3][0])
}

func TestOverall_Statistics(t *testing.T) {
	r := sampleReport(t)
	o := r.Overall()

	values := map[string]string{}
	for _, row := range o.Rows {
		values[row[0]] = row[1]
	}
	assert.Equal(t, "24.50", values[StatTotalHours])
	assert.Equal(t, "8.00", values[StatMode])
	assert.Equal(t, "4", values[StatRecords])
	assert.Equal(t, "3", values[StatDaysWorked])
	assert.Equal(t, "1", values[StatSkipped])
	assert.Equal(t, "05/05/2025 - 02/06/2025", values[StatPeriod])
	assert.InDelta(t, 6.125, r.Summary.Daily.Mean, 1e-9)
	assert.Len(t, o.Rows, 12)
}

func TestWeeklyAndMonthlyTables(t *testing.T) {
	r := sampleReport(t)

	assert.Equal(t, Table{
		Name:    "weekly",
		Columns: []string{"week", "total_hours"},
		Rows:    [][]string{{"2025-W19", "16.50"}, {"2025-W20", "0.00"}, {"2025-W23", "8.00"}},
	}, r.Weekly())
	assert.Equal(t, [][]string{{"2025-05", "16.50"}, {"2025-06", "8.00"}}, r.Monthly().Rows)
	assert.Len(t, r.Tables(), 4)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteCSV(sampleReport(t), dir)

	require.NoError(t, err)
	require.Len(t, paths, 4)
	f, err := os.Open(filepath.Join(dir, "details.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, DetailColumns, rows[0])
	assert.Equal(t, "8.50", rows[1][5])

	_, err = os.Stat(filepath.Join(dir, "monthly.csv"))
	assert.NoError(t, err)
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(r, &buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, r.RunID, doc["run_id"])
	assert.Equal(t, "segments", doc["break_policy"])
	assert.Equal(t, float64(1), doc["skipped_records"])
	records := doc["records"].([]any)
	require.Len(t, records, 4)
	first := records[0].(map[string]any)
	assert.Equal(t, "05/05/2025", first["date"])
	assert.Equal(t, 8.5, first["worked_hours"])
	assert.Equal(t, "worked", first["outcome"])
	holiday := records[2].(map[string]any)
	assert.Equal(t, "non_working", holiday["outcome"])
	daily := doc["daily"].(map[string]any)
	assert.Equal(t, 24.5, daily["total_hours"])
	assert.Len(t, doc["weekly"], 3)
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hours.db")
	r := sampleReport(t)

	require.NoError(t, WriteSQLite(context.Background(), r, path))
	require.NoError(t, WriteSQLite(context.Background(), New(r.Summary, domain.PolicyDeductBreak), path))

	database, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer database.Close()

	var runs int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM report_runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var n int
	var total float64
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*), SUM(worked_hours) FROM day_records WHERE run_id = ?`, r.RunID).Scan(&n, &total))
	assert.Equal(t, 4, n)
	assert.InDelta(t, 24.5, total, 1e-9)

	var value string
	require.NoError(t, database.QueryRow(
		`SELECT value FROM summary_statistics WHERE run_id = ? AND statistic = ?`, r.RunID, StatDaysWorked).Scan(&value))
	assert.Equal(t, "3", value)

	var weeks int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM period_totals WHERE run_id = ? AND granularity = 'week'`, r.RunID).Scan(&weeks))
	assert.Equal(t, 3, weeks)
}

func TestExport_JSONFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "report.json")

	paths, err := Export(context.Background(), sampleReport(t), FormatJSON, out)

	require.NoError(t, err)
	assert.Equal(t, []string{out}, paths)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestSaveRun_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailingUoW{DB: database, Match: "period_totals", Err: errors.New("disk full")}

	err := SaveRun(context.Background(), uow, sampleReport(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1+4+12+1, uow.Execs(), "fails on the first period total after every other row")
	var runs, days int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM report_runs`).Scan(&runs))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM day_records`).Scan(&days))
	assert.Zero(t, runs)
	assert.Zero(t, days)
}

func TestSaveRun_FailsOnNthWrite(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailingUoW{DB: database, FailOn: 3, Err: errors.New("disk full")}

	err := SaveRun(context.Background(), uow, sampleReport(t))

	require.ErrorContains(t, err, "inserting record 1")
	var runs int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM report_runs`).Scan(&runs))
	assert.Zero(t, runs)
}

func TestSaveRun_InMemory(t *testing.T) {
	database := testutil.NewTestDB(t)
	r := sampleReport(t)

	require.NoError(t, SaveRun(context.Background(), testutil.NewTestUoW(database), r))

	var policy string
	var skipped int
	require.NoError(t, database.QueryRow(
		`SELECT break_policy, skipped_records FROM report_runs WHERE id = ?`, r.RunID).Scan(&policy, &skipped))
	assert.Equal(t, "segments", policy)
	assert.Equal(t, 1, skipped)
}
