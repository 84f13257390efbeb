package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/hours"
	"github.com/alexanderramin/timecard/internal/report"
	"github.com/alexanderramin/timecard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRun(t *testing.T, repo *SQLiteRunRepo, generatedAt time.Time, policy domain.BreakPolicy, raw ...domain.RawRecord) *report.Report {
	t.Helper()
	computed := hours.NewCalculator(policy).Apply(raw)
	rep := report.New(aggregate.Aggregate(computed), policy)
	rep.GeneratedAt = generatedAt
	require.NoError(t, report.SaveRun(context.Background(), testutil.NewTestUoW(repo.db), rep))
	return rep
}

func runTestSetup(t *testing.T) *SQLiteRunRepo {
	t.Helper()
	return NewSQLiteRunRepo(testutil.NewTestDB(t))
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	repo := runTestSetup(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	older := seedRun(t, repo, base, domain.PolicySegments,
		testutil.NewRawRecord("05/05/2025", "08:00", "17:00"),
		testutil.NewRawRecord("06/05/2025", "", "", testutil.NonWorking()),
	)
	newer := seedRun(t, repo, base.Add(time.Hour), domain.PolicyDeductBreak,
		testutil.NewRawRecord("12/05/2025", "08:00", "17:00"),
	)

	runs, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.RunID, runs[0].ID)
	assert.Equal(t, domain.PolicyDeductBreak, runs[0].Policy)
	assert.InDelta(t, 7.0, runs[0].TotalHours, 1e-9)

	assert.Equal(t, older.RunID, runs[1].ID)
	assert.Equal(t, 2, runs[1].Records)
	assert.Equal(t, 1, runs[1].DaysWorked)
	assert.InDelta(t, 8.0, runs[1].TotalHours, 1e-9)
	assert.Equal(t, "05/05/2025", runs[1].FirstDate)
	assert.Equal(t, "06/05/2025", runs[1].LastDate)
	assert.True(t, runs[1].GeneratedAt.Equal(base))
}

func TestRunRepo_GetByID(t *testing.T) {
	repo := runTestSetup(t)
	rep := seedRun(t, repo, time.Now().UTC().Truncate(time.Second), domain.PolicySegments,
		testutil.NewRawRecord("31/02/2025", "08:00", "17:00"),
		testutil.NewRawRecord("05/05/2025", "08:00", "17:00"),
	)

	run, err := repo.GetByID(context.Background(), rep.RunID)

	require.NoError(t, err)
	assert.Equal(t, 1, run.Skipped)
	assert.Equal(t, 1, run.Records)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_GetByID_RunWithoutRecords(t *testing.T) {
	repo := runTestSetup(t)
	rep := seedRun(t, repo, time.Now().UTC().Truncate(time.Second), domain.PolicySegments)

	run, err := repo.GetByID(context.Background(), rep.RunID)

	require.NoError(t, err)
	assert.Zero(t, run.Records)
	assert.Zero(t, run.TotalHours)
	assert.Empty(t, run.FirstDate)
}

func TestRunRepo_Totals(t *testing.T) {
	repo := runTestSetup(t)
	rep := seedRun(t, repo, time.Now().UTC().Truncate(time.Second), domain.PolicySegments,
		testutil.NewRawRecord("05/05/2025", "08:00", "17:00"),
		testutil.NewRawRecord("12/05/2025", "08:00", "16:00"),
		testutil.NewRawRecord("02/06/2025", "08:00", "17:00"),
	)
	ctx := context.Background()

	weeks, err := repo.Totals(ctx, rep.RunID, Weekly)
	require.NoError(t, err)
	assert.Equal(t, []PeriodTotal{
		{Period: "2025-W19", TotalHours: 8, Records: 1},
		{Period: "2025-W20", TotalHours: 7, Records: 1},
		{Period: "2025-W23", TotalHours: 8, Records: 1},
	}, weeks)

	months, err := repo.Totals(ctx, rep.RunID, Monthly)
	require.NoError(t, err)
	assert.Equal(t, []PeriodTotal{
		{Period: "2025-05", TotalHours: 15, Records: 2},
		{Period: "2025-06", TotalHours: 8, Records: 1},
	}, months)
}

func TestRunRepo_Delete(t *testing.T) {
	repo := runTestSetup(t)
	ctx := context.Background()
	keep := seedRun(t, repo, time.Now().UTC().Truncate(time.Second), domain.PolicySegments,
		testutil.NewRawRecord("05/05/2025", "08:00", "17:00"))
	drop := seedRun(t, repo, time.Now().UTC().Truncate(time.Second), domain.PolicySegments,
		testutil.NewRawRecord("06/05/2025", "08:00", "17:00"))

	require.NoError(t, repo.Delete(ctx, drop.RunID))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, keep.RunID, runs[0].ID)

	var orphans int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM day_records WHERE run_id = ?`, drop.RunID).Scan(&orphans))
	assert.Zero(t, orphans)

	assert.ErrorIs(t, repo.Delete(ctx, drop.RunID), ErrNotFound)
}
