package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timecard/internal/aggregate"
	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/report"
)

// ReportOptions controls optional sections of FormatReport.
type ReportOptions struct {
	Chart      bool
	ChartWidth int
}

// FormatReport renders a run for the terminal: overview box, per-file
// totals, daily details, weekly and monthly totals, then warnings.
func FormatReport(rep *report.Report, opts ReportOptions) string {
	var b strings.Builder

	b.WriteString(RenderBox("Time report", formatOverview(rep)))
	b.WriteString("\n\n")

	if len(rep.Files) > 1 {
		b.WriteString(Header("Files"))
		b.WriteString("\n")
		b.WriteString(formatFiles(rep.Files))
		b.WriteString("\n")
	}

	b.WriteString(Header("Days"))
	b.WriteString("\n")
	if len(rep.Summary.Records) == 0 {
		b.WriteString(Dim("No records found."))
		b.WriteString("\n")
	} else {
		b.WriteString(formatDays(rep.Summary.Records))
	}
	b.WriteString("\n")

	if len(rep.Summary.Weekly) > 0 {
		b.WriteString(Header("Weeks"))
		b.WriteString("\n")
		b.WriteString(formatBuckets("Week", rep.Summary.Weekly))
		b.WriteString("\n")
		b.WriteString(Header("Months"))
		b.WriteString("\n")
		b.WriteString(formatBuckets("Month", rep.Summary.Monthly))
		b.WriteString("\n")
	}

	if opts.Chart && len(rep.Summary.Records) > 0 {
		b.WriteString(Header("Daily hours"))
		b.WriteString("\n")
		b.WriteString(FormatDailyChart(rep.Summary, opts.ChartWidth))
		b.WriteString("\n\n")
	}

	if len(rep.Warnings) > 0 {
		b.WriteString(Header("Warnings"))
		b.WriteString("\n")
		for _, w := range rep.Warnings {
			b.WriteString(Warn(w))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatOverview(rep *report.Report) string {
	s := rep.Summary
	period := Dim("--")
	if first, last, ok := s.Period(); ok {
		period = first.Format(domain.DateLayout) + " - " + last.Format(domain.DateLayout)
	}
	pairs := [][2]string{
		{"Period", period},
		{"Total", Bold(report.Hours(s.Daily.Total)+" h") + Dim(" ("+FormatHours(s.Daily.Total)+")")},
		{"Days worked", fmt.Sprintf("%d of %d", s.Daily.Positive, s.Daily.Count)},
		{"Daily mean", report.Hours(s.Daily.Mean) + " h"},
		{"Daily mode", report.Hours(s.Daily.Mode) + " h"},
		{"Std deviation", report.Hours(s.Daily.StdDev) + " h"},
		{"Weekly mean", report.Hours(s.WeeklyStats.Mean) + " h"},
		{"Monthly mean", report.Hours(s.MonthlyStats.Mean) + " h"},
		{"Break policy", string(rep.Policy)},
	}
	if n := len(s.Skipped); n > 0 {
		pairs = append(pairs, [2]string{"Skipped", StyleYellow.Render(strconv.Itoa(n) + " unparseable dates")})
	}
	return KeyValues(pairs)
}

func formatFiles(files []report.FileSummary) string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		status := StyleGreen.Render("ok")
		if f.Warning != "" {
			status = StyleYellow.Render("warning")
		}
		rows = append(rows, []string{
			f.Name,
			string(f.Kind),
			strconv.Itoa(f.Records),
			strconv.Itoa(f.Dropped),
			report.Hours(f.Total),
			status,
		})
	}
	return RenderAlignedTable(
		[]string{"File", "Kind", "Records", "Dropped", "Hours", "Status"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	)
}

func formatDays(records []domain.DatedRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		date := r.Day.Format(domain.DateLayout)
		if r.Synthetic {
			date += Dim("*")
		}
		rows = append(rows, []string{
			date,
			r.Day.Weekday().String()[:3],
			r.ClockIn,
			r.BreakStart,
			r.BreakEnd,
			r.ClockOut,
			report.Hours(r.WorkedHours),
			OutcomeLabel(r.Outcome),
		})
	}
	return RenderAlignedTable(
		[]string{"Date", "Day", "In", "Break", "Back", "Out", "Hours", "Outcome"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	)
}

func formatBuckets(label string, buckets []aggregate.Bucket) string {
	rows := make([][]string, 0, len(buckets))
	for _, bk := range buckets {
		rows = append(rows, []string{
			bk.Key,
			bk.Start.Format(domain.DateLayout),
			strconv.Itoa(bk.Records),
			report.Hours(bk.Total),
		})
	}
	return RenderAlignedTable(
		[]string{label, "Starts", "Records", "Hours"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignRight, AlignRight},
	)
}

// FormatDailyChart plots the daily series with the mean in the caption,
// followed by a bar per week.
func FormatDailyChart(s aggregate.Summary, width int) string {
	if width <= 0 {
		width = 60
	}
	values := make([]float64, len(s.Records))
	for i, r := range s.Records {
		values[i] = r.WorkedHours
	}
	caption := fmt.Sprintf("hours per day (mean %s h)", report.Hours(s.Daily.Mean))

	weeks := make([]float64, len(s.Weekly))
	labels := make([]string, len(s.Weekly))
	for i, bk := range s.Weekly {
		weeks[i] = bk.Total
		labels[i] = bk.Key
	}
	return RenderDailyChart(values, width, 8, caption) + "\n\n" + RenderBarChart(weeks, labels, width)
}
