package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/report"
	"github.com/alexanderramin/timecard/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "history DB [RUN_ID]",
		Short: "List runs stored by export --format sqlite",
		Long:  "With a RUN_ID, shows that run's weekly and monthly totals. RUN_ID may be a prefix.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			database, err := db.OpenDB(args[0])
			if err != nil {
				return err
			}
			defer database.Close()
			runs := repository.NewSQLiteRunRepo(database)
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			list, err := runs.List(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if remove {
					return fmt.Errorf("--delete needs a RUN_ID")
				}
				if len(list) == 0 {
					fmt.Fprintln(w, formatter.Dim("No runs stored."))
					return nil
				}
				fmt.Fprint(w, formatRuns(list))
				return nil
			}

			id, err := resolveRunID(list, args[1])
			if err != nil {
				return err
			}
			if remove {
				if err := runs.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(w, "%s deleted run %s\n", formatter.StyleGreen.Render("✔"), id)
				return nil
			}

			run, err := runs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, formatter.Header("Run"))
			fmt.Fprintln(w, formatter.KeyValues([][2]string{
				{"ID", run.ID},
				{"Generated", run.GeneratedAt.Format("02/01/2006 15:04")},
				{"Period", run.FirstDate + " - " + run.LastDate},
				{"Total", report.Hours(run.TotalHours) + " h"},
				{"Days worked", fmt.Sprintf("%d of %d", run.DaysWorked, run.Records)},
				{"Break policy", string(run.Policy)},
			}))
			for _, g := range []repository.Granularity{repository.Weekly, repository.Monthly} {
				totals, err := runs.Totals(ctx, id, g)
				if err != nil {
					return err
				}
				fmt.Fprintln(w)
				fmt.Fprint(w, formatTotals(string(g), totals))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the given run")
	return cmd
}

// resolveRunID finds the single run whose ID starts with prefix.
func resolveRunID(runs []repository.Run, prefix string) (string, error) {
	var match string
	for _, r := range runs {
		if len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("run prefix %q is ambiguous", prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("run %q: %w", prefix, repository.ErrNotFound)
	}
	return match, nil
}

func formatRuns(runs []repository.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			formatter.Dim(r.ID[:8]),
			r.GeneratedAt.Format("02/01/2006 15:04"),
			string(r.Policy),
			r.FirstDate + " - " + r.LastDate,
			strconv.Itoa(r.Records),
			report.Hours(r.TotalHours),
		})
	}
	return formatter.RenderAlignedTable(
		[]string{"Run", "Generated", "Policy", "Period", "Records", "Hours"},
		rows,
		[]formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight},
	)
}

func formatTotals(label string, totals []repository.PeriodTotal) string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.Period, strconv.Itoa(t.Records), report.Hours(t.TotalHours)})
	}
	return formatter.RenderAlignedTable(
		[]string{label, "Records", "Hours"},
		rows,
		[]formatter.Align{formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight},
	)
}
