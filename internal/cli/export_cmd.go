package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/report"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export [FILE...]",
		Short: "Write the report tables as CSV, JSON or SQLite",
		Long: "csv writes details.csv, summary.csv, weekly.csv and monthly.csv into the --out directory.\n" +
			"json writes one document to --out. sqlite appends the run to the database at --out.",
		Example: "  timecard export maio.txt --format csv --out relatorio/\n  timecard export *.jpg --format sqlite --out horas.db",
	}
	flags := app.newPipelineFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatCSV), "csv, json or sqlite")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (csv) or file (json, sqlite)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := report.ParseFormat(format)
		if err != nil {
			return err
		}
		if out == "" {
			return errors.New("--out is required")
		}
		sources, err := app.collectSources(args)
		if err != nil {
			return err
		}
		rep, err := app.reportService(cmd, flags).BuildReport(cmd.Context(), sources)
		if err != nil {
			return err
		}
		paths, err := report.Export(cmd.Context(), rep, f, out)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", f, err)
		}

		w := cmd.OutOrStdout()
		for _, p := range paths {
			fmt.Fprintf(w, "%s %s\n", formatter.StyleGreen.Render("✔"), p)
		}
		fmt.Fprintf(w, "%s records, %s hours, run %s\n",
			formatter.Bold(fmt.Sprint(len(rep.Summary.Records))),
			formatter.Bold(report.Hours(rep.Summary.Daily.Total)),
			formatter.Dim(rep.RunID))
		for _, warning := range rep.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warn(warning))
		}
		return nil
	}
	return cmd
}
