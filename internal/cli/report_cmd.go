package cli

import (
	"fmt"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		chart      bool
		chartWidth int
	)
	cmd := &cobra.Command{
		Use:   "report [FILE...]",
		Short: "Compute worked hours and print the report",
		Long: "Reads .txt transcripts, .png/.jpg/.jpeg punch-card photos (via OCR) and .csv sheets.\n" +
			"With no files, a transcript is read from piped stdin.",
		Example: "  timecard report maio.txt junho.jpg\n  cat maio.txt | timecard report --policy deduct-break",
	}
	flags := app.newPipelineFlags(cmd)
	cmd.Flags().BoolVar(&chart, "chart", false, "include a daily hours chart")
	cmd.Flags().IntVar(&chartWidth, "chart-width", defaultChartWidth, "chart width in columns")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sources, err := app.collectSources(args)
		if err != nil {
			return err
		}
		rep, err := app.reportService(cmd, flags).BuildReport(cmd.Context(), sources)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(rep, formatter.ReportOptions{
			Chart:      chart,
			ChartWidth: chartWidth,
		}))
		return nil
	}
	return cmd
}
