package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/report"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Rebuild the report whenever a file in DIR changes",
		Args:  cobra.ExactArgs(1),
	}
	flags := app.newPipelineFlags(cmd)
	cmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification with the new total")
	debounce := cmd.Flags().Duration("debounce", service.DefaultDebounce, "quiet period after a change before rebuilding")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		dir := args[0]
		w := cmd.OutOrStdout()
		var notifier service.Notifier = service.NoopNotifier{}
		if notify {
			notifier = app.notifier()
		}

		watcher := service.NewWatchService(app.reportService(cmd, flags), *debounce, app.observer(cmd))
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir)))
		return watcher.Watch(ctx, dir, func(rep *report.Report) {
			fmt.Fprint(w, formatter.FormatReport(rep, formatter.ReportOptions{}))
			title := "Timecard: " + report.Hours(rep.Summary.Daily.Total) + " h"
			body := fmt.Sprintf("%d days worked, %d records", rep.Summary.Daily.Positive, len(rep.Summary.Records))
			if err := notifier.Notify(title, body); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warn("notification failed: "+err.Error()))
			}
		})
	}
	return cmd
}
