package cli

import (
	"io"

	"github.com/alexanderramin/timecard/internal/config"
	"github.com/alexanderramin/timecard/internal/extract"
	"github.com/alexanderramin/timecard/internal/hours"
	"github.com/alexanderramin/timecard/internal/ocr"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/alexanderramin/timecard/internal/tabular"
	"github.com/spf13/cobra"
)

// App holds configuration and collaborators shared by CLI commands.
type App struct {
	Config config.Config

	// Recognizer overrides the OCR client built from Config.OCR.
	Recognizer ocr.Recognizer
	// Notifier is used by watch --notify. Nil means desktop notifications.
	Notifier service.Notifier

	Stdin io.Reader
	// StdinIsTerminal reports whether Stdin is an interactive terminal.
	// Nil means Stdin is treated as piped input.
	StdinIsTerminal func() bool

	verbose bool
}

// NewRootCmd creates the top-level "timecard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timecard",
		Short:         "Punch-card time accounting",
		Long:          "Turns punch-card transcripts, photos and hand-typed sheets into worked-hours reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", app.Config.Log, "log pipeline events to stderr")

	root.AddCommand(
		newReportCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
		newTemplateCmd(),
		newHistoryCmd(),
	)

	return root
}

// pipelineFlags are the options shared by commands that build reports.
type pipelineFlags struct {
	policy   policyValue
	fallback monthValue
}

func (app *App) newPipelineFlags(cmd *cobra.Command) *pipelineFlags {
	f := &pipelineFlags{
		policy:   policyValue{app.Config.BreakPolicy},
		fallback: monthValue{app.Config.FallbackMonth},
	}
	cmd.Flags().Var(&f.policy, "policy", "break policy: segments or deduct-break")
	cmd.Flags().Var(&f.fallback, "fallback-month", "month (YYYY-MM) assigned to tables without dates")
	return f
}

func (app *App) observer(cmd *cobra.Command) service.UseCaseObserver {
	if !app.verbose {
		return service.NoopUseCaseObserver{}
	}
	return service.NewLogUseCaseObserver(cmd.ErrOrStderr())
}

func (app *App) recognizer(cmd *cobra.Command) ocr.Recognizer {
	if app.Recognizer != nil {
		return app.Recognizer
	}
	if !app.Config.OCR.Enabled() {
		return nil
	}
	var observer ocr.Observer = ocr.NoopObserver{}
	if app.verbose || app.Config.OCR.LogCalls {
		observer = ocr.NewLogObserver(cmd.ErrOrStderr())
	}
	return ocr.NewSpaceClient(app.Config.OCR, observer)
}

func (app *App) reportService(cmd *cobra.Command, f *pipelineFlags) service.ReportService {
	ex := extract.NewExtractor(app.Config.Markers...)
	return service.NewReportService(
		ex,
		hours.NewCalculator(f.policy.p),
		tabular.NewReader(nil, ex, f.fallback.t),
		app.recognizer(cmd),
		app.observer(cmd),
	)
}

func (app *App) notifier() service.Notifier {
	if app.Notifier != nil {
		return app.Notifier
	}
	return service.DesktopNotifier{}
}

const defaultChartWidth = 60
