package cli

import (
	"github.com/alexanderramin/timecard/internal/tabular"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	month := monthValue{}
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a CSV sheet for hand-typed punch cards",
		Long: "Prints the header accepted by report and export. With --month, one row per\n" +
			"calendar day is added. Type Feriado in the Entrada column for days off.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tabular.WriteTemplate(cmd.OutOrStdout(), month.t)
		},
	}
	cmd.Flags().Var(&month, "month", "month (YYYY-MM) to pre-fill with dates")
	return cmd
}
