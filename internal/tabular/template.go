package tabular

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
)

// TemplateHeader is the header of the hand-typed entry sheet. Every name
// resolves through DefaultAliases.
var TemplateHeader = []string{"Data", "Entrada", "Início Intervalo", "Fim Intervalo", "Saída"}

// WriteTemplate writes a semicolon-separated entry sheet. When month is
// non-zero, one row per calendar day is added with only the date filled in.
func WriteTemplate(w io.Writer, month time.Time) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(TemplateHeader); err != nil {
		return err
	}
	if !month.IsZero() {
		first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
			if err := cw.Write([]string{d.Format(domain.DateLayout), "", "", "", ""}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
