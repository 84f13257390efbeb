// Package tabular reads punch-card tables (CSV) into RawRecords.
package tabular

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a canonical record column.
type Field string

const (
	FieldDate       Field = "date"
	FieldClockIn    Field = "clock_in"
	FieldBreakStart Field = "break_start"
	FieldBreakEnd   Field = "break_end"
	FieldClockOut   Field = "clock_out"
)

// Fields lists the canonical columns in export order.
var Fields = []Field{FieldDate, FieldClockIn, FieldBreakStart, FieldBreakEnd, FieldClockOut}

// DefaultAliases maps each field to accepted header names in priority
// order. Matching ignores case, accents and separators.
var DefaultAliases = map[Field][]string{
	FieldDate:       {"date", "data", "dia", "day"},
	FieldClockIn:    {"clock in", "entrada", "entrada 1", "in", "start", "check in"},
	FieldBreakStart: {"break start", "inicio intervalo", "saida 1", "saida almoco", "lunch start"},
	FieldBreakEnd:   {"break end", "fim intervalo", "entrada 2", "retorno almoco", "lunch end"},
	FieldClockOut:   {"clock out", "saida", "saida 2", "out", "end", "check out"},
}

// Columns maps resolved fields to zero-based column indexes.
type Columns map[Field]int

// Has reports whether f was resolved.
func (c Columns) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// ColumnResolver finds canonical fields among table headers.
type ColumnResolver struct {
	aliases map[Field][]string
}

// NewColumnResolver builds a resolver from aliases. Fields missing from
// aliases are never resolved.
func NewColumnResolver(aliases map[Field][]string) *ColumnResolver {
	normalized := make(map[Field][]string, len(aliases))
	for f, names := range aliases {
		for _, n := range names {
			normalized[f] = append(normalized[f], NormalizeHeader(n))
		}
	}
	return &ColumnResolver{aliases: normalized}
}

// DefaultResolver returns a resolver over DefaultAliases.
func DefaultResolver() *ColumnResolver {
	return NewColumnResolver(DefaultAliases)
}

// Resolve matches headers against each field's aliases, trying aliases in
// priority order. A column is assigned to at most one field; fields are
// resolved in Fields order.
func (r *ColumnResolver) Resolve(headers []string) Columns {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		n := NormalizeHeader(h)
		if _, dup := byName[n]; !dup {
			byName[n] = i
		}
	}

	cols := make(Columns)
	taken := make(map[int]bool)
	for _, f := range Fields {
		for _, alias := range r.aliases[f] {
			if i, ok := byName[alias]; ok && !taken[i] {
				cols[f] = i
				taken[i] = true
				break
			}
		}
	}
	return cols
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader lowercases s, strips accents and collapses separators
// ("Início_Intervalo" becomes "inicio intervalo").
func NormalizeHeader(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-' || r == '/' || r == '.'
	})
	return strings.Join(fields, " ")
}
