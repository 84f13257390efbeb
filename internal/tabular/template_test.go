package tabular

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateHeader_ResolvesEveryField(t *testing.T) {
	cols := DefaultResolver().Resolve(TemplateHeader)
	for i, f := range Fields {
		assert.Equal(t, i, cols[f], "field %s", f)
	}
}

func TestWriteTemplate_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, time.Time{}))
	assert.Equal(t, "Data;Entrada;Início Intervalo;Fim Intervalo;Saída\n", buf.String())
}

func TestWriteTemplate_MonthRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 29)
	assert.Equal(t, "01/02/2025;;;;", lines[1])
	assert.Equal(t, "28/02/2025;;;;", lines[28])
}

func TestWriteTemplate_RoundTripsThroughReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)))
	filled := strings.Replace(buf.String(), "05/05/2025;;;;", "05/05/2025;08:00;12:00;13:00;17:00", 1)

	r := NewReader(nil, extract.NewExtractor(), time.Time{})
	recs, err := r.ReadCSV(strings.NewReader(filled))

	require.NoError(t, err)
	require.Len(t, recs, 31)
	assert.Equal(t, "05/05/2025", recs[4].Date)
	assert.Equal(t, "08:00", recs[4].ClockIn)
	assert.Equal(t, "17:00", recs[4].ClockOut)
	assert.Empty(t, recs[0].ClockIn)
}
