package tabular

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/alexanderramin/timecard/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallbackMonth = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestReader() *Reader {
	return NewReader(DefaultResolver(), extract.NewExtractor(), fallbackMonth)
}

func TestReadCSV_NamedColumns(t *testing.T) {
	in := `Data,Entrada,Início Intervalo,Fim Intervalo,Saída
05/05/2025,08:08,09:15,15:02,18:52
14/05/2025,Feriado,,,
2025-06-02,08:16:00,09:06:00,14:40:00,18:00:00
`
	records, err := newTestReader().ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.RawRecord{
		Date: "05/05/2025", ClockIn: "08:08", BreakStart: "09:15", BreakEnd: "15:02", ClockOut: "18:52",
	}, records[0])
	assert.True(t, records[1].NonWorking)
	assert.Empty(t, records[1].ClockIn)
	assert.Equal(t, "02/06/2025", records[2].Date)
	assert.Equal(t, "08:16", records[2].ClockIn)
	assert.Equal(t, "18:00", records[2].ClockOut)
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	in := "\ufeffData;Entrada;Início Intervalo;Fim Intervalo;Saída\n05/05/2025;08:00;12:00;13:00;17:00\n"

	records, err := newTestReader().ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.RawRecord{
		Date: "05/05/2025", ClockIn: "08:00", BreakStart: "12:00", BreakEnd: "13:00", ClockOut: "17:00",
	}, records[0])
}

func TestReadCSV_SemicolonDelimiter(t *testing.T) {
	in := "date;clock_in;clock_out\n01/03/2025;08:00;16:00\n"

	records, err := newTestReader().ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "08:00", records[0].ClockIn)
	assert.Equal(t, "16:00", records[0].ClockOut)
	assert.Empty(t, records[0].BreakStart)
}

func TestReadCSV_FixedLayoutWithoutHeader(t *testing.T) {
	in := "08:00,12:00,13:00,17:00\n\n09:00,12:00,13:00,18:00\n"

	records, err := newTestReader().ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "01/01/2025", records[0].Date)
	assert.Equal(t, "02/01/2025", records[1].Date, "blank rows do not consume a day")
	assert.True(t, records[0].Synthetic)
	assert.Equal(t, "08:00", records[0].ClockIn)
	assert.Equal(t, "12:00", records[0].BreakStart)
	assert.Equal(t, "13:00", records[0].BreakEnd)
	assert.Equal(t, "17:00", records[0].ClockOut)
}

func TestReadCSV_FixedLayoutWithUnknownHeader(t *testing.T) {
	in := "E1,S1,E2,S2\n08:00,12:00,13:00,17:00\n"

	records, err := newTestReader().ReadCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Synthetic)
	assert.Equal(t, "17:00", records[0].ClockOut)
}

func TestReadCSV_SyntheticDatesSpillIntoNextMonth(t *testing.T) {
	rows := make([][]string, 0, 33)
	for i := 0; i < 33; i++ {
		rows = append(rows, []string{"08:00", "", "", "16:00"})
	}

	records := newTestReader().Rows(rows)

	require.Len(t, records, 33)
	assert.Equal(t, "31/01/2025", records[30].Date)
	assert.Equal(t, "02/02/2025", records[32].Date)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := newTestReader().ReadCSV(strings.NewReader("date,clock_in\n\"01/01/2025,08:00\n"))
	assert.Error(t, err)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, newTestReader().Rows(nil))
	assert.Empty(t, newTestReader().Rows([][]string{{"Data", "Entrada", "Saída"}}))
}

func TestNewReader_NilResolverUsesDefaults(t *testing.T) {
	r := NewReader(nil, nil, fallbackMonth)

	records := r.Rows([][]string{{"Data", "Entrada", "Saída"}, {"01/02/2025", "Feriado", ""}})

	require.Len(t, records, 1)
	assert.False(t, records[0].NonWorking, "no marker set configured")
	assert.Equal(t, "Feriado", records[0].ClockIn)
}
