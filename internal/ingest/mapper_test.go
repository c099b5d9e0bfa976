package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyGrid() RawGrid {
	return RawGrid{
		textRow("Resum de vendes"),
		textRow("Data", "Dia Setmana", "C.Ven", "Nom Botiga", "Import", "Tiquets", "Kgs", "Unit", "Mitja Tiq"),
		Row{NumberCell(45292), TextCell("dilluns"), TextCell("V01"), TextCell("Gràcia"),
			NumberCell(1250.5), NumberCell(82), NumberCell(34.2), NumberCell(120), NumberCell(15.25)},
		Row{TextCell("02/01/2024"), TextCell("dimarts"), TextCell("V01"), TextCell("Gràcia"),
			TextCell("1,100.0"), NumberCell(75), Blank, NumberCell(98), NumberCell(14.67)},
	}
}

func TestMapRowsWellFormedInput(t *testing.T) {
	spec := DailySalesSpec()
	grid := dailyGrid()

	h, err := Locate(grid, spec)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Row)

	records := MapRows(grid, h, spec)
	require.Len(t, records, 2)

	first := records[0]
	date, ok := first.Date(FieldData)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), date)

	amount, ok := first.Number(FieldImport)
	require.True(t, ok)
	assert.Equal(t, 1250.5, amount)

	weekday, ok := first.Text(FieldDiaSetmana)
	require.True(t, ok)
	assert.Equal(t, "dilluns", weekday)

	second := records[1]
	date, ok = second.Date(FieldData)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), date)

	amount, ok = second.Number(FieldImport)
	require.True(t, ok)
	assert.Equal(t, 1100.0, amount)

	// The blank kgs cell must be absent, not zero.
	_, ok = second.Number(FieldKgs)
	assert.False(t, ok)
}

func TestMapRowsDropsSentinelRows(t *testing.T) {
	spec := DailySalesSpec()
	grid := dailyGrid()
	grid = append(grid,
		Row{TextCell(""), TextCell("-"), TextCell("--")},
		textRow("-", "", "", "", "--", "+"),
		Row{},
	)

	h, err := Locate(grid, spec)
	require.NoError(t, err)

	records := MapRows(grid, h, spec)
	assert.Len(t, records, 2, "sentinel and empty rows must be dropped silently")
}

func TestMapRowsIdempotent(t *testing.T) {
	spec := DailySalesSpec()
	grid := dailyGrid()

	h, err := Locate(grid, spec)
	require.NoError(t, err)

	first := MapRows(grid, h, spec)
	second := MapRows(grid, h, spec)
	assert.Equal(t, first, second)
}

func TestMapRowsUnresolvedColumnStaysAbsent(t *testing.T) {
	spec := DailySalesSpec()
	grid := RawGrid{
		textRow("Data", "Nom Botiga", "Import", "Tiquets"),
		Row{NumberCell(45292), TextCell("Gràcia"), NumberCell(900), NumberCell(60)},
	}

	h, err := Locate(grid, spec)
	require.NoError(t, err)

	records := MapRows(grid, h, spec)
	require.Len(t, records, 1)

	_, ok := records[0].Number(FieldKgs)
	assert.False(t, ok, "kgs column is missing from the export and must stay absent")
	_, ok = records[0].Text(FieldCVen)
	assert.False(t, ok)
}

func TestMapRowsNumericProductCode(t *testing.T) {
	spec := ProductAmountSpec()
	grid := RawGrid{
		textRow("", "Article"),
		textRow("", "Codi", "Descripcio", "Gener", "Febrer", "Març", "Abril", "Maig", "Juny",
			"Juliol", "Agost", "Setembre", "Octubre", "Novembre", "Desembre", "Total"),
		Row{Blank, NumberCell(10245), TextCell("Croissant"), NumberCell(100), Blank, Blank, Blank,
			Blank, Blank, Blank, Blank, Blank, Blank, Blank, Blank, NumberCell(100)},
	}

	h, err := Locate(grid, spec)
	require.NoError(t, err)

	records := MapRows(grid, h, spec)
	require.Len(t, records, 1)

	code, ok := records[0].Text(FieldCodi)
	require.True(t, ok)
	assert.Equal(t, "10245", code)

	gener, ok := records[0].Number("gener")
	require.True(t, ok)
	assert.Equal(t, 100.0, gener)
}

func TestResolveColumnsFirstMatchWins(t *testing.T) {
	spec := HourlySalesSpec()
	h := Header{Row: 0, Labels: []string{"data", "hora", "total", "total acumulat"}}

	cols := ResolveColumns(h, spec)
	assert.Equal(t, 2, cols[FieldTotal])
}
