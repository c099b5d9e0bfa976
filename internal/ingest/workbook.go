package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned when the uploaded file contains no rows
// at all.
var ErrEmptyWorkbook = errors.New("workbook contains no rows")

// DecodeWorkbook reads an XLSX stream and returns the raw grid of the
// first sheet whose top rows locate a header for the given spec. The
// exports usually carry a single sheet, but some tools emit decorative
// cover sheets first, so every sheet is tried in order.
func DecodeWorkbook(r io.Reader, spec HeaderSpec) (RawGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sawRows := false
	var locateErr error

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil || len(rows) == 0 {
			continue
		}
		sawRows = true

		grid := gridFromStrings(rows)
		if _, err := Locate(grid, spec); err != nil {
			locateErr = err
			continue
		}
		return grid, nil
	}

	if !sawRows {
		return nil, ErrEmptyWorkbook
	}
	if locateErr != nil {
		return nil, locateErr
	}
	return nil, fmt.Errorf("%w (%s)", ErrHeaderNotFound, spec.Kind)
}

// gridFromStrings converts the decoder's string cells into the tagged
// cell representation. Raw numeric values (including date serials and
// fraction-of-day times) become number cells.
func gridFromStrings(rows [][]string) RawGrid {
	grid := make(RawGrid, len(rows))
	for i, row := range rows {
		cells := make(Row, len(row))
		for j, s := range row {
			cells[j] = cellFromString(s)
		}
		grid[i] = cells
	}
	return grid
}

func cellFromString(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Blank
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(v)
	}
	switch strings.ToUpper(trimmed) {
	case "TRUE":
		return Cell{Kind: CellBool, Bool: true}
	case "FALSE":
		return Cell{Kind: CellBool, Bool: false}
	}
	return TextCell(s)
}
