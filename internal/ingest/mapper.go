package ingest

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the coerced type of one record field.
type ValueKind int

const (
	ValueText ValueKind = iota
	ValueNumber
	ValueDate
	ValueClock
)

// Value is a coerced record field. For ValueDate either Date is set or,
// when the source text did not parse, Text carries the original string
// as an opaque key.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	Date   time.Time
}

// Record maps canonical field names to coerced values. Fields that were
// blank, sentinel or unparseable in the source row are absent from the
// map, never defaulted to zero; consumers that need a default coalesce
// explicitly at aggregation time.
type Record map[string]Value

// Number returns the named numeric field, coalescing absent to 0.
func (r Record) Number(name string) (float64, bool) {
	v, ok := r[name]
	if !ok || v.Kind != ValueNumber {
		return 0, false
	}
	return v.Number, true
}

// Text returns the named text field.
func (r Record) Text(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	switch v.Kind {
	case ValueText, ValueClock:
		return v.Text, true
	case ValueDate:
		if v.Date.IsZero() {
			return v.Text, v.Text != ""
		}
		return v.Date.Format("2006-01-02"), true
	}
	return "", false
}

// Date returns the named date field when it parsed to a calendar date.
func (r Record) Date(name string) (time.Time, bool) {
	v, ok := r[name]
	if !ok || v.Kind != ValueDate || v.Date.IsZero() {
		return time.Time{}, false
	}
	return v.Date, true
}

// ResolveColumns maps every canonical field to the first header label
// that matches it at or after the spec's column offset. Unresolved
// fields are absent from the result, which keeps "column missing"
// distinguishable from "value is zero" downstream.
func ResolveColumns(h Header, spec HeaderSpec) map[string]int {
	cols := make(map[string]int, len(spec.Fields))
	for _, f := range spec.Fields {
		name := strings.ToLower(f.Name)
		for j := spec.ColumnOffset; j < len(h.Labels); j++ {
			if labelMatches(h.Labels[j], name) {
				cols[f.Name] = j
				break
			}
		}
	}
	return cols
}

// MapRows validates and coerces the data rows below the located header
// into typed records. It is a pure function: re-running it on the same
// inputs yields identical output, and rejected rows are dropped without
// error. The grid is read, never mutated.
func MapRows(grid RawGrid, h Header, spec HeaderSpec) []Record {
	cols := ResolveColumns(h, spec)
	records := make([]Record, 0, len(grid))

	for i := h.Row + 1; i < len(grid); i++ {
		row := grid[i]
		if !rowHasSignal(row, cols, spec) {
			continue
		}
		rec := mapRow(row, cols, spec)
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// rowHasSignal reports whether at least one of the row's signal columns
// carries a real value. Trailing and decorative rows in the exports pad
// every signal column with blanks or sentinel placeholders.
func rowHasSignal(row Row, cols map[string]int, spec HeaderSpec) bool {
	checked := false
	for _, f := range spec.Fields {
		if !f.Signal {
			continue
		}
		j, ok := cols[f.Name]
		if !ok {
			continue
		}
		checked = true
		if j < len(row) && !row[j].IsBlank() {
			return true
		}
	}
	// A layout with no resolvable signal columns cannot reject rows.
	return !checked
}

func mapRow(row Row, cols map[string]int, spec HeaderSpec) Record {
	rec := make(Record, len(cols))
	for _, f := range spec.Fields {
		j, ok := cols[f.Name]
		if !ok || j >= len(row) {
			continue
		}
		c := row[j]
		if c.IsBlank() {
			continue
		}
		switch f.Kind {
		case FieldNumber:
			if v, ok := ParseNumber(c); ok {
				rec[f.Name] = Value{Kind: ValueNumber, Number: v}
			}
		case FieldDate:
			if t, opaque, ok := ParseDate(c); ok {
				rec[f.Name] = Value{Kind: ValueDate, Date: t, Text: opaque}
			}
		case FieldTime:
			if clock, ok := ParseClock(c); ok {
				rec[f.Name] = Value{Kind: ValueClock, Text: clock}
			}
		case FieldText:
			s := strings.TrimSpace(c.String())
			if c.Kind == CellNumber {
				// Product codes sometimes decode as numbers.
				s = trimFloatText(c.Number)
			}
			if s != "" && !IsSentinel(s) {
				rec[f.Name] = Value{Kind: ValueText, Text: s}
			}
		}
	}
	return rec
}

// trimFloatText renders a numeric cell as text without a spurious
// fractional part for integral values. Product codes sometimes decode
// as numbers and must round-trip as their plain digits.
func trimFloatText(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
