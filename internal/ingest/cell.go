package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind tags the primitive type of a spreadsheet cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellNumber
	CellText
	CellBool
)

// Cell is a tagged variant over the primitive values a spreadsheet
// decoder can produce. Exactly one of Number, Text or Bool is
// meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Bool   bool
}

// Row is one physical spreadsheet row. Rows may be ragged.
type Row []Cell

// RawGrid is the decoded 2-D grid of one uploaded workbook sheet. It is
// produced once per file and discarded after mapping.
type RawGrid []Row

// Blank is the zero-valued blank cell.
var Blank = Cell{Kind: CellBlank}

// NumberCell builds a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell builds a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// String returns the cell's text content, or "" for non-text cells.
func (c Cell) String() string {
	if c.Kind == CellText {
		return c.Text
	}
	return ""
}

// IsBlank reports whether the cell carries no usable value: it is a
// blank cell or a text cell holding only a sentinel placeholder.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellBlank:
		return true
	case CellText:
		return IsSentinel(c.Text)
	}
	return false
}

// sentinel placeholders the source exports use to mean "no data",
// distinct from an actual zero.
var sentinels = map[string]struct{}{
	"": {}, "-": {}, "--": {}, "+": {},
}

// IsSentinel reports whether the trimmed string is one of the
// placeholder values ("", "-", "--", "+").
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.TrimSpace(s)]
	return ok
}

// serialEpoch is the spreadsheet date epoch (1899-12-30): day offsets in
// date cells count from here.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DateFromSerial converts a spreadsheet day-offset serial into a UTC
// calendar date. Fractional parts (time of day) are discarded.
func DateFromSerial(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// TimeOfDay converts a spreadsheet fraction-of-day value into an
// HH:MM:SS clock string, rounding to the nearest second. Values outside
// [0,1) wrap around the day.
func TimeOfDay(fraction float64) string {
	secs := int(math.Round(fraction * 86400))
	secs = ((secs % 86400) + 86400) % 86400
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// HourOf extracts the integer hour 0-23 from an HH:MM:SS clock string.
func HourOf(clock string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) == 0 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// ParseNumber coerces a cell into a float64. Text cells tolerate
// surrounding whitespace and thousands separators. Sentinel and
// non-parseable values report ok=false rather than zero so that
// "column missing" stays distinguishable from "value is zero".
func ParseNumber(c Cell) (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	case CellText:
		s := strings.TrimSpace(c.Text)
		if IsSentinel(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// dateLayout is the textual date format the exports use.
const dateLayout = "02/01/2006"

// ParseDate coerces a date cell. Numeric cells are treated as serial
// day offsets; text cells try DD/MM/YYYY and otherwise pass through
// unchanged as an opaque key for downstream consumers.
func ParseDate(c Cell) (t time.Time, opaque string, ok bool) {
	switch c.Kind {
	case CellNumber:
		return DateFromSerial(c.Number), "", true
	case CellText:
		s := strings.TrimSpace(c.Text)
		if IsSentinel(s) {
			return time.Time{}, "", false
		}
		if parsed, err := time.Parse(dateLayout, s); err == nil {
			return parsed, "", true
		}
		return time.Time{}, s, true
	}
	return time.Time{}, "", false
}

// ParseClock coerces a time cell. Numeric cells are fraction-of-day
// values; non-placeholder text passes through unchanged.
func ParseClock(c Cell) (string, bool) {
	switch c.Kind {
	case CellNumber:
		return TimeOfDay(c.Number), true
	case CellText:
		s := strings.TrimSpace(c.Text)
		if IsSentinel(s) {
			return "", false
		}
		return s, true
	}
	return "", false
}
