package ingest

import (
	"fmt"
	"strings"

	"vendescli/pkg/contracts/domain"
)

// FieldKind selects the coercion applied to a mapped column.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDate
	FieldTime
)

// Field is one canonical column of an export layout. Signal fields
// participate in the blank-row rejection test: a row whose signal
// columns are all blank or sentinel placeholders is a decorative row
// and gets dropped.
type Field struct {
	Name   string
	Kind   FieldKind
	Signal bool
}

// HeaderSpec describes one import kind: the ordered canonical field
// names used both to locate the header row and to resolve column
// indices, plus the locator tuning for that layout.
type HeaderSpec struct {
	Kind domain.DatasetKind

	Fields []Field

	// PairedRows enables two-row header detection for exports that
	// split a logical header across adjacent physical rows.
	PairedRows bool

	// MinScore is the lowest acceptable keyword-match count. It is a
	// fraction of the field count, not all of it: exports are allowed
	// to omit columns.
	MinScore int

	// SearchWindow bounds how many rows from the top are scored.
	SearchWindow int

	// ColumnOffset skips left-edge padding columns some exports carry
	// before real data begins. Fixed per layout, never inferred.
	ColumnOffset int
}

// Header is the located header row: the index of its last physical row
// (data begins at Row+1) and the lowercased per-column labels used for
// column resolution.
type Header struct {
	Row    int
	Labels []string
}

// ErrHeaderNotFound is returned when no scanned row meets the spec's
// MinScore threshold.
var ErrHeaderNotFound = fmt.Errorf("header row not found")

// Locate scans at most spec.SearchWindow rows from the top of the grid
// and returns the best-scoring candidate header. Each canonical field
// name scores one point if any cell label in the candidate row contains
// it as a case-insensitive substring, or is contained by it (to
// tolerate truncated labels). Ties keep the topmost row.
func Locate(grid RawGrid, spec HeaderSpec) (Header, error) {
	if len(grid) == 0 {
		return Header{}, fmt.Errorf("%w: empty grid (%s)", ErrHeaderNotFound, spec.Kind)
	}

	window := spec.SearchWindow
	if window <= 0 {
		window = defaultSearchWindow
	}
	if window > len(grid) {
		window = len(grid)
	}

	bestRow := -1
	bestScore := 0
	var bestLabels []string

	for i := 0; i < window; i++ {
		var labels []string
		if spec.PairedRows {
			if i+1 >= len(grid) {
				break
			}
			labels = pairedLabels(grid[i], grid[i+1])
		} else {
			labels = rowLabels(grid[i])
		}

		score := scoreLabels(labels, spec)
		if score > bestScore {
			bestScore = score
			bestRow = i
			bestLabels = labels
		}
	}

	if bestRow < 0 || bestScore < spec.MinScore {
		return Header{}, fmt.Errorf("%w: best score %d below threshold %d (%s)",
			ErrHeaderNotFound, bestScore, spec.MinScore, spec.Kind)
	}

	headerRow := bestRow
	if spec.PairedRows {
		headerRow = bestRow + 1
	}
	return Header{Row: headerRow, Labels: bestLabels}, nil
}

const defaultSearchWindow = 10

// rowLabels lowercases the textual content of every cell in the row.
// Numeric cells yield empty labels: header detection only looks at text.
func rowLabels(row Row) []string {
	labels := make([]string, len(row))
	for j, c := range row {
		if c.Kind == CellText {
			labels[j] = strings.ToLower(strings.TrimSpace(c.Text))
		}
	}
	return labels
}

// pairedLabels joins the non-empty text of two adjacent rows column by
// column with a single space, e.g. "article" + "codi" -> "article codi".
func pairedLabels(top, bottom Row) []string {
	n := len(top)
	if len(bottom) > n {
		n = len(bottom)
	}
	labels := make([]string, n)
	for j := 0; j < n; j++ {
		var parts []string
		if j < len(top) && top[j].Kind == CellText {
			if s := strings.ToLower(strings.TrimSpace(top[j].Text)); s != "" {
				parts = append(parts, s)
			}
		}
		if j < len(bottom) && bottom[j].Kind == CellText {
			if s := strings.ToLower(strings.TrimSpace(bottom[j].Text)); s != "" {
				parts = append(parts, s)
			}
		}
		labels[j] = strings.Join(parts, " ")
	}
	return labels
}

// scoreLabels counts how many canonical field names match some label at
// or after the spec's column offset.
func scoreLabels(labels []string, spec HeaderSpec) int {
	score := 0
	for _, f := range spec.Fields {
		name := strings.ToLower(f.Name)
		for j := spec.ColumnOffset; j < len(labels); j++ {
			if labelMatches(labels[j], name) {
				score++
				break
			}
		}
	}
	return score
}

// labelMatches implements the bidirectional substring test: the header
// label contains the canonical name, or the label is itself a truncated
// fragment of the name. Both sides are normalized first because the
// exports write "Dia Setmana" or "C.Ven" where the canonical contract
// says dia_setmana and c_ven.
func labelMatches(label, name string) bool {
	label = normalizeLabel(label)
	name = normalizeLabel(name)
	if label == "" || name == "" {
		return false
	}
	return strings.Contains(label, name) || strings.Contains(name, label)
}

// normalizeLabel lowercases and strips separator characters so that
// spacing and punctuation differences between export labels and
// canonical field names do not break matching.
func normalizeLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '_', '.', '-', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
