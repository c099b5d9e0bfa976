package ingest

import (
	"strings"
	"time"
)

// storedDateLayout is how date values are serialized for the
// persistence store.
const storedDateLayout = "2006-01-02"

// ToStored flattens a record into the plain key→value shape the
// persistence store expects: dates as ISO strings (or their opaque
// source text when they never parsed), clocks as HH:MM:SS strings,
// numbers and text as-is. Absent fields stay absent.
func ToStored(rec Record) map[string]interface{} {
	out := make(map[string]interface{}, len(rec))
	for name, v := range rec {
		switch v.Kind {
		case ValueNumber:
			out[name] = v.Number
		case ValueDate:
			if v.Date.IsZero() {
				out[name] = v.Text
			} else {
				out[name] = v.Date.Format(storedDateLayout)
			}
		default:
			out[name] = v.Text
		}
	}
	return out
}

// FromStored rebuilds a typed record from a persisted row using the
// layout's field kinds. Values that do not fit their declared kind are
// left absent, mirroring the mapper's behavior on source cells.
func FromStored(row map[string]interface{}, spec HeaderSpec) Record {
	rec := make(Record, len(row))
	for _, f := range spec.Fields {
		raw, ok := row[f.Name]
		if !ok || raw == nil {
			continue
		}
		switch f.Kind {
		case FieldNumber:
			if v, ok := raw.(float64); ok {
				rec[f.Name] = Value{Kind: ValueNumber, Number: v}
			}
		case FieldDate:
			s, ok := raw.(string)
			if !ok {
				continue
			}
			if t, err := time.Parse(storedDateLayout, s); err == nil {
				rec[f.Name] = Value{Kind: ValueDate, Date: t}
			} else if s != "" {
				rec[f.Name] = Value{Kind: ValueDate, Text: s}
			}
		case FieldTime:
			if s, ok := raw.(string); ok && s != "" {
				rec[f.Name] = Value{Kind: ValueClock, Text: s}
			}
		case FieldText:
			if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
				rec[f.Name] = Value{Kind: ValueText, Text: s}
			}
		}
	}
	return rec
}
