package analytics

import (
	"sort"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

// MergeProducts combines the two per-product datasets (monetary amounts
// and unit quantities) into one record per product code. The
// accumulator map is the only intentionally mutable state in the
// pipeline and is scoped to this call.
//
// Records with a blank or missing code are ignored. Month totals are
// computed from the month vectors after both inputs are consumed, so
// the result is independent of argument processing order. Duplicate
// codes within a single dataset resolve last-write-wins per field; the
// source behavior is ambiguous there and this matches what it observably
// does.
func MergeProducts(amounts, quantities []ingest.Record) map[string]*domain.ProductMonthly {
	merged := make(map[string]*domain.ProductMonthly)

	for _, rec := range amounts {
		p := productFor(merged, rec)
		if p == nil {
			continue
		}
		applyMonths(rec, &p.AmountByMonth)
	}
	for _, rec := range quantities {
		p := productFor(merged, rec)
		if p == nil {
			continue
		}
		applyMonths(rec, &p.UnitsByMonth)
	}

	for _, p := range merged {
		p.AmountTotal = sumMonths(p.AmountByMonth)
		p.UnitsTotal = sumMonths(p.UnitsByMonth)
	}
	return merged
}

// productFor returns the accumulator entry for the record's code,
// creating it on first encounter. The description is taken from
// whichever dataset supplies it first and never clobbered afterwards.
func productFor(merged map[string]*domain.ProductMonthly, rec ingest.Record) *domain.ProductMonthly {
	code, ok := rec.Text(ingest.FieldCodi)
	if !ok || code == "" {
		return nil
	}
	p, exists := merged[code]
	if !exists {
		p = &domain.ProductMonthly{Code: code}
		merged[code] = p
	}
	if p.Description == "" {
		if desc, ok := rec.Text(ingest.FieldDescripcio); ok {
			p.Description = desc
		}
	}
	return p
}

// applyMonths writes the record's present month fields into the vector.
// Absent months keep their current value (zero by default), so the two
// datasets never clobber each other and repeated codes overwrite only
// the fields they actually carry.
func applyMonths(rec ingest.Record, vec *[domain.MonthsPerYear]float64) {
	for i, name := range ingest.MonthFields {
		if v, ok := rec.Number(name); ok {
			vec[i] = v
		}
	}
}

func sumMonths(vec [domain.MonthsPerYear]float64) float64 {
	var total float64
	for _, v := range vec {
		total += v
	}
	return total
}

// RankProducts flattens a merged set into a slice sorted descending by
// monetary total. Sorting is a presentation post-step, not part of the
// merge invariant; ties order by product code so the output is
// deterministic regardless of map iteration order.
func RankProducts(merged map[string]*domain.ProductMonthly) []domain.ProductMonthly {
	out := make([]domain.ProductMonthly, 0, len(merged))
	for _, p := range merged {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AmountTotal != out[j].AmountTotal {
			return out[i].AmountTotal > out[j].AmountTotal
		}
		return out[i].Code < out[j].Code
	})
	return out
}
