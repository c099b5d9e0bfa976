package analytics

import (
	"math"
	"sort"
	"time"

	"vendescli/pkg/contracts/domain"
)

// WeekdayStats groups daily totals by weekday and averages each weekday
// over the months that actually have data for it. A month with zero
// days for a given weekday does not count toward that weekday's
// denominator, so sparsely represented weekdays are not deflated.
func WeekdayStats(daily []domain.DailyAggregate) []domain.WeekdayStat {
	type bucket struct {
		total  float64
		months map[string]struct{}
		values []float64
	}
	buckets := make(map[time.Weekday]*bucket)

	for _, d := range daily {
		b, ok := buckets[d.Weekday]
		if !ok {
			b = &bucket{months: make(map[string]struct{})}
			buckets[d.Weekday] = b
		}
		b.total += d.Amount
		b.months[d.Date.Format("2006-01")] = struct{}{}
		if d.Amount != 0 {
			b.values = append(b.values, d.Amount)
		}
	}

	stats := make([]domain.WeekdayStat, 0, len(buckets))
	for wd, b := range buckets {
		stat := domain.WeekdayStat{
			Weekday:        wd,
			Total:          b.total,
			MonthsWithData: len(b.months),
			Observations:   len(b.values),
		}
		if stat.MonthsWithData > 0 {
			stat.Average = b.total / float64(stat.MonthsWithData)
		}
		if len(b.values) > 1 {
			stat.Variation = coefficientOfVariation(b.values)
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Weekday < stats[j].Weekday })
	return stats
}

// coefficientOfVariation is the population standard deviation divided
// by the mean. Callers guard against empty input and zero means.
func coefficientOfVariation(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(values))) / mean
}

// BestWorstDay ranks weekday stats by average and returns the top and
// bottom entries. Both are nil when there are no stats.
func BestWorstDay(stats []domain.WeekdayStat) (best, worst *domain.WeekdayStat) {
	for i := range stats {
		if best == nil || stats[i].Average > best.Average {
			b := stats[i]
			best = &b
		}
		if worst == nil || stats[i].Average < worst.Average {
			w := stats[i]
			worst = &w
		}
	}
	return best, worst
}

// MostConsistentDay returns the weekday with the lowest coefficient of
// variation among weekdays with more than one non-zero observation.
// With at most one observation variability cannot be computed, so such
// weekdays stay eligible for best/worst but not for this ranking.
func MostConsistentDay(stats []domain.WeekdayStat) *domain.WeekdayStat {
	var most *domain.WeekdayStat
	for i := range stats {
		if stats[i].Observations <= 1 {
			continue
		}
		if most == nil || stats[i].Variation < most.Variation {
			m := stats[i]
			most = &m
		}
	}
	return most
}

// MonthlyTotals sums daily amounts into "YYYY-MM" buckets.
func MonthlyTotals(daily []domain.DailyAggregate) map[string]float64 {
	totals := make(map[string]float64)
	for _, d := range daily {
		totals[d.Date.Format("2006-01")] += d.Amount
	}
	return totals
}

// Growth computes the month-over-month growth percentage between the
// first and last month with data. It is only defined when at least two
// distinct months have data (computed=false otherwise) and guards the
// division: a zero first month yields 0, not infinity.
func Growth(monthly map[string]float64) (pct float64, computed bool) {
	if len(monthly) < 2 {
		return 0, false
	}
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	first := monthly[months[0]]
	last := monthly[months[len(months)-1]]
	if first == 0 {
		return 0, true
	}
	return (last - first) / first * 100, true
}

// TopProducts returns the n best products by the given metric. The sort
// is stable and descending; ties keep the input order.
func TopProducts(products []domain.ProductMonthly, metric domain.ProductMetric, n int) []domain.ProductMonthly {
	ranked := make([]domain.ProductMonthly, len(products))
	copy(ranked, products)

	key := func(p domain.ProductMonthly) float64 {
		switch metric {
		case domain.MetricUnits:
			return p.UnitsTotal
		case domain.MetricMargin:
			return p.UnitMargin()
		default:
			return p.AmountTotal
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
