package analytics

import (
	"sort"
	"time"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

// DailyAggregates folds daily-sales records into one entry per calendar
// date, summing amount and tickets across shops, classified by weekday.
// Records without a parseable date are ignored. The result is sorted
// chronologically and read-only once computed.
func DailyAggregates(records []ingest.Record) []domain.DailyAggregate {
	byDate := make(map[time.Time]*domain.DailyAggregate)
	for _, rec := range records {
		date, ok := rec.Date(ingest.FieldData)
		if !ok {
			continue
		}
		day := date.Truncate(24 * time.Hour)
		agg, exists := byDate[day]
		if !exists {
			agg = &domain.DailyAggregate{Date: day, Weekday: day.Weekday()}
			byDate[day] = agg
		}
		if amount, ok := rec.Number(ingest.FieldImport); ok {
			agg.Amount += amount
		}
		if tickets, ok := rec.Number(ingest.FieldTiquets); ok {
			agg.Tickets += tickets
		}
	}

	out := make([]domain.DailyAggregate, 0, len(byDate))
	for _, agg := range byDate {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
