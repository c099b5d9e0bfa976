package analytics

import (
	"time"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

// BuildSummary runs the statistics engine over imported daily and
// hourly records and assembles the derived analytics summary. The
// inputs are not mutated; the summary is a pure derived value,
// recomputed on every call.
func BuildSummary(dailyRecords, hourlyRecords []ingest.Record, bands []domain.TimeBand) *domain.AnalyticsSummary {
	daily := DailyAggregates(dailyRecords)
	stats := WeekdayStats(daily)

	summary := &domain.AnalyticsSummary{
		DaysWithData: len(daily),
		GeneratedAt:  time.Now().UTC(),
	}
	for _, d := range daily {
		summary.TotalAmount += d.Amount
		summary.TotalTickets += d.Tickets
	}

	summary.BestDay, summary.WorstDay = BestWorstDay(stats)
	summary.MostConsistent = MostConsistentDay(stats)
	summary.MonthlyGrowth, summary.GrowthComputed = Growth(MonthlyTotals(daily))

	aggregated, skipped := AggregateBands(hourlyRecords, bands, ingest.FieldHora, ingest.FieldTotal)
	summary.BestBand, summary.WorstBand = BestWorstBands(aggregated)
	summary.SkippedNoTime = skipped

	return summary
}
