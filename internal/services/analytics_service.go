package services

import (
	"context"
	"fmt"
	"log/slog"

	"vendescli/internal/analytics"
	"vendescli/internal/ingest"
	"vendescli/internal/store"
	"vendescli/pkg/contracts/domain"
)

// AnalyticsService recomputes derived analytics from persisted rows on
// demand. It holds no state between calls beyond the validated band
// set.
type AnalyticsService struct {
	store  store.Store
	logger *slog.Logger
	bands  []domain.TimeBand
}

// NewAnalyticsService creates an analytics service. The time-band
// partition invariant is validated here, once, rather than per record.
func NewAnalyticsService(s store.Store, logger *slog.Logger) (*AnalyticsService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bands := analytics.DefaultBands()
	if err := analytics.ValidateBands(bands); err != nil {
		return nil, fmt.Errorf("time band configuration: %w", err)
	}
	return &AnalyticsService{
		store:  s,
		logger: logger.With(slog.String("component", "analytics_service")),
		bands:  bands,
	}, nil
}

// Summary derives the full analytics summary from the persisted daily
// and hourly datasets.
func (s *AnalyticsService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	daily, err := s.loadRecords(ctx, domain.DatasetDailySales)
	if err != nil {
		return nil, err
	}
	hourly, err := s.loadRecords(ctx, domain.DatasetHourlySales)
	if err != nil {
		return nil, err
	}

	summary := analytics.BuildSummary(daily, hourly, s.bands)
	s.logger.InfoContext(ctx, "analytics summary built",
		slog.Int("days_with_data", summary.DaysWithData),
		slog.Int("rows_without_time", summary.SkippedNoTime))
	return summary, nil
}

// TimeBands aggregates the persisted hourly dataset into the fixed
// band set and returns the bands with their accumulated totals plus the
// skipped-record count.
func (s *AnalyticsService) TimeBands(ctx context.Context) ([]domain.TimeBand, int, error) {
	hourly, err := s.loadRecords(ctx, domain.DatasetHourlySales)
	if err != nil {
		return nil, 0, err
	}
	bands, skipped := analytics.AggregateBands(hourly, s.bands, ingest.FieldHora, ingest.FieldTotal)
	return bands, skipped, nil
}

// Products merges the two persisted product datasets and returns the
// top n by the given metric. n <= 0 returns the full ranking.
func (s *AnalyticsService) Products(ctx context.Context, metric domain.ProductMetric, n int) ([]domain.ProductMonthly, error) {
	amounts, err := s.loadRecords(ctx, domain.DatasetProductAmount)
	if err != nil {
		return nil, err
	}
	quantities, err := s.loadRecords(ctx, domain.DatasetProductQuantity)
	if err != nil {
		return nil, err
	}

	ranked := analytics.RankProducts(analytics.MergeProducts(amounts, quantities))
	return analytics.TopProducts(ranked, metric, n), nil
}

func (s *AnalyticsService) loadRecords(ctx context.Context, kind domain.DatasetKind) ([]ingest.Record, error) {
	spec, err := ingest.SpecFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Rows(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	records := make([]ingest.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, ingest.FromStored(row, spec))
	}
	return records, nil
}
