package http

import (
	"context"
	"io"

	"vendescli/pkg/contracts/domain"
)

// ImportServiceInterface is the import surface the handlers depend on.
// Narrowing to an interface keeps handler tests free of real stores.
type ImportServiceInterface interface {
	Import(ctx context.Context, kind domain.DatasetKind, r io.Reader) (*domain.ImportResult, error)
	ImportProductPair(ctx context.Context, amounts, quantities io.Reader) (*domain.ImportResult, *domain.ImportResult, error)
}

// AnalyticsServiceInterface is the analytics surface the handlers
// depend on.
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
	TimeBands(ctx context.Context) ([]domain.TimeBand, int, error)
	Products(ctx context.Context, metric domain.ProductMetric, n int) ([]domain.ProductMonthly, error)
}
