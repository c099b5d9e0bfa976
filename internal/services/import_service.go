package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vendescli/internal/ingest"
	"vendescli/internal/store"
	"vendescli/pkg/contracts/domain"
)

// ImportService runs one full ingestion pipeline per uploaded file:
// decode → locate header → map rows → persist with replace-all
// semantics. Imports of the same dataset kind are serialized by a
// per-kind gate; the replace strategy would otherwise race
// destructively.
type ImportService struct {
	store  store.Store
	logger *slog.Logger

	mu    sync.Mutex
	gates map[domain.DatasetKind]*sync.Mutex
}

// NewImportService creates an import service backed by the given store.
func NewImportService(s store.Store, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{
		store:  s,
		logger: logger.With(slog.String("component", "import_service")),
		gates:  make(map[domain.DatasetKind]*sync.Mutex),
	}
}

func (s *ImportService) gate(kind domain.DatasetKind) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gates[kind]
	if !ok {
		g = &sync.Mutex{}
		s.gates[kind] = g
	}
	return g
}

// Import ingests one uploaded workbook for the given dataset kind.
// Structural and header-not-found failures abort with nothing applied.
// Row-level rejections only reduce the imported count; they are not
// errors.
func (s *ImportService) Import(ctx context.Context, kind domain.DatasetKind, r io.Reader) (*domain.ImportResult, error) {
	spec, err := ingest.SpecFor(kind)
	if err != nil {
		return nil, err
	}

	records, skipped, err := s.ingestWorkbook(ctx, spec, r)
	if err != nil {
		return nil, err
	}

	result, err := s.persistRecords(ctx, kind, records, skipped)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "import complete",
		slog.String("run_id", result.RunID),
		slog.String("kind", string(kind)),
		slog.Int("rows_imported", result.RowsImported),
		slog.Int("rows_skipped", result.RowsSkipped))

	return result, nil
}

// ImportProductPair ingests the two parallel product layouts in one
// call. The workbooks are decoded and mapped concurrently (they are
// independent until the merge step), then persisted sequentially under
// their kind gates.
func (s *ImportService) ImportProductPair(ctx context.Context, amounts, quantities io.Reader) (*domain.ImportResult, *domain.ImportResult, error) {
	var amountRecs, quantityRecs []ingest.Record
	var amountSkipped, quantitySkipped int

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		amountRecs, amountSkipped, err = s.ingestWorkbook(egCtx, ingest.ProductAmountSpec(), amounts)
		return err
	})
	eg.Go(func() error {
		var err error
		quantityRecs, quantitySkipped, err = s.ingestWorkbook(egCtx, ingest.ProductQuantitySpec(), quantities)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	amountResult, err := s.persistRecords(ctx, domain.DatasetProductAmount, amountRecs, amountSkipped)
	if err != nil {
		return nil, nil, err
	}
	quantityResult, err := s.persistRecords(ctx, domain.DatasetProductQuantity, quantityRecs, quantitySkipped)
	if err != nil {
		return amountResult, nil, err
	}
	return amountResult, quantityResult, nil
}

// ingestWorkbook runs the in-memory pipeline stages for one workbook.
func (s *ImportService) ingestWorkbook(ctx context.Context, spec ingest.HeaderSpec, r io.Reader) ([]ingest.Record, int, error) {
	grid, err := ingest.DecodeWorkbook(r, spec)
	if err != nil {
		return nil, 0, err
	}

	header, err := ingest.Locate(grid, spec)
	if err != nil {
		return nil, 0, err
	}

	records := ingest.MapRows(grid, header, spec)
	dataRows := len(grid) - header.Row - 1
	skipped := dataRows - len(records)

	s.logger.DebugContext(ctx, "workbook mapped",
		slog.String("kind", string(spec.Kind)),
		slog.Int("header_row", header.Row),
		slog.Int("data_rows", dataRows),
		slog.Int("records", len(records)))

	return records, skipped, nil
}

func (s *ImportService) persistRecords(ctx context.Context, kind domain.DatasetKind, records []ingest.Record, skipped int) (*domain.ImportResult, error) {
	g := s.gate(kind)
	g.Lock()
	defer g.Unlock()

	rows := make(store.RowSet, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ingest.ToStored(rec))
	}
	if err := s.store.Replace(ctx, kind, rows); err != nil {
		return nil, fmt.Errorf("persist %s: %w", kind, err)
	}

	result := &domain.ImportResult{
		RunID:        uuid.NewString(),
		Kind:         kind,
		RowsImported: len(records),
		RowsSkipped:  skipped,
		ImportedAt:   time.Now().UTC(),
	}
	if err := s.store.RecordRun(ctx, *result); err != nil {
		s.logger.WarnContext(ctx, "failed to record import run",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()))
	}
	return result, nil
}
