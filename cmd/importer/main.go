// Command importer ingests one exported sales spreadsheet from the
// command line, using the same pipeline as the HTTP API.
//
// Usage:
//
//	importer -kind daily_sales -file vendes.xlsx
//	importer -amounts productes_import.xlsx -quantities productes_unitats.xlsx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"vendescli/internal/infrastructure"
	"vendescli/internal/services"
	"vendescli/internal/store"
	"vendescli/pkg/contracts/domain"
)

func main() {
	var (
		kind       = flag.String("kind", "", "dataset kind: daily_sales, hourly_sales, product_amount or product_quantity")
		file       = flag.String("file", "", "spreadsheet to import")
		amounts    = flag.String("amounts", "", "product-by-amount spreadsheet (paired import)")
		quantities = flag.String("quantities", "", "product-by-quantity spreadsheet (paired import)")
		dbPath     = flag.String("db", "data/vendes.db", "sqlite database path")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger, _, err := infrastructure.NewLogger(infrastructure.LoggerConfig{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(*kind, *file, *amounts, *quantities, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(kind, file, amounts, quantities, dbPath string, logger *slog.Logger) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	svc := services.NewImportService(db, logger)
	ctx := context.Background()

	if amounts != "" || quantities != "" {
		if amounts == "" || quantities == "" {
			return fmt.Errorf("paired product import needs both -amounts and -quantities")
		}
		af, err := os.Open(amounts)
		if err != nil {
			return err
		}
		defer af.Close()
		qf, err := os.Open(quantities)
		if err != nil {
			return err
		}
		defer qf.Close()

		ar, qr, err := svc.ImportProductPair(ctx, af, qf)
		if err != nil {
			return err
		}
		return printResults(ar, qr)
	}

	dataset := domain.DatasetKind(kind)
	if !dataset.Valid() {
		return fmt.Errorf("unknown dataset kind %q", kind)
	}
	if file == "" {
		return fmt.Errorf("-file is required")
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := svc.Import(ctx, dataset, f)
	if err != nil {
		return err
	}
	return printResults(result)
}

func printResults(results ...*domain.ImportResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
