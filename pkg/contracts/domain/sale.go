package domain

import (
	"time"
)

// DatasetKind identifies one of the supported spreadsheet export layouts.
type DatasetKind string

const (
	DatasetDailySales      DatasetKind = "daily_sales"
	DatasetHourlySales     DatasetKind = "hourly_sales"
	DatasetProductAmount   DatasetKind = "product_amount"
	DatasetProductQuantity DatasetKind = "product_quantity"
)

// Valid reports whether k is one of the supported dataset kinds.
func (k DatasetKind) Valid() bool {
	switch k {
	case DatasetDailySales, DatasetHourlySales, DatasetProductAmount, DatasetProductQuantity:
		return true
	}
	return false
}

// DailySale represents one imported daily-sales row.
type DailySale struct {
	Date          time.Time `json:"data" db:"data"`
	Weekday       string    `json:"dia_setmana,omitempty" db:"dia_setmana"`
	SellerCode    string    `json:"c_ven,omitempty" db:"c_ven"`
	ShopName      string    `json:"nom_botiga,omitempty" db:"nom_botiga"`
	Amount        float64   `json:"import" db:"import"`
	Tickets       float64   `json:"tiquets" db:"tiquets"`
	Kilograms     float64   `json:"kgs,omitempty" db:"kgs"`
	Units         float64   `json:"unit,omitempty" db:"unit"`
	AverageTicket float64   `json:"mitja_tiq,omitempty" db:"mitja_tiq"`
}

// HourlySale represents one imported hourly-sales row.
type HourlySale struct {
	Date   time.Time `json:"data" db:"data"`
	Hour   string    `json:"hora" db:"hora"`
	Amount float64   `json:"total" db:"total"`
}

// ImportResult summarizes one completed import invocation.
// Row-level rejections are deliberately not itemized; the caller only
// learns how many rows survived validation.
type ImportResult struct {
	RunID        string      `json:"run_id"`
	Kind         DatasetKind `json:"kind"`
	RowsImported int         `json:"rows_imported"`
	RowsSkipped  int         `json:"rows_skipped"`
	ImportedAt   time.Time   `json:"imported_at"`
}
