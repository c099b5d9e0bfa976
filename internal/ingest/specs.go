package ingest

import (
	"fmt"

	"vendescli/pkg/contracts/domain"
)

// Canonical field names shared across the layouts. The vocabulary is
// the source exports' own column labels.
const (
	FieldData       = "data"
	FieldDiaSetmana = "dia_setmana"
	FieldCVen       = "c_ven"
	FieldNomBotiga  = "nom_botiga"
	FieldImport     = "import"
	FieldTiquets    = "tiquets"
	FieldKgs        = "kgs"
	FieldUnit       = "unit"
	FieldMitjaTiq   = "mitja_tiq"
	FieldHora       = "hora"
	FieldTotal      = "total"
	FieldCodi       = "codi"
	FieldDescripcio = "descripcio"
)

// MonthFields are the twelve per-month column names of the product
// layouts, in calendar order.
var MonthFields = [domain.MonthsPerYear]string{
	"gener", "febrer", "març", "abril", "maig", "juny",
	"juliol", "agost", "setembre", "octubre", "novembre", "desembre",
}

// DailySalesSpec describes the daily-sales export: one row per shop and
// date with monetary total, ticket count and weight/unit columns.
func DailySalesSpec() HeaderSpec {
	return HeaderSpec{
		Kind: domain.DatasetDailySales,
		Fields: []Field{
			{Name: FieldData, Kind: FieldDate, Signal: true},
			{Name: FieldDiaSetmana, Kind: FieldText},
			{Name: FieldCVen, Kind: FieldText},
			{Name: FieldNomBotiga, Kind: FieldText},
			{Name: FieldImport, Kind: FieldNumber, Signal: true},
			{Name: FieldTiquets, Kind: FieldNumber, Signal: true},
			{Name: FieldKgs, Kind: FieldNumber},
			{Name: FieldUnit, Kind: FieldNumber},
			{Name: FieldMitjaTiq, Kind: FieldNumber},
		},
		MinScore:     4,
		SearchWindow: 10,
	}
}

// HourlySalesSpec describes the hourly-sales export: one row per
// timestamped transaction batch.
func HourlySalesSpec() HeaderSpec {
	return HeaderSpec{
		Kind: domain.DatasetHourlySales,
		Fields: []Field{
			{Name: FieldData, Kind: FieldDate, Signal: true},
			{Name: FieldHora, Kind: FieldTime},
			{Name: FieldTotal, Kind: FieldNumber, Signal: true},
		},
		MinScore:     2,
		SearchWindow: 10,
	}
}

// ProductAmountSpec describes the per-product monetary layout. The
// export splits its logical header across two physical rows
// ("Article" / "Codi") and pads a blank column on the left edge.
func ProductAmountSpec() HeaderSpec {
	return productSpec(domain.DatasetProductAmount)
}

// ProductQuantitySpec describes the per-product unit-count layout. It
// is structurally identical to the amount layout; only the metric the
// month columns carry differs.
func ProductQuantitySpec() HeaderSpec {
	return productSpec(domain.DatasetProductQuantity)
}

func productSpec(kind domain.DatasetKind) HeaderSpec {
	fields := []Field{
		{Name: FieldCodi, Kind: FieldText, Signal: true},
		{Name: FieldDescripcio, Kind: FieldText},
	}
	for _, m := range MonthFields {
		fields = append(fields, Field{Name: m, Kind: FieldNumber})
	}
	fields = append(fields, Field{Name: FieldTotal, Kind: FieldNumber, Signal: true})

	return HeaderSpec{
		Kind:         kind,
		Fields:       fields,
		PairedRows:   true,
		MinScore:     5,
		SearchWindow: 10,
		ColumnOffset: 1,
	}
}

// SpecFor returns the built-in HeaderSpec for a dataset kind.
func SpecFor(kind domain.DatasetKind) (HeaderSpec, error) {
	switch kind {
	case domain.DatasetDailySales:
		return DailySalesSpec(), nil
	case domain.DatasetHourlySales:
		return HourlySalesSpec(), nil
	case domain.DatasetProductAmount:
		return ProductAmountSpec(), nil
	case domain.DatasetProductQuantity:
		return ProductQuantitySpec(), nil
	}
	return HeaderSpec{}, fmt.Errorf("unknown dataset kind %q", kind)
}
