package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

func textVal(s string) ingest.Value {
	return ingest.Value{Kind: ingest.ValueText, Text: s}
}

func numVal(v float64) ingest.Value {
	return ingest.Value{Kind: ingest.ValueNumber, Number: v}
}

func productRec(code, desc string, months map[string]float64) ingest.Record {
	rec := ingest.Record{}
	if code != "" {
		rec[ingest.FieldCodi] = textVal(code)
	}
	if desc != "" {
		rec[ingest.FieldDescripcio] = textVal(desc)
	}
	for name, v := range months {
		rec[name] = numVal(v)
	}
	return rec
}

func TestMergeProductsCombinesDatasets(t *testing.T) {
	amounts := []ingest.Record{
		productRec("A1", "Pa de pagès", map[string]float64{"gener": 100}),
	}
	quantities := []ingest.Record{
		productRec("A1", "", map[string]float64{"gener": 50}),
	}

	merged := MergeProducts(amounts, quantities)
	require.Len(t, merged, 1)

	p := merged["A1"]
	require.NotNil(t, p)
	assert.Equal(t, "Pa de pagès", p.Description)
	assert.InDelta(t, 100, p.AmountByMonth[0], 1e-9)
	assert.InDelta(t, 50, p.UnitsByMonth[0], 1e-9)
	assert.InDelta(t, 100, p.AmountTotal, 1e-9)
	assert.InDelta(t, 50, p.UnitsTotal, 1e-9)
	assert.InDelta(t, 2, p.UnitMargin(), 1e-9)
}

func TestMergeProductsOrderIndependent(t *testing.T) {
	amounts := []ingest.Record{
		productRec("A1", "Pa", map[string]float64{"gener": 100, "febrer": 80}),
		productRec("B2", "Croissant", map[string]float64{"març": 30}),
	}
	quantities := []ingest.Record{
		productRec("B2", "Croissant", map[string]float64{"març": 12}),
		productRec("A1", "Pa", map[string]float64{"gener": 40, "febrer": 32}),
	}

	forward := MergeProducts(amounts, quantities)

	reversedAmounts := []ingest.Record{amounts[1], amounts[0]}
	reversedQuantities := []ingest.Record{quantities[1], quantities[0]}
	backward := MergeProducts(reversedAmounts, reversedQuantities)

	assert.Equal(t, forward, backward)
}

func TestMergeProductsSkipsBlankCode(t *testing.T) {
	amounts := []ingest.Record{
		productRec("", "Sense codi", map[string]float64{"gener": 999}),
		productRec("A1", "Pa", map[string]float64{"gener": 10}),
	}

	merged := MergeProducts(amounts, nil)
	require.Len(t, merged, 1)
	assert.Contains(t, merged, "A1")
}

func TestMergeProductsDuplicateCodeLastWriteWins(t *testing.T) {
	amounts := []ingest.Record{
		productRec("A1", "Pa", map[string]float64{"gener": 10, "febrer": 20}),
		productRec("A1", "", map[string]float64{"gener": 30}),
	}

	merged := MergeProducts(amounts, nil)
	p := merged["A1"]
	require.NotNil(t, p)

	assert.InDelta(t, 30, p.AmountByMonth[0], 1e-9, "repeated code overwrites the months it carries")
	assert.InDelta(t, 20, p.AmountByMonth[1], 1e-9, "months the repeat does not carry survive")
	assert.InDelta(t, 50, p.AmountTotal, 1e-9)
	assert.Equal(t, "Pa", p.Description, "first description wins")
}

func TestMergeProductsAbsentMonthIsNotZeroed(t *testing.T) {
	amounts := []ingest.Record{
		productRec("A1", "Pa", map[string]float64{"gener": 100}),
	}
	quantities := []ingest.Record{
		productRec("A1", "Pa", map[string]float64{"febrer": 7}),
	}

	merged := MergeProducts(amounts, quantities)
	p := merged["A1"]
	require.NotNil(t, p)

	assert.InDelta(t, 100, p.AmountByMonth[0], 1e-9)
	assert.InDelta(t, 0, p.AmountByMonth[1], 1e-9)
	assert.InDelta(t, 0, p.UnitsByMonth[0], 1e-9)
	assert.InDelta(t, 7, p.UnitsByMonth[1], 1e-9)
}

func TestRankProducts(t *testing.T) {
	merged := map[string]*domain.ProductMonthly{
		"C3": {Code: "C3", AmountTotal: 50},
		"A1": {Code: "A1", AmountTotal: 200},
		"B2": {Code: "B2", AmountTotal: 50},
	}

	ranked := RankProducts(merged)
	require.Len(t, ranked, 3)
	assert.Equal(t, "A1", ranked[0].Code)
	assert.Equal(t, "B2", ranked[1].Code, "equal totals order by code")
	assert.Equal(t, "C3", ranked[2].Code)
}
