package domain

// MonthsPerYear is the length of the per-product month vectors.
const MonthsPerYear = 12

// ProductMonthly holds the merged view of one product across the two
// parallel export layouts: a twelve-month monetary vector and a
// twelve-month quantity vector, each with a derived total. The product
// code is the natural key; a code appears at most once in a merged set.
type ProductMonthly struct {
	Code          string                 `json:"codi" db:"codi"`
	Description   string                 `json:"descripcio,omitempty" db:"descripcio"`
	AmountByMonth [MonthsPerYear]float64 `json:"import_mensual"`
	AmountTotal   float64                `json:"import_total"`
	UnitsByMonth  [MonthsPerYear]float64 `json:"quantitat_mensual"`
	UnitsTotal    float64                `json:"quantitat_total"`
}

// UnitMargin returns the monetary contribution per unit sold, or 0 when
// no units are recorded.
func (p ProductMonthly) UnitMargin() float64 {
	if p.UnitsTotal == 0 {
		return 0
	}
	return p.AmountTotal / p.UnitsTotal
}

// ProductMetric selects the ranking metric for product top-N queries.
type ProductMetric string

const (
	MetricAmount ProductMetric = "amount"
	MetricUnits  ProductMetric = "units"
	MetricMargin ProductMetric = "margin"
)

// Valid reports whether m is a supported ranking metric.
func (m ProductMetric) Valid() bool {
	switch m {
	case MetricAmount, MetricUnits, MetricMargin:
		return true
	}
	return false
}
