package domain

import (
	"time"
)

// BandKind classifies a time band for display grouping. It plays no role
// in aggregation math.
type BandKind string

const (
	BandBusiness   BandKind = "business"
	BandCorrection BandKind = "correction"
	BandPrep       BandKind = "prep"
	BandClosing    BandKind = "closing"
)

// TimeBand is one of the fixed named intervals that partition the
// 24-hour cycle. StartHour is inclusive, EndHour exclusive. Amount and
// Tickets are accumulated per analytics run and never persisted.
type TimeBand struct {
	Label     string   `json:"label"`
	StartHour int      `json:"start_hour"`
	EndHour   int      `json:"end_hour"`
	Kind      BandKind `json:"kind"`
	Amount    float64  `json:"import"`
	Tickets   int      `json:"tiquets"`
}

// Contains reports whether the integer hour falls inside the band's
// half-open range.
func (b TimeBand) Contains(hour int) bool {
	return hour >= b.StartHour && hour < b.EndHour
}

// DailyAggregate is the summed activity for one calendar date.
type DailyAggregate struct {
	Date    time.Time    `json:"data"`
	Weekday time.Weekday `json:"dia_setmana"`
	Amount  float64      `json:"import"`
	Tickets float64      `json:"tiquets"`
}

// WeekdayStat holds the averaged performance of one weekday across the
// months that actually have data for it.
type WeekdayStat struct {
	Weekday        time.Weekday `json:"dia_setmana"`
	Total          float64      `json:"total"`
	MonthsWithData int          `json:"mesos_amb_dades"`
	Average        float64      `json:"mitjana"`
	Observations   int          `json:"observacions"`
	Variation      float64      `json:"coeficient_variacio"`
}

// AnalyticsSummary is the statistics engine's derived output. It is
// recomputed on demand and never mutated.
type AnalyticsSummary struct {
	TotalAmount    float64      `json:"import_total"`
	TotalTickets   float64      `json:"tiquets_total"`
	DaysWithData   int          `json:"dies_amb_dades"`
	BestDay        *WeekdayStat `json:"millor_dia,omitempty"`
	WorstDay       *WeekdayStat `json:"pitjor_dia,omitempty"`
	MostConsistent *WeekdayStat `json:"dia_mes_constant,omitempty"`
	BestBand       *TimeBand    `json:"millor_franja,omitempty"`
	WorstBand      *TimeBand    `json:"pitjor_franja,omitempty"`
	MonthlyGrowth  float64      `json:"creixement_mensual"`
	GrowthComputed bool         `json:"creixement_calculat"`
	SkippedNoTime  int          `json:"files_sense_hora"`
	GeneratedAt    time.Time    `json:"generated_at"`
}
