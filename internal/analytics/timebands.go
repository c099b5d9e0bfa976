package analytics

import (
	"fmt"
	"math"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

// DefaultBands returns the fixed ordered set of 18 time bands: the
// overnight correction window, three prep hours, twelve business hours
// and the two closing windows. Together they partition [0,24).
func DefaultBands() []domain.TimeBand {
	bands := []domain.TimeBand{
		{Label: "00:00-06:00", StartHour: 0, EndHour: 6, Kind: domain.BandCorrection},
		{Label: "06:00-07:00", StartHour: 6, EndHour: 7, Kind: domain.BandPrep},
		{Label: "07:00-08:00", StartHour: 7, EndHour: 8, Kind: domain.BandPrep},
		{Label: "08:00-09:00", StartHour: 8, EndHour: 9, Kind: domain.BandPrep},
	}
	for h := 9; h < 21; h++ {
		bands = append(bands, domain.TimeBand{
			Label:     fmt.Sprintf("%02d:00-%02d:00", h, h+1),
			StartHour: h,
			EndHour:   h + 1,
			Kind:      domain.BandBusiness,
		})
	}
	bands = append(bands,
		domain.TimeBand{Label: "21:00-22:00", StartHour: 21, EndHour: 22, Kind: domain.BandClosing},
		domain.TimeBand{Label: "22:00-24:00", StartHour: 22, EndHour: 24, Kind: domain.BandClosing},
	)
	return bands
}

// ValidateBands checks the structural invariant once at startup: the
// union of all half-open band ranges must cover every hour of the day
// exactly once, with no gap and no overlap.
func ValidateBands(bands []domain.TimeBand) error {
	var seen [24]int
	for _, b := range bands {
		if b.StartHour < 0 || b.EndHour > 24 || b.StartHour >= b.EndHour {
			return fmt.Errorf("band %q has invalid range [%d,%d)", b.Label, b.StartHour, b.EndHour)
		}
		for h := b.StartHour; h < b.EndHour; h++ {
			seen[h]++
		}
	}
	for h, n := range seen {
		switch {
		case n == 0:
			return fmt.Errorf("hour %d is covered by no band", h)
		case n > 1:
			return fmt.Errorf("hour %d is covered by %d bands", h, n)
		}
	}
	return nil
}

// AggregateBands assigns each record to the unique band containing the
// hour of its time field and accumulates the record's amount and a
// ticket count. Records whose time field is absent or unparseable are
// skipped, and the skip count is returned for observability. The input
// band set is copied; callers can reuse it across runs.
func AggregateBands(records []ingest.Record, bands []domain.TimeBand, timeField, amountField string) ([]domain.TimeBand, int) {
	out := make([]domain.TimeBand, len(bands))
	copy(out, bands)

	skipped := 0
	for _, rec := range records {
		hour, ok := recordHour(rec, timeField)
		if !ok {
			skipped++
			continue
		}
		amount, _ := rec.Number(amountField)
		for i := range out {
			if out[i].Contains(hour) {
				out[i].Amount += amount
				out[i].Tickets++
				break
			}
		}
	}
	return out, skipped
}

// recordHour extracts the integer hour from a record's time field:
// "HH:MM:SS" strings take the hour component, fraction-of-day numerics
// floor to an hour.
func recordHour(rec ingest.Record, timeField string) (int, bool) {
	v, ok := rec[timeField]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case ingest.ValueClock, ingest.ValueText:
		return ingest.HourOf(v.Text)
	case ingest.ValueNumber:
		h := int(math.Floor(v.Number * 24))
		if h < 0 || h > 23 {
			return 0, false
		}
		return h, true
	}
	return 0, false
}

// BestWorstBands returns the bands with the highest and lowest
// accumulated amount, considering only bands that saw at least one
// record. Both are nil when nothing accumulated.
func BestWorstBands(bands []domain.TimeBand) (best, worst *domain.TimeBand) {
	for i := range bands {
		if bands[i].Tickets == 0 {
			continue
		}
		if best == nil || bands[i].Amount > best.Amount {
			b := bands[i]
			best = &b
		}
		if worst == nil || bands[i].Amount < worst.Amount {
			w := bands[i]
			worst = &w
		}
	}
	return best, worst
}
