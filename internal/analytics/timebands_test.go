package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendescli/internal/ingest"
	"vendescli/pkg/contracts/domain"
)

func TestDefaultBandsPartitionDay(t *testing.T) {
	bands := DefaultBands()
	require.Len(t, bands, 18)
	require.NoError(t, ValidateBands(bands))

	counts := map[domain.BandKind]int{}
	for _, b := range bands {
		counts[b.Kind]++
	}
	assert.Equal(t, 1, counts[domain.BandCorrection])
	assert.Equal(t, 3, counts[domain.BandPrep])
	assert.Equal(t, 12, counts[domain.BandBusiness])
	assert.Equal(t, 2, counts[domain.BandClosing])
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name    string
		bands   []domain.TimeBand
		wantErr string
	}{
		{
			name: "gap",
			bands: []domain.TimeBand{
				{Label: "00:00-12:00", StartHour: 0, EndHour: 12},
				{Label: "13:00-24:00", StartHour: 13, EndHour: 24},
			},
			wantErr: "covered by no band",
		},
		{
			name: "overlap",
			bands: []domain.TimeBand{
				{Label: "00:00-13:00", StartHour: 0, EndHour: 13},
				{Label: "12:00-24:00", StartHour: 12, EndHour: 24},
			},
			wantErr: "covered by 2 bands",
		},
		{
			name: "inverted range",
			bands: []domain.TimeBand{
				{Label: "broken", StartHour: 9, EndHour: 9},
			},
			wantErr: "invalid range",
		},
		{
			name:    "full day",
			bands:   []domain.TimeBand{{Label: "00:00-24:00", StartHour: 0, EndHour: 24}},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.bands)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func hourlyRec(clock string, total float64) ingest.Record {
	rec := ingest.Record{ingest.FieldTotal: numVal(total)}
	if clock != "" {
		rec[ingest.FieldHora] = ingest.Value{Kind: ingest.ValueClock, Text: clock}
	}
	return rec
}

func TestAggregateBands(t *testing.T) {
	records := []ingest.Record{
		hourlyRec("09:30:00", 42),
		hourlyRec("09:05:12", 8),
		hourlyRec("23:10:00", 15),
		hourlyRec("", 999),
		{ingest.FieldHora: numVal(0.5), ingest.FieldTotal: numVal(30)},
	}

	bands, skipped := AggregateBands(records, DefaultBands(), ingest.FieldHora, ingest.FieldTotal)
	assert.Equal(t, 1, skipped)

	byLabel := map[string]domain.TimeBand{}
	for _, b := range bands {
		byLabel[b.Label] = b
	}

	assert.InDelta(t, 50, byLabel["09:00-10:00"].Amount, 1e-9)
	assert.Equal(t, 2, byLabel["09:00-10:00"].Tickets)
	assert.InDelta(t, 30, byLabel["12:00-13:00"].Amount, 1e-9, "fraction of day floors to its hour")
	assert.InDelta(t, 15, byLabel["22:00-24:00"].Amount, 1e-9)
	assert.Equal(t, 0, byLabel["00:00-06:00"].Tickets)
}

func TestAggregateBandsLeavesInputUntouched(t *testing.T) {
	base := DefaultBands()
	_, _ = AggregateBands([]ingest.Record{hourlyRec("10:00:00", 5)}, base, ingest.FieldHora, ingest.FieldTotal)

	for _, b := range base {
		assert.Zero(t, b.Amount)
		assert.Zero(t, b.Tickets)
	}
}

func TestBestWorstBands(t *testing.T) {
	bands := []domain.TimeBand{
		{Label: "09:00-10:00", Amount: 120, Tickets: 4},
		{Label: "10:00-11:00", Amount: 0, Tickets: 0},
		{Label: "11:00-12:00", Amount: 35, Tickets: 2},
	}

	best, worst := BestWorstBands(bands)
	require.NotNil(t, best)
	require.NotNil(t, worst)
	assert.Equal(t, "09:00-10:00", best.Label)
	assert.Equal(t, "11:00-12:00", worst.Label, "bands nobody visited are not the worst band")

	best, worst = BestWorstBands([]domain.TimeBand{{Label: "empty"}})
	assert.Nil(t, best)
	assert.Nil(t, worst)
}
