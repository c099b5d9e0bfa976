package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFromSerial(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		want   time.Time
	}{
		{
			name:   "new year 2024",
			serial: 45292,
			want:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "mid month",
			serial: 45366,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "fraction discarded",
			serial: 45292.75,
			want:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateFromSerial(tt.serial))
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     string
	}{
		{"midnight", 0, "00:00:00"},
		{"noon", 0.5, "12:00:00"},
		{"half past nine", 0.3958333333333333, "09:30:00"},
		{"rounds to nearest second", 0.99999, "23:59:59"},
		{"wraps past a day", 1.25, "06:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeOfDay(tt.fraction))
		})
	}
}

func TestHourOf(t *testing.T) {
	tests := []struct {
		clock    string
		wantHour int
		wantOK   bool
	}{
		{"09:30:00", 9, true},
		{"00:00:00", 0, true},
		{"23:59:59", 23, true},
		{"25:00:00", 0, false},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			h, ok := HourOf(tt.clock)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantHour, h)
			}
		})
	}
}

func TestIsSentinel(t *testing.T) {
	for _, s := range []string{"", "-", "--", "+", "  -  "} {
		assert.True(t, IsSentinel(s), "expected %q to be a sentinel", s)
	}
	for _, s := range []string{"0", "+-", "x", "---"} {
		assert.False(t, IsSentinel(s), "expected %q not to be a sentinel", s)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   float64
		wantOK bool
	}{
		{"number cell", NumberCell(42.5), 42.5, true},
		{"text integer", TextCell("17"), 17, true},
		{"thousands separators", TextCell("1,234.5"), 1234.5, true},
		{"padded text", TextCell("  9 "), 9, true},
		{"sentinel dash", TextCell("-"), 0, false},
		{"empty text", TextCell(""), 0, false},
		{"garbage", TextCell("n/a"), 0, false},
		{"blank", Blank, 0, false},
		{"bool true", Cell{Kind: CellBool, Bool: true}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("serial number", func(t *testing.T) {
		got, opaque, ok := ParseDate(NumberCell(45292))
		require.True(t, ok)
		assert.Empty(t, opaque)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("textual date", func(t *testing.T) {
		got, opaque, ok := ParseDate(TextCell("15/03/2024"))
		require.True(t, ok)
		assert.Empty(t, opaque)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparseable text passes through as opaque key", func(t *testing.T) {
		got, opaque, ok := ParseDate(TextCell("Setmana 12"))
		require.True(t, ok)
		assert.True(t, got.IsZero())
		assert.Equal(t, "Setmana 12", opaque)
	})

	t.Run("sentinel rejected", func(t *testing.T) {
		_, _, ok := ParseDate(TextCell("--"))
		assert.False(t, ok)
	})
}

func TestParseClock(t *testing.T) {
	t.Run("fraction of day", func(t *testing.T) {
		got, ok := ParseClock(NumberCell(0.5))
		require.True(t, ok)
		assert.Equal(t, "12:00:00", got)
	})

	t.Run("text passes through", func(t *testing.T) {
		got, ok := ParseClock(TextCell("09:30:00"))
		require.True(t, ok)
		assert.Equal(t, "09:30:00", got)
	})

	t.Run("placeholder rejected", func(t *testing.T) {
		_, ok := ParseClock(TextCell("-"))
		assert.False(t, ok)
	})
}
