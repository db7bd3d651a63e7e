package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateActualDate(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		targetDay int
		wantDay   int
	}{
		{"normal day", 2025, time.May, 15, 15},
		{"day 31 in 30-day month", 2025, time.April, 31, 30},
		{"day 31 in February", 2025, time.February, 31, 28},
		{"day 30 in leap February", 2024, time.February, 30, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateActualDate(tt.year, tt.month, tt.targetDay)
			assert.Equal(t, tt.wantDay, got.Day())
			assert.Equal(t, tt.month, got.Month())
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	got := EndOfMonth(time.Date(2025, time.February, 10, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), got)
}

func TestCalendarHelpers_UseUTCCalendar(t *testing.T) {
	// 03:00 on July 1st in India is 21:30 on June 30th UTC
	ist := time.FixedZone("IST", 5*3600+1800)
	instant := time.Date(2025, time.July, 1, 3, 0, 0, 0, ist)

	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(instant))
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), EndOfMonth(instant))
	assert.Equal(t, "2025-06", MonthKey(instant))
	assert.True(t, IsSameMonth(instant, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)))
}

func TestAddMonths_DoesNotOverflow(t *testing.T) {
	got := AddMonths(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, time.February, got.Month())
}

func TestLastMonths(t *testing.T) {
	months := LastMonths(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), 6)

	require.Len(t, months, 6)
	assert.Equal(t, "2024-10", MonthKey(months[0]))
	assert.Equal(t, "2025-03", MonthKey(months[5]))
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2025-05")
	require.NoError(t, err)
	assert.Equal(t, time.May, got.Month())

	_, err = ParseMonthKey("May 2025")
	assert.Error(t, err)
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 31: "31st"}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestDueDayLabel(t *testing.T) {
	got := DueDayLabel(time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Day - 23rd of May, Friday", got)
}
