package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year)
		assert.Equal(t, 1, date.Month)
		assert.Equal(t, 15, date.Day)
	})

	t.Run("Invalid format", func(t *testing.T) {
		for _, in := range []string{"2024/01/15", "2024-+6-01", "+024-06-01", "2024-06- 1", "2024-06--1"} {
			_, err := ParseDate(in)
			if assert.Error(t, err, in) {
				assert.Contains(t, err.Error(), "invalid date format", in)
			}
		}
	})

	t.Run("Empty string", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})

	t.Run("Time of day is rejected", func(t *testing.T) {
		_, err := ParseDate("2024-01-15T10:00:00Z")
		assert.Error(t, err)
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Day past end of month", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "day must be between 1 and 28")
	})

	t.Run("Leap day", func(t *testing.T) {
		date, err := ParseDate("2024-02-29")
		assert.NoError(t, err)
		assert.Equal(t, "2024-02-29", date.String())
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 11, 30},
		{2024, 12, 31},
		{2000, 2, 29},
		{1900, 2, 28},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Run("Same day", func(t *testing.T) {
		d := Date{Year: 2024, Month: 6, Day: 1}
		assert.Equal(t, 0, DaysBetween(d, d))
	})

	t.Run("Three days", func(t *testing.T) {
		assert.Equal(t, 3, DaysBetween(Date{2024, 6, 1}, Date{2024, 6, 4}))
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		assert.Equal(t, 11, DaysBetween(Date{2024, 1, 25}, Date{2024, 2, 5}))
	})

	t.Run("Cross leap February", func(t *testing.T) {
		assert.Equal(t, 2, DaysBetween(Date{2024, 2, 28}, Date{2024, 3, 1}))
		assert.Equal(t, 1, DaysBetween(Date{2023, 2, 28}, Date{2023, 3, 1}))
	})

	t.Run("Cross year boundary", func(t *testing.T) {
		assert.Equal(t, 366, DaysBetween(Date{2024, 1, 1}, Date{2025, 1, 1}))
	})

	t.Run("Across a DST change", func(t *testing.T) {
		// Europe switched to summer time on 2024-03-31
		assert.Equal(t, 2, DaysBetween(Date{2024, 3, 30}, Date{2024, 4, 1}))
	})

	t.Run("Negative", func(t *testing.T) {
		assert.Equal(t, -5, DaysBetween(Date{2024, 1, 20}, Date{2024, 1, 15}))
	})

	t.Run("Shift invariance", func(t *testing.T) {
		start := Date{2024, 6, 1}
		end := Date{2024, 6, 4}
		for _, shift := range []int{-400, -31, -1, 1, 29, 365, 1000} {
			assert.Equal(t, 3, DaysBetween(start.AddDays(shift), end.AddDays(shift)))
		}
	})

	t.Run("Matches time package", func(t *testing.T) {
		start := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
		for _, n := range []int{0, 1, 59, 60, 365, 3000} {
			end := start.AddDate(0, 0, n)
			assert.Equal(t, n, DaysBetween(DateOf(start), DateOf(end)))
		}
	})
}

func TestToday(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 23:30 UTC is already the next day in Paris
	now := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Date{2024, 6, 1}, Today(now, time.UTC))
	assert.Equal(t, Date{2024, 6, 2}, Today(now, paris))
	assert.Equal(t, Date{2024, 6, 1}, Today(now, nil))
}

func TestDateOrdering(t *testing.T) {
	a := Date{2024, 6, 1}
	b := Date{2024, 6, 2}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, b, a.AddDays(1))
	assert.Equal(t, Date{2024, 5, 31}, a.AddDays(-1))
}
