package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(date(2024, 6, 1), date(2024, 6, 3))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 6, 1), r.Start)
		assert.Equal(t, date(2024, 6, 3), r.End)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := NewDateRange(date(2024, 6, 1), date(2024, 6, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := NewDateRange(date(2024, 6, 3), date(2024, 6, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("zero dates", func(t *testing.T) {
		_, err := NewDateRange(time.Time{}, date(2024, 6, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestDateRange_Overlaps(t *testing.T) {
	base := DateRange{Start: date(2024, 6, 10), End: date(2024, 6, 15)}

	tests := []struct {
		name     string
		other    DateRange
		expected bool
	}{
		{"fully inside", DateRange{date(2024, 6, 11), date(2024, 6, 14)}, true},
		{"fully covers", DateRange{date(2024, 6, 1), date(2024, 6, 30)}, true},
		{"partial left", DateRange{date(2024, 6, 5), date(2024, 6, 10)}, true},
		{"partial right", DateRange{date(2024, 6, 15), date(2024, 6, 20)}, true},
		{"shared boundary day blocks", DateRange{date(2024, 6, 15), date(2024, 6, 16)}, true},
		{"before without touch", DateRange{date(2024, 6, 1), date(2024, 6, 9)}, false},
		{"after without touch", DateRange{date(2024, 6, 16), date(2024, 6, 20)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	t.Run("two full days", func(t *testing.T) {
		r := DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 3)}
		assert.Equal(t, 2, r.Days())
	})

	t.Run("one day", func(t *testing.T) {
		r := DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 2)}
		assert.Equal(t, 1, r.Days())
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 2, r.Days())
	})
}

func TestHasConflict(t *testing.T) {
	existing := []*Reservation{
		{ID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 3)},
		{ID: 2, StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 12)},
	}

	t.Run("no overlap", func(t *testing.T) {
		candidate := DateRange{Start: date(2024, 6, 5), End: date(2024, 6, 8)}
		assert.False(t, HasConflict(candidate, existing))
	})

	t.Run("start on existing end date conflicts", func(t *testing.T) {
		candidate := DateRange{Start: date(2024, 6, 3), End: date(2024, 6, 5)}
		assert.True(t, HasConflict(candidate, existing))
	})

	t.Run("start the day after existing end is free", func(t *testing.T) {
		candidate := DateRange{Start: date(2024, 6, 4), End: date(2024, 6, 8)}
		assert.False(t, HasConflict(candidate, existing))
	})

	t.Run("empty set never conflicts", func(t *testing.T) {
		candidate := DateRange{Start: date(2024, 6, 1), End: date(2024, 6, 30)}
		assert.False(t, HasConflict(candidate, nil))
	})
}

func TestFindConflicts(t *testing.T) {
	existing := []*Reservation{
		{ID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 3)},
		{ID: 2, StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 12)},
		{ID: 3, StartDate: date(2024, 6, 20), EndDate: date(2024, 6, 25)},
	}

	candidate := DateRange{Start: date(2024, 6, 3), End: date(2024, 6, 10)}
	conflicts := FindConflicts(candidate, existing)

	require.Len(t, conflicts, 2)
	assert.Equal(t, int64(1), conflicts[0].ID)
	assert.Equal(t, int64(2), conflicts[1].ID)
}
