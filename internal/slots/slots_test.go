package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return baseDate.Add(time.Duration(hour) * time.Hour)
}

func TestGenerate(t *testing.T) {
	t.Run("default window", func(t *testing.T) {
		result, err := Generate(baseDate, DefaultDayStartHour, DefaultDayEndHour)
		require.NoError(t, err)
		require.Len(t, result, 17)

		assert.Equal(t, at(7), result[0].StartTime)
		assert.Equal(t, at(8), result[0].EndTime)
		assert.Equal(t, "7:00 AM", result[0].DisplayLabel)

		last := result[len(result)-1]
		assert.Equal(t, at(23), last.StartTime)
		assert.Equal(t, at(24), last.EndTime)
		assert.Equal(t, "11:00 PM", last.DisplayLabel)

		// Ascending, hour-wide, contiguous.
		for i := 1; i < len(result); i++ {
			assert.Equal(t, result[i-1].EndTime, result[i].StartTime)
			assert.Equal(t, time.Hour, result[i].EndTime.Sub(result[i].StartTime))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := Generate(baseDate, 9, 12)
		require.NoError(t, err)
		b, err := Generate(baseDate, 9, 12)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("inverted window returns empty", func(t *testing.T) {
		result, err := Generate(baseDate, 18, 9)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("equal bounds returns empty", func(t *testing.T) {
		result, err := Generate(baseDate, 9, 9)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("out of range window rejected", func(t *testing.T) {
		_, err := Generate(baseDate, -1, 12)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = Generate(baseDate, 7, 25)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("anchored to given date", func(t *testing.T) {
		noon := time.Date(2024, 6, 15, 12, 34, 56, 0, time.UTC)
		result, err := Generate(noon, 7, 9)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, at(7), result[0].StartTime)
	})
}

func TestGenerateWithin(t *testing.T) {
	windows := []Interval{
		{Start: at(9), End: at(11)},
		{Start: at(14), End: at(15)},
	}

	result, err := GenerateWithin(baseDate, windows)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, at(9), result[0].StartTime)
	assert.Equal(t, at(10), result[1].StartTime)
	assert.Equal(t, at(14), result[2].StartTime)
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:00 AM"},
		{7, "7:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayLabel(at(tt.hour)))
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{at(9), at(10)}, Interval{at(11), at(12)}, false},
		{"touching boundary is not overlap", Interval{at(9), at(10)}, Interval{at(10), at(11)}, false},
		{"partial", Interval{at(9), at(11)}, Interval{at(10), at(12)}, true},
		{"contained", Interval{at(9), at(13)}, Interval{at(10), at(11)}, true},
		{"identical", Interval{at(9), at(10)}, Interval{at(9), at(10)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	existing := []Interval{
		{Start: at(10), End: at(12)},
		{Start: at(15), End: at(16)},
	}

	assert.True(t, OverlapsAny(Interval{at(11), at(13)}, existing))
	assert.False(t, OverlapsAny(Interval{at(12), at(15)}, existing))
	assert.False(t, OverlapsAny(Interval{at(8), at(9)}, nil))
}

func TestValidateWindows(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateWindows([]Interval{
			{Start: at(9), End: at(11)},
			{Start: at(11), End: at(13)},
		})
		assert.NoError(t, err)
	})

	t.Run("start after end", func(t *testing.T) {
		err := ValidateWindows([]Interval{{Start: at(11), End: at(9)}})
		assert.ErrorIs(t, err, ErrWindowOrder)
	})

	t.Run("zero width", func(t *testing.T) {
		err := ValidateWindows([]Interval{{Start: at(9), End: at(9)}})
		assert.ErrorIs(t, err, ErrWindowOrder)
	})

	t.Run("overlapping pair", func(t *testing.T) {
		err := ValidateWindows([]Interval{
			{Start: at(9), End: at(12)},
			{Start: at(11), End: at(13)},
		})
		assert.ErrorIs(t, err, ErrWindowOverlap)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.NoError(t, ValidateWindows(nil))
	})
}
