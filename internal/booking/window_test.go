package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := NewTimeWindow(9*60, 10*60+30)
		require.NoError(t, err)
		assert.Equal(t, "09:00", w.StartClock())
		assert.Equal(t, "10:30", w.EndClock())
	})

	t.Run("end must be after start", func(t *testing.T) {
		_, err := NewTimeWindow(10*60, 10*60)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = NewTimeWindow(11*60, 10*60)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("out of day bounds", func(t *testing.T) {
		_, err := NewTimeWindow(-1, 60)
		assert.ErrorIs(t, err, ErrInvalidClock)

		_, err = NewTimeWindow(0, 24*60+1)
		assert.ErrorIs(t, err, ErrInvalidClock)
	})

	t.Run("full day is allowed", func(t *testing.T) {
		w, err := NewTimeWindow(0, 24*60)
		require.NoError(t, err)
		assert.Equal(t, 24.0, w.DurationHours())
	})
}

func TestParseTimeWindow(t *testing.T) {
	t.Run("parses clock strings", func(t *testing.T) {
		w, err := ParseTimeWindow("09:15", "11:45")
		require.NoError(t, err)
		assert.Equal(t, 9*60+15, w.Start)
		assert.Equal(t, 11*60+45, w.End)
		assert.Equal(t, 2.5, w.DurationHours())
	})

	t.Run("rejects malformed clocks", func(t *testing.T) {
		_, err := ParseTimeWindow("9am", "11:00")
		assert.ErrorIs(t, err, ErrInvalidClock)

		_, err = ParseTimeWindow("09:00", "25:00")
		assert.ErrorIs(t, err, ErrInvalidClock)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := ParseTimeWindow("14:00", "13:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestTimeWindowOverlaps(t *testing.T) {
	base := TimeWindow{Start: 10 * 60, End: 12 * 60}

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{"identical", TimeWindow{10 * 60, 12 * 60}, true},
		{"contained", TimeWindow{10*60 + 30, 11 * 60}, true},
		{"overlaps start", TimeWindow{9 * 60, 10*60 + 30}, true},
		{"overlaps end", TimeWindow{11*60 + 30, 13 * 60}, true},
		{"spans whole", TimeWindow{9 * 60, 13 * 60}, true},
		{"adjacent before", TimeWindow{9 * 60, 10 * 60}, false},
		{"adjacent after", TimeWindow{12 * 60, 13 * 60}, false},
		{"disjoint", TimeWindow{14 * 60, 15 * 60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeWindowString(t *testing.T) {
	w := TimeWindow{Start: 9 * 60, End: 17*60 + 5}
	assert.Equal(t, "09:00-17:05", w.String())
}
