package booking

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// TimeWindow is a half-open interval [Start, End) of minutes since midnight
// on a single calendar date. All dates are naive local time-of-day.
type TimeWindow struct {
	Start int
	End   int
}

// NewTimeWindow builds a window from minute offsets, rejecting empty or
// inverted ranges and offsets outside the day.
func NewTimeWindow(startMinute, endMinute int) (TimeWindow, error) {
	if startMinute < 0 || endMinute > minutesPerDay {
		return TimeWindow{}, ErrInvalidClock
	}
	if endMinute <= startMinute {
		return TimeWindow{}, ErrInvalidTimeRange
	}
	return TimeWindow{Start: startMinute, End: endMinute}, nil
}

// ParseTimeWindow builds a window from "HH:MM" clock strings.
func ParseTimeWindow(start, end string) (TimeWindow, error) {
	startMinute, err := parseClock(start)
	if err != nil {
		return TimeWindow{}, err
	}
	endMinute, err := parseClock(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindow(startMinute, endMinute)
}

// DurationHours returns the window length in fractional hours.
func (w TimeWindow) DurationHours() float64 {
	return float64(w.End-w.Start) / 60
}

// Overlaps reports whether two half-open intervals intersect.
// A window ending exactly when another starts does not overlap it.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// StartClock returns the start of the window as "HH:MM".
func (w TimeWindow) StartClock() string {
	return formatClock(w.Start)
}

// EndClock returns the end of the window as "HH:MM".
func (w TimeWindow) EndClock() string {
	return formatClock(w.End)
}

func (w TimeWindow) String() string {
	return w.StartClock() + "-" + w.EndClock()
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
