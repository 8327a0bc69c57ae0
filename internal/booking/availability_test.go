package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandertrails/guide-booking-backend/internal/guide"
)

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func approvedGuide(id, userID string) *guide.Guide {
	return &guide.Guide{
		ID:              id,
		UserID:          userID,
		HourlyRateCents: 5000,
		IsApproved:      true,
	}
}

func slotStarts(slots []TimeWindow) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartClock()
	}
	return out
}

func collect(t *testing.T, ctx context.Context, e *AvailabilityEngine, guideID string, date time.Time) []TimeWindow {
	t.Helper()
	seq, err := e.AvailableSlots(ctx, guideID, date)
	require.NoError(t, err)

	var slots []TimeWindow
	for s := range seq {
		slots = append(slots, s)
	}
	return slots
}

func TestAvailabilityEngineConflictExists(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
	engine := NewAvailabilityEngine(repo, guides)

	repo.add(&Booking{
		UserID:      "u1",
		GuideID:     "g1",
		BookingDate: testDate(),
		Window:      TimeWindow{10 * 60, 12 * 60},
		Status:      StatusConfirmed,
	})

	t.Run("overlap detected", func(t *testing.T) {
		conflict, err := engine.ConflictExists(ctx, "g1", testDate(), TimeWindow{11 * 60, 13 * 60})
		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("adjacent windows do not conflict", func(t *testing.T) {
		conflict, err := engine.ConflictExists(ctx, "g1", testDate(), TimeWindow{12 * 60, 13 * 60})
		require.NoError(t, err)
		assert.False(t, conflict)

		conflict, err = engine.ConflictExists(ctx, "g1", testDate(), TimeWindow{9 * 60, 10 * 60})
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("other date is free", func(t *testing.T) {
		conflict, err := engine.ConflictExists(ctx, "g1", testDate().AddDate(0, 0, 1), TimeWindow{10 * 60, 12 * 60})
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("other guide is free", func(t *testing.T) {
		conflict, err := engine.ConflictExists(ctx, "g2", testDate(), TimeWindow{10 * 60, 12 * 60})
		require.NoError(t, err)
		assert.False(t, conflict)
	})
}

func TestAvailabilityEngineAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("empty day exposes all working-hour slots", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		engine := NewAvailabilityEngine(repo, guides)

		slots := collect(t, ctx, engine, "g1", testDate())
		assert.Equal(t,
			[]string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
			slotStarts(slots))
	})

	t.Run("partially covered hours are blocked whole", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		engine := NewAvailabilityEngine(repo, guides)

		// Covers half of the 10:00 slot and half of the 11:00 slot.
		repo.add(&Booking{
			GuideID:     "g1",
			BookingDate: testDate(),
			Window:      TimeWindow{10*60 + 30, 11*60 + 30},
			Status:      StatusPending,
		})

		slots := collect(t, ctx, engine, "g1", testDate())
		assert.Equal(t,
			[]string{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
			slotStarts(slots))
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		engine := NewAvailabilityEngine(repo, guides)

		repo.add(&Booking{
			GuideID:     "g1",
			BookingDate: testDate(),
			Window:      TimeWindow{9 * 60, 18 * 60},
			Status:      StatusCancelled,
		})

		slots := collect(t, ctx, engine, "g1", testDate())
		assert.Len(t, slots, 9)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		engine := NewAvailabilityEngine(repo, guides)

		seq, err := engine.AvailableSlots(ctx, "g1", testDate())
		require.NoError(t, err)

		count := func() int {
			n := 0
			for range seq {
				n++
			}
			return n
		}
		assert.Equal(t, 9, count())
		assert.Equal(t, 9, count())
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		repo := newFakeRepository()
		guides := &fakeGuideService{guides: []*guide.Guide{approvedGuide("g1", "u-guide")}}
		engine := NewAvailabilityEngine(repo, guides)

		seq, err := engine.AvailableSlots(ctx, "g1", testDate())
		require.NoError(t, err)

		var first TimeWindow
		for s := range seq {
			first = s
			break
		}
		assert.Equal(t, "09:00", first.StartClock())
	})

	t.Run("unknown guide", func(t *testing.T) {
		repo := newFakeRepository()
		engine := NewAvailabilityEngine(repo, &fakeGuideService{})

		_, err := engine.AvailableSlots(ctx, "nope", testDate())
		assert.ErrorIs(t, err, ErrGuideNotFound)
	})
}
