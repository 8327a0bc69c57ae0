package booking

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/guide"
)

// Working hours within which bookable slots are enumerated.
const (
	workingHoursStart = 9 * 60  // 09:00
	workingHoursEnd   = 18 * 60 // 18:00
	slotLengthMinutes = 60
)

// AvailabilityEngine answers conflict and free-slot questions for a guide's
// calendar day. Cancelled bookings never block a window.
type AvailabilityEngine struct {
	repo   Repository
	guides guide.Service
}

func NewAvailabilityEngine(repo Repository, guides guide.Service) *AvailabilityEngine {
	return &AvailabilityEngine{
		repo:   repo,
		guides: guides,
	}
}

// ConflictExists reports whether the window overlaps any active booking for
// the guide on the given date.
func (e *AvailabilityEngine) ConflictExists(ctx context.Context, guideID string, date time.Time, window TimeWindow) (bool, error) {
	active, err := e.repo.ListActiveForGuideDate(ctx, guideID, date)
	if err != nil {
		return false, err
	}

	for _, b := range active {
		if window.Overlaps(b.Window) {
			return true, nil
		}
	}
	return false, nil
}

// AvailableSlots returns the free fixed-length slots within working hours for
// the guide on the given date. The returned sequence is lazy and can be
// ranged over multiple times.
//
// Slots are hour-aligned regardless of existing bookings' exact boundaries:
// a booking partially covering an hour blocks that entire hour.
func (e *AvailabilityEngine) AvailableSlots(ctx context.Context, guideID string, date time.Time) (iter.Seq[TimeWindow], error) {
	if _, err := e.guides.GetByID(ctx, guideID); err != nil {
		if errors.Is(err, guide.ErrNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}

	active, err := e.repo.ListActiveForGuideDate(ctx, guideID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]TimeWindow, len(active))
	for i, b := range active {
		busy[i] = b.Window
	}

	return freeSlots(busy), nil
}

// freeSlots enumerates hour-aligned candidate slots within working hours,
// skipping any slot that overlaps a busy window.
func freeSlots(busy []TimeWindow) iter.Seq[TimeWindow] {
	return func(yield func(TimeWindow) bool) {
		for start := workingHoursStart; start+slotLengthMinutes <= workingHoursEnd; start += slotLengthMinutes {
			slot := TimeWindow{Start: start, End: start + slotLengthMinutes}

			blocked := false
			for _, w := range busy {
				if slot.Overlaps(w) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			if !yield(slot) {
				return
			}
		}
	}
}
