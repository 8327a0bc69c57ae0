package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
)

// fakeRepository is an in-memory Repository for service and engine tests.
type fakeRepository struct {
	bookings map[string]*Booking
	nextID   int

	// beforeUpdateStatus runs before each compare-and-set, letting tests
	// simulate a concurrent writer.
	beforeUpdateStatus func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[string]*Booking)}
}

func (r *fakeRepository) add(b *Booking) *Booking {
	r.nextID++
	cp := *b
	cp.ID = fmt.Sprintf("booking-%d", r.nextID)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
	}
	r.bookings[cp.ID] = &cp
	return &cp
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.GuideID != "" && b.GuideID != filter.GuideID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		// Date bounds are inclusive on both ends.
		if filter.DateFrom != nil && b.BookingDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && b.BookingDate.After(*filter.DateTo) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	// Newest first, matching the SQL ordering.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.After(out[j].BookingDate)
		}
		return out[i].Window.Start > out[j].Window.Start
	})
	return out, len(out), nil
}

func (r *fakeRepository) ListActiveForGuideDate(_ context.Context, guideID string, date time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.GuideID != guideID || !b.BookingDate.Equal(date) || b.Status == StatusCancelled {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepository) CreateIfFree(ctx context.Context, b *Booking) error {
	active, err := r.ListActiveForGuideDate(ctx, b.GuideID, b.BookingDate)
	if err != nil {
		return err
	}
	for _, existing := range active {
		if b.Window.Overlaps(existing.Window) {
			return ErrSlotUnavailable
		}
	}
	created := r.add(b)
	*b = *created
	return nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, id string, from, to Status, notes *string) (bool, error) {
	if r.beforeUpdateStatus != nil {
		r.beforeUpdateStatus()
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if notes != nil {
		b.Notes = *notes
	}
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// fakeGuideService serves guide lookups from a fixed set of profiles.
// Mutating operations are never exercised by booking tests.
type fakeGuideService struct {
	guides []*guide.Guide
}

func (s *fakeGuideService) GetByID(_ context.Context, id string) (*guide.Guide, error) {
	for _, g := range s.guides {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, guide.ErrNotFound
}

func (s *fakeGuideService) GetByUserID(_ context.Context, userID string) (*guide.Guide, error) {
	for _, g := range s.guides {
		if g.UserID == userID {
			return g, nil
		}
	}
	return nil, guide.ErrNotFound
}

func (s *fakeGuideService) Register(context.Context, string, guide.RegisterRequest) (*guide.Guide, error) {
	panic("not used in tests")
}

func (s *fakeGuideService) List(context.Context, guide.Filter) ([]*guide.Guide, int, error) {
	panic("not used in tests")
}

func (s *fakeGuideService) Update(context.Context, string, guide.UpdateRequest, auth.Actor) (*guide.Guide, error) {
	panic("not used in tests")
}

func (s *fakeGuideService) SetApproval(context.Context, string, bool) (*guide.Guide, error) {
	panic("not used in tests")
}

func (s *fakeGuideService) Delete(context.Context, string, auth.Actor) error {
	panic("not used in tests")
}
