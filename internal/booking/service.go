package booking

import (
	"context"
	"errors"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

type CreateRequest struct {
	GuideID string
	Date    time.Time
	Window  TimeWindow
	Notes   string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor auth.Actor) (*Booking, error)
	GetByID(ctx context.Context, id string, actor auth.Actor) (*Booking, error)
	List(ctx context.Context, filter Filter, actor auth.Actor) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, target Status, notes *string, actor auth.Actor) (*Booking, error)
	Delete(ctx context.Context, id string, actor auth.Actor) error
	AvailableSlots(ctx context.Context, guideID string, date time.Time) ([]TimeWindow, error)
}

type service struct {
	repo    Repository
	guides  guide.Service
	engine  *AvailabilityEngine
	pricing PriceCalculator
	now     func() time.Time
}

func NewService(repo Repository, guides guide.Service, engine *AvailabilityEngine, pricing PriceCalculator) Service {
	return &service{
		repo:    repo,
		guides:  guides,
		engine:  engine,
		pricing: pricing,
		now:     time.Now,
	}
}

// relationship resolves how the actor relates to the booking. The guide
// lookup only happens when the cheaper checks do not already decide it.
func (s *service) relationship(ctx context.Context, b *Booking, actor auth.Actor) (Relationship, error) {
	if actor.Role == user.RoleAdmin {
		return RelationshipAdmin, nil
	}
	if b.UserID == actor.UserID {
		return RelationshipOwner, nil
	}
	if actor.Role == user.RoleGuide {
		g, err := s.guides.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, guide.ErrNotFound) {
				return RelationshipNone, nil
			}
			return RelationshipNone, err
		}
		if g.ID == b.GuideID {
			return RelationshipGuideOwner, nil
		}
	}
	return RelationshipNone, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor auth.Actor) (*Booking, error) {
	if len(req.Notes) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	// The booking date must be strictly after today.
	today := s.now().UTC().Truncate(24 * time.Hour)
	date := req.Date.UTC().Truncate(24 * time.Hour)
	if !date.After(today) {
		return nil, ErrDateNotFuture
	}

	g, err := s.guides.GetByID(ctx, req.GuideID)
	if err != nil {
		if errors.Is(err, guide.ErrNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	if !g.IsApproved {
		return nil, ErrGuideNotApproved
	}

	conflict, err := s.engine.ConflictExists(ctx, req.GuideID, date, req.Window)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotUnavailable
	}

	booking := &Booking{
		UserID:          actor.UserID,
		GuideID:         req.GuideID,
		BookingDate:     date,
		Window:          req.Window,
		TotalPriceCents: s.pricing.Compute(req.Window, g.HourlyRateCents),
		Status:          StatusPending,
		Notes:           req.Notes,
	}

	// The insert re-checks the conflict inside its transaction, so a race
	// between the check above and the insert still cannot double-book.
	if err := s.repo.CreateIfFree(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id string, actor auth.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relationship(ctx, b, actor)
	if err != nil {
		return nil, err
	}
	if rel == RelationshipNone {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter, actor auth.Actor) ([]*Booking, int, error) {
	switch actor.Role {
	case user.RoleAdmin:
		// Admins see everything the filter asks for.
	case user.RoleGuide:
		g, err := s.guides.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, guide.ErrNotFound) {
				return nil, 0, ErrGuideNotFound
			}
			return nil, 0, err
		}
		filter.GuideID = g.ID
	default:
		filter.UserID = actor.UserID
	}

	return s.repo.List(ctx, filter)
}

// UpdateStatus moves the booking to target, optionally replacing its notes in
// the same write.
func (s *service) UpdateStatus(ctx context.Context, id string, target Status, notes *string, actor auth.Actor) (*Booking, error) {
	if notes != nil && len(*notes) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relationship(ctx, b, actor)
	if err != nil {
		return nil, err
	}

	// One transparent retry when the row changed under us.
	for attempt := 0; attempt < 2; attempt++ {
		if err := Transition(b.Status, rel, target); err != nil {
			return nil, err
		}

		ok, err := s.repo.UpdateStatus(ctx, id, b.Status, target, notes)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.repo.GetByID(ctx, id)
		}

		b, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return nil, ErrConcurrentModification
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != user.RoleAdmin && b.UserID != actor.UserID {
		return ErrPermissionDenied
	}
	if b.Status != StatusPending && b.Status != StatusCancelled {
		return ErrInvalidState
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) AvailableSlots(ctx context.Context, guideID string, date time.Time) ([]TimeWindow, error) {
	seq, err := s.engine.AvailableSlots(ctx, guideID, date.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	var slots []TimeWindow
	for slot := range seq {
		slots = append(slots, slot)
	}
	return slots, nil
}
