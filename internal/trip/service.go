package trip

import (
	"context"
	"errors"
	"strings"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

type CreateRequest struct {
	Title         string
	Description   string
	City          string
	DurationHours int
	PriceCents    int64
}

type UpdateRequest struct {
	Title         *string
	Description   *string
	City          *string
	DurationHours *int
	PriceCents    *int64
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Trip, error)
	GetByID(ctx context.Context, id string) (*Trip, error)
	List(ctx context.Context, filter Filter) ([]*Trip, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Trip, error)
	Delete(ctx context.Context, id string, actor auth.Actor) error
}

type service struct {
	repo         Repository
	guideService guide.Service
}

func NewService(repo Repository, guideService guide.Service) Service {
	return &service{
		repo:         repo,
		guideService: guideService,
	}
}

// canManage reports whether the actor owns the guide profile behind the trip or is an admin.
func (s *service) canManage(ctx context.Context, guideID string, actor auth.Actor) (bool, error) {
	if actor.Role == user.RoleAdmin {
		return true, nil
	}
	g, err := s.guideService.GetByID(ctx, guideID)
	if err != nil {
		return false, err
	}
	return g.UserID == actor.UserID, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Trip, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if req.DurationHours <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.PriceCents < 0 {
		return nil, ErrNegativePrice
	}

	// The actor must own an approved guide profile.
	g, err := s.guideService.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, guide.ErrNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	if !g.IsApproved {
		return nil, ErrGuideNotApproved
	}

	t := &Trip{
		GuideID:       g.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		City:          strings.TrimSpace(req.City),
		DurationHours: req.DurationHours,
		PriceCents:    req.PriceCents,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	t.GuideName = g.DisplayName
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Trip, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Trip, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canManage(ctx, t.GuideID, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.City != nil {
		t.City = strings.TrimSpace(*req.City)
	}
	if req.DurationHours != nil {
		if *req.DurationHours <= 0 {
			return nil, ErrInvalidDuration
		}
		t.DurationHours = *req.DurationHours
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, ErrNegativePrice
		}
		t.PriceCents = *req.PriceCents
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.canManage(ctx, t.GuideID, actor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
