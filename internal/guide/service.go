package guide

import (
	"context"
	"strings"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

type RegisterRequest struct {
	Bio             string
	City            string
	HourlyRateCents int64
}

type UpdateRequest struct {
	Bio             *string
	City            *string
	HourlyRateCents *int64
}

type Service interface {
	Register(ctx context.Context, userID string, req RegisterRequest) (*Guide, error)
	GetByID(ctx context.Context, id string) (*Guide, error)
	GetByUserID(ctx context.Context, userID string) (*Guide, error)
	List(ctx context.Context, filter Filter) ([]*Guide, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Guide, error)
	SetApproval(ctx context.Context, id string, approved bool) (*Guide, error)
	Delete(ctx context.Context, id string, actor auth.Actor) error
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Register(ctx context.Context, userID string, req RegisterRequest) (*Guide, error) {
	if strings.TrimSpace(req.Bio) == "" {
		return nil, ErrEmptyBio
	}
	if req.HourlyRateCents < 0 {
		return nil, ErrNegativeRate
	}

	g := &Guide{
		UserID:          userID,
		Bio:             strings.TrimSpace(req.Bio),
		City:            strings.TrimSpace(req.City),
		HourlyRateCents: req.HourlyRateCents,
		IsApproved:      false, // requires admin approval before taking bookings
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	// Promote the owning user to the guide role so future tokens carry it.
	if _, err := s.userService.SetRole(ctx, userID, user.RoleGuide); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Guide, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Guide, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Guide, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Guide, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if g.UserID != actor.UserID && actor.Role != user.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	if req.Bio != nil {
		if strings.TrimSpace(*req.Bio) == "" {
			return nil, ErrEmptyBio
		}
		g.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.City != nil {
		g.City = strings.TrimSpace(*req.City)
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents < 0 {
			return nil, ErrNegativeRate
		}
		g.HourlyRateCents = *req.HourlyRateCents
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) SetApproval(ctx context.Context, id string, approved bool) (*Guide, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g.IsApproved = approved
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if g.UserID != actor.UserID && actor.Role != user.RoleAdmin {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
