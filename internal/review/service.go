package review

import (
	"context"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

type CreateRequest struct {
	TripID  string
	Rating  int
	Comment string
}

type UpdateRequest struct {
	Rating  *int
	Comment *string
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Review, error)
	Delete(ctx context.Context, id string, actor auth.Actor) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Review, error) {
	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	if len(req.Comment) > maxCommentLength {
		return nil, ErrCommentTooLong
	}

	rev := &Review{
		TripID:  req.TripID,
		UserID:  actor.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Review, error) {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rev.UserID != actor.UserID && actor.Role != user.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		rev.Rating = *req.Rating
	}
	if req.Comment != nil {
		if len(*req.Comment) > maxCommentLength {
			return nil, ErrCommentTooLong
		}
		rev.Comment = *req.Comment
	}

	if err := s.repo.Update(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if rev.UserID != actor.UserID && actor.Role != user.RoleAdmin {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
