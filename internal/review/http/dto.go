package http

import (
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
	"github.com/wandertrails/guide-booking-backend/internal/review"
)

// ListReviewsRequest defines query parameters for listing reviews.
type ListReviewsRequest struct {
	request.ListParams
	TripID string `form:"trip_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// Validate performs custom validation for ListReviewsRequest.
func (r *ListReviewsRequest) Validate() error {
	return nil
}

// ReviewResponse is the shape of review data returned in API responses.
type ReviewResponse struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse converts a domain review.Review to its API representation.
func NewReviewResponse(rev *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rev.ID,
		TripID:    rev.TripID,
		UserID:    rev.UserID,
		UserName:  rev.UserName,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
		UpdatedAt: rev.UpdatedAt,
	}
}

// CreateReviewRequest defines the payload for creating a review.
type CreateReviewRequest struct {
	TripID  string `json:"trip_id" binding:"required,uuid"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

// UpdateReviewRequest defines the payload for updating a review.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}
