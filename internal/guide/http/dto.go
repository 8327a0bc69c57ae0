package http

import (
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
)

// ListGuidesRequest defines query parameters for listing guides.
type ListGuidesRequest struct {
	request.ListParams
	City       string `form:"city"`
	IsApproved *bool  `form:"is_approved"`
}

// Validate performs custom validation for ListGuidesRequest.
func (r *ListGuidesRequest) Validate() error {
	return nil
}

// GuideResponse is the shape of guide data returned in API responses.
type GuideResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	City        string    `json:"city"`
	HourlyRate  float64   `json:"hourly_rate"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GuideTag is a brief representation of a guide.
type GuideTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewGuideResponse converts a domain guide.Guide to its API representation.
func NewGuideResponse(g *guide.Guide) GuideResponse {
	return GuideResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		DisplayName: g.DisplayName,
		Bio:         g.Bio,
		City:        g.City,
		HourlyRate:  float64(g.HourlyRateCents) / 100,
		IsApproved:  g.IsApproved,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// RegisterGuideRequest defines the payload for registering as a guide.
// hourly_rate is expressed in major currency units (e.g. 40.50).
type RegisterGuideRequest struct {
	Bio        string  `json:"bio" binding:"required"`
	City       string  `json:"city" binding:"required"`
	HourlyRate float64 `json:"hourly_rate" binding:"min=0"`
}

// UpdateGuideRequest defines the payload for updating a guide profile.
type UpdateGuideRequest struct {
	Bio        *string  `json:"bio"`
	City       *string  `json:"city"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,min=0"`
}

// SetApprovalRequest defines the payload for the admin approval toggle.
type SetApprovalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// RateToCents converts a major-unit rate into integer cents.
func RateToCents(rate float64) int64 {
	return int64(rate*100 + 0.5)
}
