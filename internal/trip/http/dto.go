package http

import (
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
	"github.com/wandertrails/guide-booking-backend/internal/trip"
)

// ListTripsRequest defines query parameters for listing trips.
type ListTripsRequest struct {
	request.ListParams
	GuideID string `form:"guide_id" binding:"omitempty,uuid"`
	City    string `form:"city"`
}

// Validate performs custom validation for ListTripsRequest.
func (r *ListTripsRequest) Validate() error {
	return nil
}

// TripResponse is the shape of trip data returned in API responses.
type TripResponse struct {
	ID            string    `json:"id"`
	GuideID       string    `json:"guide_id"`
	GuideName     string    `json:"guide_name"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	City          string    `json:"city"`
	DurationHours int       `json:"duration_hours"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTripResponse converts a domain trip.Trip to its API representation.
func NewTripResponse(t *trip.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		GuideID:       t.GuideID,
		GuideName:     t.GuideName,
		Title:         t.Title,
		Description:   t.Description,
		City:          t.City,
		DurationHours: t.DurationHours,
		Price:         float64(t.PriceCents) / 100,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// CreateTripRequest defines the payload for creating a trip listing.
type CreateTripRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	City          string  `json:"city" binding:"required"`
	DurationHours int     `json:"duration_hours" binding:"required,min=1"`
	Price         float64 `json:"price" binding:"min=0"`
}

// UpdateTripRequest defines the payload for updating a trip listing.
type UpdateTripRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	City          *string  `json:"city"`
	DurationHours *int     `json:"duration_hours" binding:"omitempty,min=1"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
}

// priceToCents converts a major-unit price into integer cents.
func priceToCents(price float64) int64 {
	return int64(price*100 + 0.5)
}
