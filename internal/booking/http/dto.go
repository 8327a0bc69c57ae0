package http

import (
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/booking"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

// CreateBookingRequest defines the payload for booking a guide.
// Times are clock strings in HH:MM, the date is YYYY-MM-DD.
type CreateBookingRequest struct {
	GuideID   string `json:"guide_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Notes     string `json:"notes"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	GuideID  string `form:"guide_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// UpdateBookingStatusRequest defines the payload for a status change.
// Notes, when present, replace the booking's notes in the same write.
type UpdateBookingStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// AvailabilityRequest defines query parameters for the free-slot lookup.
type AvailabilityRequest struct {
	Date string `form:"date" binding:"required"`
}

// BookingResponse is the shape of booking data returned in API responses.
type BookingResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	GuideID    string    `json:"guide_id"`
	GuideName  string    `json:"guide_name"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking.Booking to its API representation.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		UserName:   b.UserName,
		GuideID:    b.GuideID,
		GuideName:  b.GuideName,
		Date:       b.BookingDate.Format(dateLayout),
		StartTime:  b.Window.StartClock(),
		EndTime:    b.Window.EndClock(),
		TotalPrice: float64(b.TotalPriceCents) / 100,
		Status:     b.Status.String(),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// SlotResponse is a single free time slot.
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// NewSlotResponses converts free windows into their API representation.
func NewSlotResponses(slots []booking.TimeWindow) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{StartTime: s.StartClock(), EndTime: s.EndClock()}
	}
	return out
}
