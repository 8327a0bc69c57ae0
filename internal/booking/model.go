package booking

import (
	"net/http"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/apperror"
)

const maxNotesLength = 500

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, "booking not found")
	ErrGuideNotFound          = apperror.New(http.StatusNotFound, "guide not found")
	ErrGuideNotApproved       = apperror.New(http.StatusUnprocessableEntity, "guide is not approved for bookings")
	ErrSlotUnavailable        = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange       = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrInvalidClock           = apperror.New(http.StatusBadRequest, "time must be in HH:MM format")
	ErrDateNotFuture          = apperror.New(http.StatusBadRequest, "booking date must be after today")
	ErrInvalidStatus          = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrNotesTooLong           = apperror.New(http.StatusBadRequest, "notes are too long")
	ErrPermissionDenied       = apperror.New(http.StatusForbidden, "permission denied")
	ErrIllegalTransition      = apperror.New(http.StatusUnprocessableEntity, "status transition not allowed")
	ErrInvalidState           = apperror.New(http.StatusConflict, "operation not allowed in current booking status")
	ErrConcurrentModification = apperror.New(http.StatusConflict, "booking was modified concurrently")
	ErrStorageUnavailable     = apperror.New(http.StatusServiceUnavailable, "storage temporarily unavailable")
)

// Booking reserves a guide for a time window on a calendar date.
// The price is computed once at creation and never recomputed.
type Booking struct {
	ID              string
	UserID          string
	UserName        string // joined from users
	GuideID         string
	GuideName       string // joined from users via guides
	BookingDate     time.Time
	Window          TimeWindow
	TotalPriceCents int64
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing bookings.
// DateFrom and DateTo are inclusive on both ends.
type Filter struct {
	UserID   string
	GuideID  string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time

	Page     int
	PageSize int
}
