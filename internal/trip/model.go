package trip

import (
	"net/http"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "trip not found")
	ErrEmptyTitle       = apperror.New(http.StatusBadRequest, "title cannot be empty")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of hours")
	ErrNegativePrice    = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrGuideNotFound    = apperror.New(http.StatusNotFound, "guide not found")
	ErrGuideNotApproved = apperror.New(http.StatusUnprocessableEntity, "guide is not approved")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Trip is a tour listing published by a guide.
type Trip struct {
	ID            string
	GuideID       string
	GuideName     string // joined from users via guides
	Title         string
	Description   string
	City          string
	DurationHours int
	PriceCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing trips.
type Filter struct {
	GuideID string
	City    string

	Page     int
	PageSize int
}
