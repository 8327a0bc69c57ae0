package guide

import (
	"net/http"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "guide not found")
	ErrAlreadyExists    = apperror.New(http.StatusConflict, "guide profile already exists for this user")
	ErrNegativeRate     = apperror.New(http.StatusBadRequest, "hourly rate cannot be negative")
	ErrEmptyBio         = apperror.New(http.StatusBadRequest, "bio cannot be empty")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Guide represents a tour guide profile owned by a user.
// A guide must be approved by an admin before accepting bookings.
type Guide struct {
	ID              string
	UserID          string
	DisplayName     string // joined from users
	Bio             string
	City            string
	HourlyRateCents int64
	IsApproved      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing guides.
type Filter struct {
	City       string
	IsApproved *bool

	Page     int
	PageSize int
}
