package review

import (
	"net/http"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/apperror"
)

const maxCommentLength = 1000

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "review not found")
	ErrTripNotFound     = apperror.New(http.StatusNotFound, "trip not found")
	ErrAlreadyReviewed  = apperror.New(http.StatusConflict, "trip already reviewed by this user")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrCommentTooLong   = apperror.New(http.StatusBadRequest, "comment is too long")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Review is a traveler's rating of a trip.
type Review struct {
	ID        string
	TripID    string
	UserID    string
	UserName  string // joined from users
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing reviews.
type Filter struct {
	TripID string
	UserID string

	Page     int
	PageSize int
}
