package photo

import (
	"net/http"
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "photo not found")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "photo has no thumbnail")
	ErrTripNotFound     = apperror.New(http.StatusNotFound, "trip not found")
	ErrNotAnImage       = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrFileTooLarge     = apperror.New(http.StatusBadRequest, "uploaded file is too large")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Photo is an image attached to a trip listing.
type Photo struct {
	ID            string    `json:"id"`
	TripID        string    `json:"trip_id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for accessing a photo by its ID.
func PhotoURL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for accessing a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
