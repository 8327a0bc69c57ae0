package http

import (
	"time"

	"github.com/wandertrails/guide-booking-backend/internal/photo"
)

// PhotoResponse is the shape of photo metadata returned in API responses.
type PhotoResponse struct {
	ID           string    `json:"id"`
	TripID       string    `json:"trip_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewPhotoResponse converts a domain photo.Photo to its API representation.
func NewPhotoResponse(p *photo.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		TripID:      p.TripID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
		URL:         photo.PhotoURL(p.ID),
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailPath != nil {
		url := photo.ThumbnailURL(p.ID)
		resp.ThumbnailURL = &url
	}
	return resp
}
