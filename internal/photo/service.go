package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/storage"
	"github.com/wandertrails/guide-booking-backend/internal/trip"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

const (
	maxPhotoSizeBytes = 5 << 20 // 5 MiB
	thumbnailMaxEdge  = 200
)

type Service interface {
	Upload(ctx context.Context, tripID string, header *multipart.FileHeader, actor auth.Actor) (*Photo, error)
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByTrip(ctx context.Context, tripID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id string, actor auth.Actor) error
}

type service struct {
	repo    Repository
	trips   trip.Service
	guides  guide.Service
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, trips trip.Service, guides guide.Service, store storage.Storage) Service {
	return &service{
		repo:    repo,
		trips:   trips,
		guides:  guides,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

// canManage reports whether the actor owns the guide profile behind the trip or is an admin.
func (s *service) canManage(ctx context.Context, guideID string, actor auth.Actor) (bool, error) {
	if actor.Role == user.RoleAdmin {
		return true, nil
	}
	g, err := s.guides.GetByID(ctx, guideID)
	if err != nil {
		return false, err
	}
	return g.UserID == actor.UserID, nil
}

func (s *service) Upload(ctx context.Context, tripID string, header *multipart.FileHeader, actor auth.Actor) (*Photo, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	ok, err := s.canManage(ctx, t.GuideID, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if header.Size > maxPhotoSizeBytes {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice: once for the original,
	// once for the thumbnail.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read file content failed: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: trips/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("trips/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save photo to storage failed: %w", err)
	}

	// Thumbnail generation is best effort. A photo without a thumbnail is
	// still usable.
	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), thumbnailMaxEdge, thumbnailMaxEdge); err == nil {
		tPath := fmt.Sprintf("trips/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		TripID:        tripID,
		UserID:        actor.UserID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Cleanup storage if the record cannot be written.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByTrip(ctx context.Context, tripID string) ([]*Photo, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return s.repo.ListByTrip(ctx, tripID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, ErrNoThumbnail
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	t, err := s.trips.GetByID(ctx, p.TripID)
	if err != nil && !errors.Is(err, trip.ErrNotFound) {
		return err
	}

	allowed := actor.Role == user.RoleAdmin || p.UserID == actor.UserID
	if !allowed && t != nil {
		allowed, err = s.canManage(ctx, t.GuideID, actor)
		if err != nil {
			return err
		}
	}
	if !allowed {
		return ErrPermissionDenied
	}

	// Storage cleanup is best effort, the record is the source of truth.
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
