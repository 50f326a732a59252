package upload

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	"profilewizard/internal/services/validation"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Service validates photos and hands them to a PhotoStore.
type Service struct {
	photos domain.PhotoStore
	log    logr.Logger
	now    func() time.Time
}

// New returns an upload service writing to photos.
func New(photos domain.PhotoStore, log logr.Logger) *Service {
	return &Service{photos: photos, log: log.WithName("upload"), now: time.Now}
}

// UploadPhoto stores photo and returns its location. Type and size
// violations return a *domain.UploadRejectedError; storage failures return
// a *domain.BackendUnavailableError.
func (s *Service) UploadPhoto(ctx context.Context, photo domain.Photo) (domain.StoredPhoto, error) {
	if msg := validation.CheckPhoto(photo); msg != "" {
		return domain.StoredPhoto{}, &domain.UploadRejectedError{Reason: msg}
	}
	if photo.Size() == 0 {
		return domain.StoredPhoto{}, &domain.UploadRejectedError{Reason: "No file received"}
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), SanitizeFilename(photo.Filename))
	stored, err := s.photos.SavePhoto(ctx, name, photo.ContentType, photo.Data)
	if err != nil {
		s.log.Error(err, "photo upload failed", "name", name)
		return domain.StoredPhoto{}, &domain.BackendUnavailableError{Op: "store photo", Err: err}
	}
	s.log.Info("photo stored", "name", stored.Filename, "bytes", photo.Size())
	return stored, nil
}

// DiscardPhoto deletes a previously stored photo.
func (s *Service) DiscardPhoto(ctx context.Context, stored domain.StoredPhoto) error {
	if err := s.photos.DeletePhoto(ctx, stored.Filename); err != nil {
		return &domain.BackendUnavailableError{Op: "delete photo", Err: err}
	}
	return nil
}

// SanitizeFilename replaces everything but letters, digits, dots and dashes
// with underscores. An empty name becomes "photo".
func SanitizeFilename(name string) string {
	if name == "" {
		return "photo"
	}
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// Compile-time assertion that Service implements domain.UploadService.
var _ domain.UploadService = (*Service)(nil)
