package profile

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/crypto/bcrypt"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/services/validation"
	"profilewizard/internal/util/memzero"
)

const (
	// DefaultBcryptCost matches the cost used for stored password hashes.
	DefaultBcryptCost = 12

	msgCreated     = "Profile created successfully!"
	msgPasswordLen = "Password must be at most 72 bytes"
)

// Service persists submitted profiles.
type Service struct {
	profiles domain.ProfileStore
	uploads  domain.UploadService
	log      logr.Logger
	now      func() time.Time
	cost     int
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost overrides the bcrypt cost. Values outside bcrypt's range
// fall back to DefaultBcryptCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithClock sets the clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a profile service.
func New(profiles domain.ProfileStore, uploads domain.UploadService, log logr.Logger, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		uploads:  uploads,
		log:      log.WithName("profile"),
		now:      time.Now,
		cost:     DefaultBcryptCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitProfile validates form, stores its photo and inserts the profile.
//
// Errors:
//   - *domain.ValidationError when any step's rules fail.
//   - *domain.ConflictError when the username exists.
//   - *domain.UploadRejectedError when the photo is refused.
//   - *domain.BackendUnavailableError when a store call fails.
func (s *Service) SubmitProfile(ctx context.Context, form domain.FormState) (domain.SubmitResult, error) {
	form.CompanyName = plainText(form.CompanyName)
	form.AddressLine1 = plainText(form.AddressLine1)
	if form.Profession != domaintypes.ProfessionEntrepreneur {
		form.CompanyName = ""
	}

	if errs := validation.ValidateAll(form); !errs.Empty() {
		return domain.SubmitResult{}, &domain.ValidationError{Fields: errs}
	}

	username := domain.Username(form.Username)
	if _, found, err := s.profiles.FindProfileByUsername(ctx, username); err != nil {
		return domain.SubmitResult{}, domaintypes.Unavailable("find profile", err)
	} else if found {
		return domain.SubmitResult{}, &domain.ConflictError{Username: username}
	}

	hash, err := s.hashPassword(form.NewPassword)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	var stored *domain.StoredPhoto
	if form.ProfilePhoto != nil {
		photo, err := s.uploads.UploadPhoto(ctx, *form.ProfilePhoto)
		if err != nil {
			return domain.SubmitResult{}, err
		}
		stored = &photo
	}

	now := s.now().UTC()
	record := domain.ProfileRecord{
		Username:         username,
		Profession:       form.Profession,
		CompanyName:      form.CompanyName,
		AddressLine1:     form.AddressLine1,
		Country:          form.Country,
		State:            form.State,
		City:             form.City,
		SubscriptionPlan: form.SubscriptionPlan,
		Newsletter:       form.Newsletter,
		PasswordHash:     hash,
		PhotoPath:        photoURL(stored),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	id, err := s.profiles.InsertProfile(ctx, record)
	if err != nil {
		if stored != nil {
			if derr := s.uploads.DiscardPhoto(ctx, *stored); derr != nil {
				s.log.Error(derr, "orphaned photo", "name", stored.Filename)
			}
		}
		if errors.Is(err, domaintypes.ErrConflict) {
			return domain.SubmitResult{}, &domain.ConflictError{Username: username}
		}
		s.log.Error(err, "profile insert failed", "username", username)
		return domain.SubmitResult{}, domaintypes.Unavailable("insert profile", err)
	}

	s.log.Info("profile created", "id", id, "username", username)
	return domain.SubmitResult{ID: id, Message: msgCreated}, nil
}

func photoURL(stored *domain.StoredPhoto) string {
	if stored == nil {
		return ""
	}
	return stored.URL
}

// hashPassword returns "" when no new password was given.
func (s *Service) hashPassword(pw string) (string, error) {
	if pw == "" {
		return "", nil
	}
	var hash []byte
	err := memzero.String(pw, func(raw []byte) error {
		var err error
		hash, err = bcrypt.GenerateFromPassword(raw, s.cost)
		return err
	})
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &domain.ValidationError{Fields: domain.FieldErrors{domaintypes.FieldNewPassword: msgPasswordLen}}
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compile-time assertion that Service implements domain.ProfileService.
var _ domain.ProfileService = (*Service)(nil)
