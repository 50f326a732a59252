package availability

import (
	"context"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	"profilewizard/internal/services/validation"
)

// Service checks candidates against the profile store.
type Service struct {
	profiles domain.ProfileStore
	log      logr.Logger
}

// New returns an availability service backed by profiles.
func New(profiles domain.ProfileStore, log logr.Logger) *Service {
	return &Service{profiles: profiles, log: log.WithName("availability")}
}

// CheckAvailability reports whether candidate is unused. Candidates shorter
// than the minimum username length are never looked up.
func (s *Service) CheckAvailability(ctx context.Context, candidate domain.Username) domain.Availability {
	if !validation.Checkable(candidate.String()) {
		return domain.Availability{Available: false}
	}
	_, found, err := s.profiles.FindProfileByUsername(ctx, candidate)
	if err != nil {
		s.log.Error(err, "username lookup failed", "username", candidate)
		return domain.Availability{Available: false}
	}
	return domain.Availability{Available: !found}
}

// Compile-time assertion that Service implements domain.AvailabilityService.
var _ domain.AvailabilityService = (*Service)(nil)
