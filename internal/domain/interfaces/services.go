package interfaces

import (
	"context"

	domaintypes "profilewizard/internal/domain/types"
)

// LocationService returns the child options of a tier. The parent is ignored
// for the country tier. Unknown parents yield an empty slice, not an error.
type LocationService interface {
	FetchChildren(
		ctx context.Context,
		tier domaintypes.Tier,
		parent string,
	) ([]domaintypes.LocationOption, error)
}

// AvailabilityService reports whether a username is free. It never returns
// an error: any failure is reported as unavailable.
type AvailabilityService interface {
	CheckAvailability(ctx context.Context, candidate domaintypes.Username) domaintypes.Availability
}

// UploadService validates and stores profile photos. DiscardPhoto removes a
// photo whose profile could not be saved.
type UploadService interface {
	UploadPhoto(ctx context.Context, photo domaintypes.Photo) (domaintypes.StoredPhoto, error)
	DiscardPhoto(ctx context.Context, stored domaintypes.StoredPhoto) error
}

// ProfileService validates a completed form and persists it.
type ProfileService interface {
	SubmitProfile(ctx context.Context, form domaintypes.FormState) (domaintypes.SubmitResult, error)
}
