package interfaces

import (
	"context"

	domaintypes "profilewizard/internal/domain/types"
)

// ProfileStore persists submitted profiles. Insert must reject a username
// that already exists with a domaintypes.ConflictError.
type ProfileStore interface {
	InsertProfile(ctx context.Context, record domaintypes.ProfileRecord) (domaintypes.ProfileID, error)
	FindProfileByUsername(
		ctx context.Context,
		username domaintypes.Username,
	) (domaintypes.ProfileRecord, bool, error)
}

// PhotoStore keeps uploaded profile photos and returns where they live.
// ReadPhoto returns an error matching os.ErrNotExist for unknown names.
type PhotoStore interface {
	SavePhoto(
		ctx context.Context,
		name string,
		contentType string,
		data []byte,
	) (domaintypes.StoredPhoto, error)
	ReadPhoto(ctx context.Context, name string) (data []byte, contentType string, err error)
	DeletePhoto(ctx context.Context, name string) error
}
