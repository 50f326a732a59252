package app

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"profilewizard/internal/client"
	"profilewizard/internal/domain"
	"profilewizard/internal/platform/s3"
	"profilewizard/internal/server"
	"profilewizard/internal/services/availability"
	"profilewizard/internal/services/location"
	"profilewizard/internal/services/profile"
	"profilewizard/internal/services/upload"
	"profilewizard/internal/store"
)

// Wire bundles all stores, services, and clients.
type Wire struct {
	Profiles     domain.ProfileStore
	Photos       domain.PhotoStore
	Locations    domain.LocationService
	Availability domain.AvailabilityService
	Uploads      domain.UploadService
	Submissions  domain.ProfileService

	closers []func(context.Context) error
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg *Config, log logr.Logger) (*Wire, error) {
	w := &Wire{}

	profiles, err := w.openProfiles(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	photos, err := openPhotos(ctx, cfg.Photos)
	if err != nil {
		_ = w.Close(ctx)
		return nil, err
	}

	w.Profiles = profiles
	w.Photos = photos
	w.Locations = newLocations(cfg.Locations, log)
	w.Availability = availability.New(profiles, log)

	uploads := upload.New(photos, log)
	w.Uploads = uploads
	w.Submissions = profile.New(profiles, uploads, log, profile.WithBcryptCost(cfg.Security.BcryptCost))
	return w, nil
}

// Server builds the HTTP API over the wired services.
func (w *Wire) Server(cfg *Config, log logr.Logger) *server.Server {
	return server.New(server.Deps{
		Locations:    w.Locations,
		Availability: w.Availability,
		Uploads:      w.Uploads,
		Profiles:     w.Submissions,
		Photos:       w.Photos,
		Log:          log,
		Debounce:     cfg.Server.Debounce,
		SessionIdle:  cfg.Server.SessionIdle,
		MaxSessions:  cfg.Server.MaxSessions,
	})
}

// Close releases connections opened by NewWire.
func (w *Wire) Close(ctx context.Context) error {
	var first error
	for _, c := range w.closers {
		if err := c(ctx); err != nil && first == nil {
			first = err
		}
	}
	w.closers = nil
	return first
}

func (w *Wire) openProfiles(ctx context.Context, cfg StorageConfig) (domain.ProfileStore, error) {
	switch cfg.Driver {
	case StorageMongo:
		ms, err := store.OpenMongoProfileStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, ms.Close)
		return ms, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		return store.NewProfileFileStore(cfg.DataDir), nil
	}
}

func openPhotos(ctx context.Context, cfg PhotosConfig) (domain.PhotoStore, error) {
	if cfg.Driver != PhotosS3 {
		return store.NewPhotoDirStore(cfg.Dir, cfg.URLPrefix), nil
	}
	c, err := s3.NewClient(ctx, s3.Options{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		UsePathStyle: cfg.S3.UsePathStyle,
	})
	if err != nil {
		return nil, err
	}
	if cfg.S3.CreateBucket {
		if err := c.CreateBucket(ctx, cfg.S3.Bucket); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.S3.Bucket, err)
		}
	}
	return store.NewS3PhotoStore(c, cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.PublicURL, cfg.URLPrefix), nil
}

func newLocations(cfg LocationsConfig, log logr.Logger) domain.LocationService {
	if cfg.Source == LocationsRemote {
		return client.NewHTTP(cfg.RemoteURL, log)
	}
	return location.New(log, cfg.Latency)
}
