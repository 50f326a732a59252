package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"profilewizard/internal/domain"
	"profilewizard/internal/platform/s3"
)

// ObjectStore is the subset of the S3 client used for photos.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}

// S3PhotoStore keeps photos in an S3 bucket under an optional key prefix.
//
// With a public base URL the stored URL points straight at the object;
// otherwise it points at the server's urlPrefix, which streams the object
// back through ReadPhoto.
type S3PhotoStore struct {
	objects   ObjectStore
	bucket    string
	prefix    string
	publicURL string
	urlPrefix string
}

// NewS3PhotoStore returns a photo store writing to bucket.
func NewS3PhotoStore(objects ObjectStore, bucket, prefix, publicURL, urlPrefix string) *S3PhotoStore {
	return &S3PhotoStore{
		objects:   objects,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		publicURL: strings.TrimSuffix(publicURL, "/"),
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

func (s *S3PhotoStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// SavePhoto uploads data as name.
func (s *S3PhotoStore) SavePhoto(
	ctx context.Context,
	name string,
	contentType string,
	data []byte,
) (domain.StoredPhoto, error) {
	if name == "" || strings.Contains(name, "/") {
		return domain.StoredPhoto{}, fmt.Errorf("invalid photo name %q", name)
	}
	key := s.key(name)
	if err := s.objects.PutObject(ctx, s.bucket, key, contentType, data); err != nil {
		return domain.StoredPhoto{}, err
	}
	url := s.urlPrefix + "/" + name
	if s.publicURL != "" {
		url = s.publicURL + "/" + key
	}
	return domain.StoredPhoto{Filename: name, URL: url}, nil
}

// ReadPhoto downloads name. Missing objects match os.ErrNotExist.
func (s *S3PhotoStore) ReadPhoto(ctx context.Context, name string) ([]byte, string, error) {
	data, contentType, err := s.objects.GetObject(ctx, s.bucket, s.key(name))
	if errors.Is(err, s3.ErrNotFound) {
		return nil, "", fmt.Errorf("photo %s: %w", name, os.ErrNotExist)
	}
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// DeletePhoto removes name from the bucket.
func (s *S3PhotoStore) DeletePhoto(ctx context.Context, name string) error {
	return s.objects.DeleteObject(ctx, s.bucket, s.key(name))
}

// Compile-time assertions.
var (
	_ domain.PhotoStore = (*S3PhotoStore)(nil)
	_ ObjectStore       = (*s3.Client)(nil)
)
