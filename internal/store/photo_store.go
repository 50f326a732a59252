package store

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"profilewizard/internal/domain"
)

// PhotoDirStore writes photos into a local directory that the HTTP server
// exposes under urlPrefix.
type PhotoDirStore struct {
	dir       string
	urlPrefix string
}

// NewPhotoDirStore returns a PhotoDirStore writing into dir.
func NewPhotoDirStore(dir, urlPrefix string) *PhotoDirStore {
	return &PhotoDirStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// SavePhoto writes data as name.
func (s *PhotoDirStore) SavePhoto(
	ctx context.Context,
	name string,
	_ string,
	data []byte,
) (domain.StoredPhoto, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredPhoto{}, err
	}
	path, err := s.path(name)
	if err != nil {
		return domain.StoredPhoto{}, err
	}
	if err := writeFile(path, data, 0o644); err != nil {
		return domain.StoredPhoto{}, err
	}
	return domain.StoredPhoto{Filename: name, URL: s.urlPrefix + "/" + name}, nil
}

// ReadPhoto returns the stored bytes and their sniffed content type.
func (s *PhotoDirStore) ReadPhoto(ctx context.Context, name string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path, err := s.path(name)
	if err != nil {
		return nil, "", err
	}
	// #nosec G304 -- name is a single path element under dir.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, http.DetectContentType(data), nil
}

// DeletePhoto removes name; a missing file is not an error.
func (s *PhotoDirStore) DeletePhoto(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path confines name to a single element under dir.
func (s *PhotoDirStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid photo name %q: %w", name, os.ErrNotExist)
	}
	return filepath.Join(s.dir, name), nil
}

// Compile-time assertion that PhotoDirStore implements domain.PhotoStore.
var _ domain.PhotoStore = (*PhotoDirStore)(nil)
