package store

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"profilewizard/internal/domain"
)

const profilesFile = "profiles.json"

// ProfileFileStore keeps profile documents in a single JSON file keyed by id.
// The username index is enforced on insert under the store lock.
type ProfileFileStore struct {
	dir   string
	mu    sync.Mutex
	newID func() string
}

// NewProfileFileStore returns a ProfileFileStore rooted at dir.
func NewProfileFileStore(dir string) *ProfileFileStore {
	return &ProfileFileStore{dir: dir, newID: uuid.NewString}
}

// InsertProfile stores record under a fresh id and returns it.
func (s *ProfileFileStore) InsertProfile(ctx context.Context, record domain.ProfileRecord) (domain.ProfileID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, profilesFile)
	profiles := make(map[domain.ProfileID]domain.ProfileRecord)
	if err := readJSON(path, &profiles); err != nil {
		return "", err
	}
	for _, existing := range profiles {
		if existing.Username == record.Username {
			return "", &domain.ConflictError{Username: record.Username}
		}
	}

	record.ID = domain.ProfileID(s.newID())
	profiles[record.ID] = record
	if err := writeJSON(path, profiles, 0o600); err != nil {
		return "", err
	}
	return record.ID, nil
}

// FindProfileByUsername returns the profile with username, if any.
func (s *ProfileFileStore) FindProfileByUsername(
	ctx context.Context,
	username domain.Username,
) (domain.ProfileRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProfileRecord{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[domain.ProfileID]domain.ProfileRecord)
	if err := readJSON(filepath.Join(s.dir, profilesFile), &profiles); err != nil {
		return domain.ProfileRecord{}, false, err
	}
	for _, p := range profiles {
		if p.Username == username {
			return p, true, nil
		}
	}
	return domain.ProfileRecord{}, false, nil
}

// CountProfiles returns the number of stored profiles.
func (s *ProfileFileStore) CountProfiles() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[domain.ProfileID]domain.ProfileRecord)
	if err := readJSON(filepath.Join(s.dir, profilesFile), &profiles); err != nil {
		return 0, err
	}
	return len(profiles), nil
}

// Compile-time assertion that ProfileFileStore implements domain.ProfileStore.
var _ domain.ProfileStore = (*ProfileFileStore)(nil)
