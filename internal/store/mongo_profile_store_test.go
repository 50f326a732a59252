package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/store"
)

// TestMongoProfileStore runs against a live server when
// PROFILEWIZARD_MONGO_URI is set, e.g. mongodb://localhost:27017.
func TestMongoProfileStore(t *testing.T) {
	uri := os.Getenv("PROFILEWIZARD_MONGO_URI")
	if uri == "" {
		t.Skip("PROFILEWIZARD_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := "users_test_" + uuid.NewString()[:8]
	profiles, err := store.OpenMongoProfileStore(ctx, uri, "profilewizard_test", collection)
	require.NoError(t, err)
	t.Cleanup(func() { _ = profiles.Close(context.Background()) })

	rec := sampleRecord("mongo-gopher")
	id, err := profiles.InsertProfile(ctx, rec)
	require.NoError(t, err)
	assert.Len(t, id.String(), 24)

	got, ok, err := profiles.FindProfileByUsername(ctx, "mongo-gopher")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, rec.City, got.City)

	_, err = profiles.InsertProfile(ctx, rec)
	assert.True(t, errors.Is(err, domaintypes.ErrConflict))

	_, ok, err = profiles.FindProfileByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}
