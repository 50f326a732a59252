package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilewizard/internal/app"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, "storage:\n  data_dir: /srv/profiles\n")

	cfg, err := app.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.Debounce)
	assert.Equal(t, 1000, cfg.Server.MaxSessions)
	assert.Equal(t, app.StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "users", cfg.Storage.Mongo.Collection)
	assert.Equal(t, filepath.Join("/srv/profiles", "uploads"), cfg.Photos.Dir)
	assert.Equal(t, "/uploads", cfg.Photos.URLPrefix)
	assert.Equal(t, 500*time.Millisecond, cfg.Locations.Latency.Countries)
	assert.Equal(t, 300*time.Millisecond, cfg.Locations.Latency.Children)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
}

func TestLoadFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: 127.0.0.1:9000
  debounce: 250ms
storage:
  driver: mongo
  mongo:
    uri: mongodb://db:27017
photos:
  driver: s3
  s3:
    endpoint: http://minio:9000
    bucket: avatars
    access_key: key
    secret_key: secret
    path_style: true
locations:
  source: remote
  remote_url: http://directory:8080
  latency:
    countries: 0s
security:
  bcrypt_cost: 10
log:
  level: debug
`)

	cfg, err := app.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.Debounce)
	assert.Equal(t, "mongodb://db:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "profilewizard", cfg.Storage.Mongo.Database)
	assert.True(t, cfg.Photos.S3.UsePathStyle)
	assert.Equal(t, "avatars", cfg.Photos.S3.Bucket)
	assert.Equal(t, time.Duration(0), cfg.Locations.Latency.Countries)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfig(t, `
server:
  max_sessions: -1
storage:
  driver: postgres
photos:
  driver: s3
  s3:
    access_key: key
locations:
  source: remote
security:
  bcrypt_cost: 99
`)

	_, err := app.LoadFile(path)
	require.Error(t, err)
	for _, want := range []string{
		"server.max_sessions must not be negative",
		`storage.driver "postgres"`,
		"photos.s3.bucket is required",
		"access_key and secret_key",
		"locations.remote_url is required",
		"bcrypt_cost 99",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := app.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestNewLogger(t *testing.T) {
	log, flush, err := app.NewLogger(app.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	defer flush()
	assert.True(t, log.V(1).Enabled())

	_, _, err = app.NewLogger(app.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
