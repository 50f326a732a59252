package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"profilewizard/internal/services/location"
	"profilewizard/internal/services/profile"
	"profilewizard/internal/wizard"
)

// Storage drivers.
const (
	StorageFile  = "file"
	StorageMongo = "mongo"

	PhotosLocal = "local"
	PhotosS3    = "s3"

	LocationsStatic = "static"
	LocationsRemote = "remote"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Photos    PhotosConfig    `yaml:"photos"`
	Locations LocationsConfig `yaml:"locations"`
	Security  SecurityConfig  `yaml:"security"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP listener and wizard sessions.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	SessionIdle time.Duration `yaml:"session_idle"`
	MaxSessions int           `yaml:"max_sessions"` // 0 means unlimited
	Debounce    time.Duration `yaml:"debounce"`
}

// StorageConfig selects where profiles are persisted.
type StorageConfig struct {
	Driver  string      `yaml:"driver"`
	DataDir string      `yaml:"data_dir"` // profile documents for the file driver
	Mongo   MongoConfig `yaml:"mongo"`
}

// MongoConfig addresses the profile collection.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// PhotosConfig selects where uploaded photos are stored.
type PhotosConfig struct {
	Driver    string   `yaml:"driver"`
	Dir       string   `yaml:"dir"` // defaults to <data_dir>/uploads
	URLPrefix string   `yaml:"url_prefix"`
	S3        S3Config `yaml:"s3"`
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	PublicURL    string `yaml:"public_url"` // empty serves photos through /uploads
	UsePathStyle bool   `yaml:"path_style"`
	CreateBucket bool   `yaml:"create_bucket"`
}

// LocationsConfig selects the location directory.
type LocationsConfig struct {
	Source    string           `yaml:"source"`
	RemoteURL string           `yaml:"remote_url"`
	Latency   location.Latency `yaml:"latency"`
}

// SecurityConfig tunes password hashing.
type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// LogConfig tunes the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	dataDir := "data"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".profilewizard")
	}
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			SessionIdle: 30 * time.Minute,
			MaxSessions: 1000,
			Debounce:    wizard.DefaultDebounce,
		},
		Storage: StorageConfig{
			Driver:  StorageFile,
			DataDir: dataDir,
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "profilewizard",
				Collection: "users",
			},
		},
		Photos: PhotosConfig{
			Driver:    PhotosLocal,
			URLPrefix: "/uploads",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Locations: LocationsConfig{
			Source:  LocationsStatic,
			Latency: location.DefaultLatency(),
		},
		Security: SecurityConfig{BcryptCost: profile.DefaultBcryptCost},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadFile reads path over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills values derived from other settings.
func (c *Config) ApplyDefaults() {
	if c.Photos.Dir == "" {
		c.Photos.Dir = filepath.Join(c.Storage.DataDir, "uploads")
	}
	if c.Photos.URLPrefix == "" {
		c.Photos.URLPrefix = "/uploads"
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.Debounce < 0 {
		errs = append(errs, errors.New("server.debounce must not be negative"))
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, errors.New("server.max_sessions must not be negative"))
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("storage.data_dir is required for the file driver"))
		}
	case StorageMongo:
		if c.Storage.Mongo.URI == "" || c.Storage.Mongo.Database == "" || c.Storage.Mongo.Collection == "" {
			errs = append(errs, errors.New("storage.mongo requires uri, database and collection"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of file, mongo", c.Storage.Driver))
	}

	switch c.Photos.Driver {
	case PhotosLocal:
		if c.Photos.Dir == "" {
			errs = append(errs, errors.New("photos.dir is required for the local driver"))
		}
	case PhotosS3:
		if c.Photos.S3.Bucket == "" {
			errs = append(errs, errors.New("photos.s3.bucket is required"))
		}
		if (c.Photos.S3.AccessKey == "") != (c.Photos.S3.SecretKey == "") {
			errs = append(errs, errors.New("photos.s3 access_key and secret_key must be set together"))
		}
	default:
		errs = append(errs, fmt.Errorf("photos.driver %q is not one of local, s3", c.Photos.Driver))
	}

	switch c.Locations.Source {
	case LocationsStatic:
	case LocationsRemote:
		if c.Locations.RemoteURL == "" {
			errs = append(errs, errors.New("locations.remote_url is required for the remote source"))
		}
	default:
		errs = append(errs, fmt.Errorf("locations.source %q is not one of static, remote", c.Locations.Source))
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("security.bcrypt_cost %d is outside 4..31", c.Security.BcryptCost))
	}
	return errors.Join(errs...)
}
