// Package config loads registry, driver and logging settings from an
// optional YAML file and the environment, and builds the matching
// components.
//
// Settings are layered: Default, then the YAML file, then environment
// variables prefixed with FSENTITY (for example FSENTITY_DRIVER or
// FSENTITY_MINIO_BUCKET). Unset variables leave earlier layers untouched.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	entity "github.com/jmgilman/go/fs/entity"
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FSENTITY"

// Driver names accepted in Config.Driver.
const (
	DriverLocal  = "local"
	DriverMemory = "memory"
	DriverMinIO  = "minio"
)

// Config holds all settings.
type Config struct {
	Driver   string         `yaml:"driver"`
	Local    LocalConfig    `yaml:"local"`
	MinIO    MinIOConfig    `yaml:"minio" envconfig:"MINIO"`
	Registry RegistryConfig `yaml:"registry"`
	Logging  LogConfig      `yaml:"logging"`
}

// LocalConfig configures the local and memory drivers.
type LocalConfig struct {
	Root     string `yaml:"root"`
	TempRoot string `yaml:"temp_root" split_words:"true"`
	WorkDir  string `yaml:"work_dir" split_words:"true"`
}

// MinIOConfig configures the object store driver.
type MinIOConfig struct {
	Endpoint           string `yaml:"endpoint"`
	Bucket             string `yaml:"bucket"`
	AccessKey          string `yaml:"access_key" split_words:"true"`
	SecretKey          string `yaml:"secret_key" split_words:"true"`
	UseSSL             bool   `yaml:"use_ssl" split_words:"true"`
	Prefix             string `yaml:"prefix"`
	TempPrefix         string `yaml:"temp_prefix" split_words:"true"`
	MaxCopyConcurrency int    `yaml:"max_copy_concurrency" split_words:"true"`
}

// RegistryConfig configures the entity registry.
type RegistryConfig struct {
	MaxPathLength int `yaml:"max_path_length" split_words:"true"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the default configuration: an in-memory driver and an
// info level JSON logger.
func Default() *Config {
	return &Config{
		Driver: DriverMemory,
		Local: LocalConfig{
			Root: "/",
		},
		MinIO: MinIOConfig{
			TempPrefix:         "tmp",
			MaxCopyConcurrency: 10,
		},
		Registry: RegistryConfig{
			MaxPathLength: entity.DefaultMaxPathLength,
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from the defaults, the YAML file at path (if
// path is not empty) and the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			code := platformerrors.CodeInvalidConfig
			if os.IsNotExist(err) {
				code = platformerrors.CodeNotFound
			}
			return nil, platformerrors.WithContext(
				platformerrors.Wrap(err, code, "failed to read config file"), "path", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.WithContext(
				platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to parse config file"), "path", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to load config from environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverLocal, DriverMemory:
	case DriverMinIO:
		if c.MinIO.Endpoint == "" {
			return invalid("minio.endpoint", "endpoint is required")
		}
		if c.MinIO.Bucket == "" {
			return invalid("minio.bucket", "bucket is required")
		}
		if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
			return invalid("minio.access_key", "credentials are required")
		}
		if c.MinIO.MaxCopyConcurrency < 1 {
			return invalid("minio.max_copy_concurrency", "must be positive")
		}
	default:
		return platformerrors.WithContext(invalid("driver", "unknown driver"), "driver", c.Driver)
	}

	if c.Registry.MaxPathLength < 1 {
		return invalid("registry.max_path_length", "must be positive")
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return platformerrors.WithContext(
			platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "invalid log level"), "field", "logging.level")
	}
	return nil
}

func invalid(field, msg string) error {
	return platformerrors.WithContext(platformerrors.New(platformerrors.CodeInvalidConfig, msg), "field", field)
}
