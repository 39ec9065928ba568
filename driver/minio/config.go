// Package minio provides a MinIO/S3-compatible implementation of driver.Driver.
//
// Object stores have no real directories. A directory is either a zero-byte
// marker object whose key ends in "/" or an implicit prefix shared by other
// objects. Created directories always get a marker so they survive the
// removal of their last child. The root always exists.
//
// The hidden flag and the readable/writable flags are stored as user metadata
// on each object. Names starting with "." are always hidden.
package minio

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Config holds MinIO driver configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string

	// TempPrefix names the directory, relative to the root, that holds
	// temporary entities. Default: "tmp"
	TempPrefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client

	// MaxCopyConcurrency limits concurrent object copies during directory
	// moves and copies. Default: 10
	MaxCopyConcurrency int
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}

	if c.MaxCopyConcurrency < 0 {
		return fmt.Errorf("max copy concurrency must not be negative")
	}

	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}

	return nil
}
