package storage

import (
	"context"
	"io"
)

// Storage defines the object operations mailblast needs: publishing run
// reports and fetching attachments.
type Storage interface {
	// Put uploads r under key, overwriting any existing object.
	Put(ctx context.Context, key string, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves an object. The caller must close the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"S3_BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL (MinIO, R2, ...).
	Endpoint string `env:"S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"S3_REGION"`

	// Prefix is prepended to every key, e.g. "mailblast/".
	Prefix string `env:"S3_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE"`
}

// Enabled reports whether a bucket is configured at all.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// FileInfo contains metadata about an uploaded object.
type FileInfo struct {
	Key         string
	ContentType string
	Size        int64
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// MIMEOctetStream is the content type used when none is given.
const MIMEOctetStream = "application/octet-stream"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
