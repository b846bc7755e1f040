package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/templui/galeri/internal/config"
)

var (
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage is the blob store used for photo files.
type Storage interface {
	// Save stores a file at the given path
	Save(path string, file io.Reader) error

	// Delete removes a file at the given path. Deleting a missing file is not an error.
	Delete(path string) error

	// URL returns the URL clients use to fetch the file
	URL(path string) string

	// Exists reports whether a file is stored at path
	Exists(path string) (bool, error)
}

// New creates the storage backend selected by STORAGE_DRIVER.
// "disk" keeps files under StorageDiskPath and serves them through /storage/.
// "s3" works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case cfg.StorageDriverDisk:
		slog.Info("initializing disk storage", "path", c.StorageDiskPath, "public_url", c.StoragePublicURL)
		return NewDiskStorage(c.StorageDiskPath, c.StoragePublicURL)
	case cfg.StorageDriverS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
