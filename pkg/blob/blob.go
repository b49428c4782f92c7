// Package blob stores attachment content behind a small S3-like interface
// with filesystem, S3 and in-memory drivers.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"kennel-registry/pkg/utils"
)

type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrExists   = errors.New("blob already exists")
)

// Info describes a stored blob.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

type Store interface {
	// Put writes a new blob. Existing keys are never overwritten.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	// Get returns the blob content. The caller closes the reader.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Delete removes the blob and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	Driver() Driver
}

// Open selects a Store implementation from config.
func Open(ctx context.Context, cfg utils.BlobConfig) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
